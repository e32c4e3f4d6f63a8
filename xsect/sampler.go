package xsect

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

// MinSampleAngles is the fewest rays which can describe a boundary.
const MinSampleAngles = 3

// RayLengthScale multiplies the largest in-plane extent of the sections to
// get the ray length, which keeps every ray longer than the sections are
// wide no matter where the center lies inside the bounds.
const RayLengthScale = 2

// A Mode selects which crossing a ray keeps when it hits several edges.
type Mode int

const (
	// Outer keeps the crossing farthest from the center.
	Outer Mode = iota

	// Inner keeps the crossing nearest to the center.
	Inner
)

func (m Mode) String() string {
	switch m {
	case Outer:
		return "outer"
	case Inner:
		return "inner"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "outer" or "inner".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "outer":
		return Outer, nil
	case "inner":
		return Inner, nil
	default:
		return 0, badConfig("unknown sampling mode %q", s)
	}
}

// A CenterPolicy chooses the origin of the sampling rays.
//
// The choice matters: on asymmetric sections the two policies produce
// visibly different curves.
type CenterPolicy int

const (
	// CenterBounds uses the center of the bounding box of all the sections.
	CenterBounds CenterPolicy = iota

	// CenterCentroid averages the vertex centroid of each section, so every
	// section carries equal weight regardless of its vertex count.
	CenterCentroid
)

func (c CenterPolicy) String() string {
	switch c {
	case CenterBounds:
		return "bounds"
	case CenterCentroid:
		return "centroid"
	default:
		return fmt.Sprintf("CenterPolicy(%d)", int(c))
	}
}

// ParseCenterPolicy parses "bounds" or "centroid".
func ParseCenterPolicy(s string) (CenterPolicy, error) {
	switch s {
	case "bounds":
		return CenterBounds, nil
	case "centroid":
		return CenterCentroid, nil
	default:
		return 0, badConfig("unknown center policy %q", s)
	}
}

// A BoundarySample is the point retained for one ray.
type BoundarySample struct {
	// Angle is the ray angle in degrees.
	Angle float64 `json:"angle"`

	// Point is the crossing in frame coordinates.
	Point model2d.Coord `json:"point"`

	// World is the crossing in 3D.
	World model3d.Coord3D `json:"world"`
}

// A BoundaryCurve is the ordered list of ray crossings. Rays which crossed
// no edge are absent.
type BoundaryCurve []BoundarySample

// Points gets the 3D points of the curve.
func (b BoundaryCurve) Points() []model3d.Coord3D {
	res := make([]model3d.Coord3D, len(b))
	for i, s := range b {
		res[i] = s.World
	}
	return res
}

// Filled returns one sample per angle, in the order of angles, where b was
// sampled with those same angles.
//
// The sampler leaves out rays without a crossing, and curves fed to the body
// writer need matching point counts, so callers use this to backfill. A
// missing ray takes the point of the closest earlier ray, or of the first
// sampled ray when no earlier one exists. An empty curve stays empty.
func (b BoundaryCurve) Filled(angles []float64) BoundaryCurve {
	if len(b) == 0 {
		return BoundaryCurve{}
	}
	res := make(BoundaryCurve, 0, len(angles))
	var j int
	for _, angle := range angles {
		if j < len(b) && b[j].Angle == angle {
			res = append(res, b[j])
			j++
			continue
		}
		fill := b[0]
		if len(res) > 0 {
			fill = res[len(res)-1]
		}
		fill.Angle = angle
		res = append(res, fill)
	}
	return res
}

// A Sampler casts rays from a center across co-planar sections.
type Sampler struct {
	// Frame is the sampling plane. The zero value means DefaultFrame().
	Frame Frame

	// Center selects the ray origin.
	Center CenterPolicy

	// Mode selects the outer or inner envelope.
	Mode Mode

	// Concurrency is the maximum number of Goroutines used to cast rays.
	// If 0, GOMAXPROCS is used.
	Concurrency int
}

// Sample casts one ray per angle (in degrees) and returns the retained
// crossings in the order of the angles.
//
// Rays which cross no edge are omitted, so the result may be shorter than
// angles or even empty.
func (s *Sampler) Sample(sections []*SectionResult, angles []float64) (BoundaryCurve, error) {
	if len(angles) < MinSampleAngles {
		return nil, badConfig("need at least %d sample angles but got %d", MinSampleAngles,
			len(angles))
	}
	if s.Mode != Outer && s.Mode != Inner {
		return nil, badConfig("unknown sampling mode %v", s.Mode)
	}
	if s.Center != CenterBounds && s.Center != CenterCentroid {
		return nil, badConfig("unknown center policy %v", s.Center)
	}
	frame := s.frame()

	var segments []*model2d.Segment
	var numVertices int
	for i, section := range sections {
		if section == nil {
			return nil, invalidInput("section %d is missing", i)
		}
		if err := section.validate(); err != nil {
			return nil, errors.Wrapf(err, "section %d", i)
		}
		for _, e := range section.Edges {
			segments = append(segments, &model2d.Segment{
				frame.Project(section.Vertices[e[0]]),
				frame.Project(section.Vertices[e[1]]),
			})
		}
		numVertices += len(section.Vertices)
	}
	if numVertices == 0 {
		return BoundaryCurve{}, nil
	}

	center, center3D, err := s.center(frame, sections)
	if err != nil {
		return nil, err
	}
	min, max := projectedBounds(frame, sections)
	size := max.Sub(min)
	rayLength := RayLengthScale * math.Max(size.X, size.Y)

	hits := make([]*BoundarySample, len(angles))
	essentials.ConcurrentMap(s.Concurrency, len(angles), func(i int) {
		ray := &model2d.Ray{
			Origin:    center,
			Direction: frame.Direction(angles[i]).Scale(rayLength),
		}
		var best model2d.Coord
		var bestDist float64
		found := false
		for _, seg := range segments {
			p, ok := raySegmentHit(ray, seg)
			if !ok {
				continue
			}
			dist := p.Dist(center)
			if !found || s.better(dist, bestDist) {
				best, bestDist, found = p, dist, true
			}
		}
		if found {
			hits[i] = &BoundarySample{
				Angle: angles[i],
				Point: best,
				World: frame.Lift(best, center3D),
			}
		}
	})

	res := make(BoundaryCurve, 0, len(angles))
	for _, h := range hits {
		if h != nil {
			res = append(res, *h)
		}
	}
	return res, nil
}

func (s *Sampler) better(dist, bestDist float64) bool {
	if s.Mode == Inner {
		return dist < bestDist
	}
	return dist > bestDist
}

func (s *Sampler) frame() Frame {
	if s.Frame.Normal == (model3d.Coord3D{}) {
		return DefaultFrame()
	}
	return s.Frame
}

// center gets the ray origin in frame coordinates along with a 3D point on
// the sampling plane.
func (s *Sampler) center(f Frame, sections []*SectionResult) (model2d.Coord, model3d.Coord3D,
	error) {
	switch s.Center {
	case CenterBounds:
		var min, max model3d.Coord3D
		first := true
		for _, section := range sections {
			if len(section.Vertices) == 0 {
				continue
			}
			sMin, sMax := section.Bounds()
			if first {
				min, max = sMin, sMax
				first = false
			} else {
				min, max = min.Min(sMin), max.Max(sMax)
			}
		}
		c := min.Mid(max)
		return f.Project(c), c, nil
	case CenterCentroid:
		var sum model3d.Coord3D
		var count int
		for _, section := range sections {
			if len(section.Vertices) == 0 {
				continue
			}
			sum = sum.Add(section.Centroid())
			count++
		}
		c := sum.Scale(1 / float64(count))
		return f.Project(c), c, nil
	default:
		return model2d.Coord{}, model3d.Coord3D{}, badConfig("unknown center policy %v", s.Center)
	}
}

func projectedBounds(f Frame, sections []*SectionResult) (min, max model2d.Coord) {
	first := true
	for _, section := range sections {
		for _, c := range section.Vertices {
			p := f.Project(c)
			if first {
				min, max = p, p
				first = false
			} else {
				min, max = min.Min(p), max.Max(p)
			}
		}
	}
	return
}
