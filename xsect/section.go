package xsect

import (
	"math"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model3d"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

const (
	// DefaultDirectionTolerance is the minimum dot product between an edge
	// direction and the direction from the edge start to the plane
	// intersection for the intersection to count as lying along the edge.
	//
	// Anything below this means the intersection is behind the edge start.
	DefaultDirectionTolerance = 0.99

	// DefaultCoincidentTolerance bounds the dot product magnitude which marks
	// an intersection as sitting exactly on the edge start, where the
	// direction to the intersection is the zero vector.
	DefaultCoincidentTolerance = 1e-5
)

// A SectionEdge is an unordered pair of SectionResult vertex indices.
// The smaller index is always stored first.
type SectionEdge [2]int

func newSectionEdge(v1, v2 int) SectionEdge {
	if v1 > v2 {
		v1, v2 = v2, v1
	}
	return SectionEdge{v1, v2}
}

// A FaceAnomaly records a face which crossed the plane at more than two
// distinct points and was left out of the section.
type FaceAnomaly struct {
	Face   int `json:"face"`
	Points int `json:"points"`
}

// A SectionResult is the cross-section of one mesh by one plane.
type SectionResult struct {
	Vertices  []model3d.Coord3D `json:"vertices"`
	Edges     []SectionEdge     `json:"edges"`
	Anomalies []FaceAnomaly     `json:"anomalies,omitempty"`
}

// IsEmpty returns true if the mesh did not cross the plane.
func (s *SectionResult) IsEmpty() bool {
	return len(s.Edges) == 0
}

// Segments gets the 3D line segments of the section.
func (s *SectionResult) Segments() []*model3d.Segment {
	res := make([]*model3d.Segment, len(s.Edges))
	for i, e := range s.Edges {
		res[i] = &model3d.Segment{s.Vertices[e[0]], s.Vertices[e[1]]}
	}
	return res
}

// Centroid gets the unweighted mean of the section vertices.
func (s *SectionResult) Centroid() model3d.Coord3D {
	var sum model3d.Coord3D
	for _, c := range s.Vertices {
		sum = sum.Add(c)
	}
	if len(s.Vertices) == 0 {
		return sum
	}
	return sum.Scale(1 / float64(len(s.Vertices)))
}

// Bounds gets the bounding box of the section vertices.
func (s *SectionResult) Bounds() (min, max model3d.Coord3D) {
	if len(s.Vertices) == 0 {
		return
	}
	min, max = s.Vertices[0], s.Vertices[0]
	for _, c := range s.Vertices[1:] {
		min = min.Min(c)
		max = max.Max(c)
	}
	return
}

// validate checks that every edge joins two distinct, existing vertices.
func (s *SectionResult) validate() error {
	for i, e := range s.Edges {
		if e[0] == e[1] || e[0] < 0 || e[1] < 0 || e[0] >= len(s.Vertices) ||
			e[1] >= len(s.Vertices) {
			return invalidInput("edge %d (%d, %d) with %d vertices", i, e[0], e[1], len(s.Vertices))
		}
	}
	return nil
}

// A Sectioner cuts meshes with planes.
//
// The zero value is ready to use with the default tolerances and no logging.
type Sectioner struct {
	// DirectionTolerance defaults to DefaultDirectionTolerance.
	DirectionTolerance float64

	// CoincidentTolerance defaults to DefaultCoincidentTolerance.
	CoincidentTolerance float64

	// Concurrency is the maximum number of Goroutines used by SectionAll.
	// If 0, GOMAXPROCS is used.
	Concurrency int

	// Logger receives face anomaly reports. If nil, nothing is logged.
	Logger *zap.Logger
}

// Section computes the cross-section of a mesh by a plane.
//
// A mesh which does not touch the plane yields an empty result, not an
// error. Faces which cross the plane at more than two points are reported
// through the logger and in the result's Anomalies, and contribute no edge.
func (s *Sectioner) Section(m *Mesh, plane Plane) (*SectionResult, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := plane.normalize(); err != nil {
		return nil, err
	}

	res := &SectionResult{
		Vertices: []model3d.Coord3D{},
		Edges:    []SectionEdge{},
	}
	vertexIndex := map[model3d.Coord3D]int{}

	edgeVertex := make([]int, len(m.Edges))
	for i, e := range m.Edges {
		edgeVertex[i] = -1
		isect, ok := s.edgeIntersection(&plane, m.Vertices[e[0]], m.Vertices[e[1]])
		if !ok {
			continue
		}
		idx, ok := vertexIndex[isect]
		if !ok {
			idx = len(res.Vertices)
			vertexIndex[isect] = idx
			res.Vertices = append(res.Vertices, isect)
		}
		edgeVertex[i] = idx
	}

	seenEdges := map[SectionEdge]bool{}
	for faceIdx, edges := range m.faceEdges() {
		points := make([]int, 0, 2)
		for _, edgeIdx := range edges {
			v := edgeVertex[edgeIdx]
			if v == -1 || slices.Contains(points, v) {
				continue
			}
			points = append(points, v)
		}
		if len(points) == 2 {
			edge := newSectionEdge(points[0], points[1])
			if !seenEdges[edge] {
				seenEdges[edge] = true
				res.Edges = append(res.Edges, edge)
			}
		} else if len(points) > 2 {
			res.Anomalies = append(res.Anomalies, FaceAnomaly{Face: faceIdx, Points: len(points)})
			s.logger().Warn(
				"face crosses plane at more than two points",
				zap.Int("face", faceIdx),
				zap.Ints("points", points),
			)
		}
	}

	return res, nil
}

// SectionAll cuts every mesh with the same plane, returning one result per
// mesh in the same order.
//
// Meshes are processed independently across Goroutines.
func (s *Sectioner) SectionAll(meshes []*Mesh, plane Plane) ([]*SectionResult, error) {
	results := make([]*SectionResult, len(meshes))
	errs := make([]error, len(meshes))
	essentials.ConcurrentMap(s.Concurrency, len(meshes), func(i int) {
		results[i], errs[i] = s.Section(meshes[i], plane)
	})
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// edgeIntersection classifies the plane intersection of the line through an
// edge, accepting it only when it lies on the segment from p1 to p2.
func (s *Sectioner) edgeIntersection(plane *Plane, p1, p2 model3d.Coord3D) (model3d.Coord3D, bool) {
	isect, ok := plane.IntersectLine(p1, p2)
	if !ok {
		return isect, false
	}

	v1 := p2.Sub(p1)
	m1 := v1.Norm()
	v2 := isect.Sub(p1)
	m2 := v2.Norm()

	// The intersection lies on the line, so the directions are either equal
	// or opposite, unless the intersection is the start point itself.
	var d float64
	if m1 != 0 && m2 != 0 {
		d = v1.Scale(1 / m1).Dot(v2.Scale(1 / m2))
	}

	if d > s.directionTolerance() && m2 <= m1 {
		return isect, true
	} else if math.Abs(d) < s.coincidentTolerance() {
		return isect, true
	}
	return isect, false
}

func (s *Sectioner) directionTolerance() float64 {
	if s.DirectionTolerance == 0 {
		return DefaultDirectionTolerance
	}
	return s.DirectionTolerance
}

func (s *Sectioner) coincidentTolerance() float64 {
	if s.CoincidentTolerance == 0 {
		return DefaultCoincidentTolerance
	}
	return s.CoincidentTolerance
}

func (s *Sectioner) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
