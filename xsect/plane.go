package xsect

import (
	"math"

	"github.com/unixpickle/model3d/model3d"
)

// ParallelEpsilon is the smallest magnitude of dot(normal, direction) for
// which a line is considered to cross a plane rather than run parallel to it.
const ParallelEpsilon = 1e-12

// A Plane is an infinite cutting plane through Point with unit Normal.
type Plane struct {
	Point  model3d.Coord3D
	Normal model3d.Coord3D
}

// NewPlane creates a plane, normalizing the normal vector.
func NewPlane(point, normal model3d.Coord3D) (*Plane, error) {
	p := &Plane{Point: point, Normal: normal}
	if err := p.normalize(); err != nil {
		return nil, err
	}
	return p, nil
}

// DefaultCutNormal is the cutting direction of an unrotated cutter object.
// Callers rotate it by the cutter's orientation.
func DefaultCutNormal() model3d.Coord3D {
	return model3d.Z(-1)
}

func (p *Plane) normalize() error {
	norm := p.Normal.Norm()
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return invalidInput("plane normal %v is degenerate", p.Normal)
	}
	p.Normal = p.Normal.Scale(1 / norm)
	return nil
}

// SignedDist gets the signed distance from the plane to c, positive on the
// side the normal points toward.
func (p *Plane) SignedDist(c model3d.Coord3D) float64 {
	return p.Normal.Dot(c.Sub(p.Point))
}

// IntersectLine finds where the infinite line through p1 and p2 meets the
// plane. If the line is parallel to the plane, false is returned.
func (p *Plane) IntersectLine(p1, p2 model3d.Coord3D) (model3d.Coord3D, bool) {
	// x = o + tr (line)
	// n*(x - q) = 0 (plane)
	// => t = n*(q - o)/(n*r)
	r := p2.Sub(p1)
	dot := p.Normal.Dot(r)
	if math.Abs(dot) <= ParallelEpsilon {
		return model3d.Coord3D{}, false
	}
	t := p.Normal.Dot(p.Point.Sub(p1)) / dot
	return p1.Add(r.Scale(t)), true
}
