package xsect

import (
	"math"

	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

// A Frame is a 2D coordinate system embedded in a sampling plane.
//
// Ray angles are measured from XAxis, rotating toward YAxis(), which is
// counter-clockwise when looking down Normal.
type Frame struct {
	Normal model3d.Coord3D
	XAxis  model3d.Coord3D
}

// DefaultFrame is the XY plane, with angles measured from +X toward +Y.
func DefaultFrame() Frame {
	return Frame{Normal: model3d.Z(1), XAxis: model3d.X(1)}
}

// NewFrame creates a frame for a plane normal, projecting the reference axis
// into the plane. If the axis is parallel to the normal, an arbitrary
// in-plane axis is used instead.
func NewFrame(normal, axis model3d.Coord3D) (Frame, error) {
	n := normal.Norm()
	if n == 0 || math.IsNaN(n) {
		return Frame{}, invalidInput("frame normal %v is degenerate", normal)
	}
	normal = normal.Scale(1 / n)
	axis = inPlane(normal, axis)
	if axis.Norm() < 1e-8 {
		axis = inPlane(normal, model3d.X(1))
		if axis.Norm() < 0.5 {
			axis = inPlane(normal, model3d.Y(1))
		}
	}
	return Frame{Normal: normal, XAxis: axis.Normalize()}, nil
}

func inPlane(normal, axis model3d.Coord3D) model3d.Coord3D {
	return axis.Sub(normal.Scale(normal.Dot(axis)))
}

// YAxis gets the second in-plane basis vector.
func (f Frame) YAxis() model3d.Coord3D {
	return f.Normal.Cross(f.XAxis)
}

// Project gets the in-plane coordinates of c.
func (f Frame) Project(c model3d.Coord3D) model2d.Coord {
	return model2d.XY(f.XAxis.Dot(c), f.YAxis().Dot(c))
}

// Lift maps in-plane coordinates back to 3D, keeping the out-of-plane offset
// of origin.
func (f Frame) Lift(c model2d.Coord, origin model3d.Coord3D) model3d.Coord3D {
	height := f.Normal.Dot(origin)
	return f.XAxis.Scale(c.X).Add(f.YAxis().Scale(c.Y)).Add(f.Normal.Scale(height))
}

// Direction gets the unit in-plane direction for an angle in degrees.
func (f Frame) Direction(degrees float64) model2d.Coord {
	theta := degrees * math.Pi / 180
	return model2d.XY(math.Cos(theta), math.Sin(theta))
}
