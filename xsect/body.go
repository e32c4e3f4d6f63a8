package xsect

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/pkg/errors"
)

const (
	// MaxStations is the number of stations an aircraft body holds.
	MaxStations = 20

	// MaxStationPoints is the number of point slots in one station.
	MaxStationPoints = 18

	// MaxHalfStationPoints is the largest half profile which still fits a
	// station once mirrored.
	MaxHalfStationPoints = MaxStationPoints / 2

	// MinStationPoints is the smallest usable station profile.
	MinStationPoints = 3

	// MetersToFeet converts section coordinates to body file units.
	MetersToFeet = 3.28084
)

// A Station is one cross-section of a body at a longitudinal position.
type Station struct {
	Name     string        `json:"name"`
	Position float64       `json:"position"`
	Curve    BoundaryCurve `json:"curve"`
}

// A Body is an ordered list of stations, front to back.
//
// Station profiles are laid out in their sampling frame: the frame X axis
// (the 0 to 180 degree line) is the vertical axis of the body, and frame Y
// is the lateral axis.
type Body struct {
	Stations []Station

	// Mirror means every profile is a half which gets reflected across the
	// vertical axis when written.
	Mirror bool
}

// NewBody sorts the stations by position and checks that they can be written
// as a single body.
//
// If mirror is true, every station must be a half profile which still fits
// once its reflection is appended.
func NewBody(stations []Station, mirror bool) (*Body, error) {
	sorted := append([]Station{}, stations...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})
	b := &Body{Stations: sorted, Mirror: mirror}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks the station count and that every station has the same
// number of points, within the limits for b.Mirror.
func (b *Body) Validate() error {
	if len(b.Stations) == 0 {
		return invalidInput("body has no stations")
	}
	if len(b.Stations) > MaxStations {
		return invalidInput("body has %d stations but at most %d are allowed",
			len(b.Stations), MaxStations)
	}
	maxPoints := MaxStationPoints
	if b.Mirror {
		maxPoints = MaxHalfStationPoints
	}
	first := b.Stations[0]
	count := len(first.Curve)
	for _, s := range b.Stations {
		if len(s.Curve) == 0 {
			return invalidInput("station %q contains no points", s.Name)
		}
		if len(s.Curve) != count {
			return invalidInput("station %q has %d points but station %q has %d",
				s.Name, len(s.Curve), first.Name, count)
		}
	}
	if count < MinStationPoints || count > maxPoints {
		return invalidInput("stations have %d points but need between %d and %d",
			count, MinStationPoints, maxPoints)
	}
	return nil
}

// BodyOptions controls WriteBody.
type BodyOptions struct {
	// Index is the body number within the aircraft file.
	Index int

	// Scale converts section units into file units.
	// If 0, MetersToFeet is used.
	Scale float64
}

// WriteBody writes the station geometry of b as aircraft file property lines.
//
// The file axes are lateral, vertical, longitudinal. Longitudinal positions
// are written relative to the first station.
func WriteBody(w io.Writer, b *Body, opts BodyOptions) error {
	if err := b.Validate(); err != nil {
		return errors.Wrap(err, "write body")
	}
	scale := opts.Scale
	if scale == 0 {
		scale = MetersToFeet
	}
	buf := bufio.NewWriter(w)
	zero := b.Stations[0].Position
	for i, station := range b.Stations {
		points := station.Curve
		if b.Mirror {
			points = mirrorProfile(points)
		}
		z := (station.Position - zero) * scale
		for j, p := range points {
			values := [3]float64{p.Point.Y * scale, p.Point.X * scale, z}
			for axis, v := range values {
				_, err := fmt.Fprintf(buf, "P _body/%d/_geo_xyz/%d,%d,%d %.6f\n",
					opts.Index, i, j, axis, roundZero(v))
				if err != nil {
					return errors.Wrap(err, "write body")
				}
			}
		}
	}
	return errors.Wrap(buf.Flush(), "write body")
}

// mirrorProfile appends the reflection of a half profile across the 0 to 180
// degree line, walking back from 180 to 360 degrees.
func mirrorProfile(c BoundaryCurve) BoundaryCurve {
	res := append(BoundaryCurve{}, c...)
	for i := len(c) - 1; i >= 0; i-- {
		s := c[i]
		s.Point.Y = -s.Point.Y
		s.Angle = 360 - s.Angle
		res = append(res, s)
	}
	return res
}

// roundZero maps values which print as zero to exactly zero, so the file
// never contains "-0.000000".
func roundZero(v float64) float64 {
	if math.Abs(v) < 5e-7 {
		return 0
	}
	return v
}
