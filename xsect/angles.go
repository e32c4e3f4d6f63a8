package xsect

import "golang.org/x/exp/slices"

// An AngleSchedule produces the ray angles, in degrees, for a Sampler.
type AngleSchedule struct {
	// NumSamples is the number of evenly spaced angles over the 180 degree
	// half sweep, poles included.
	//
	// When Override is set, a non-zero NumSamples is the expected length of
	// the override list with poles included.
	NumSamples int

	// HalfSection limits rays to the 0-180 degree half sweep. Otherwise the
	// interior angles are reflected across the 0-180 axis to cover the full
	// circle.
	HalfSection bool

	// Override replaces the even spacing. It usually holds only the interior
	// angles; the 0 and 180 degree poles are always added.
	Override []float64
}

// Angles generates the ray angles in ascending order.
//
// Reflected angles are reported as 360-a rather than -a, which keeps the
// list ascending and the curve ordered around the loop.
func (a *AngleSchedule) Angles() ([]float64, error) {
	half, err := a.halfAngles()
	if err != nil {
		return nil, err
	}
	if a.HalfSection {
		return half, nil
	}
	res := append([]float64{}, half...)
	for i := len(half) - 2; i > 0; i-- {
		res = append(res, 360-half[i])
	}
	return res, nil
}

func (a *AngleSchedule) halfAngles() ([]float64, error) {
	if a.Override != nil {
		return a.overrideAngles()
	}
	if a.NumSamples < MinSampleAngles {
		return nil, badConfig("need at least %d samples but got %d", MinSampleAngles,
			a.NumSamples)
	}
	step := 180 / float64(a.NumSamples-1)
	res := make([]float64, a.NumSamples)
	for i := range res {
		res[i] = step * float64(i)
	}
	res[len(res)-1] = 180
	return res, nil
}

func (a *AngleSchedule) overrideAngles() ([]float64, error) {
	res := []float64{0}
	interior := append([]float64{}, a.Override...)
	slices.Sort(interior)
	for _, angle := range interior {
		if angle < 0 || angle > 180 {
			return nil, badConfig("override angle %f is outside of [0, 180]", angle)
		}
		if angle == 0 || angle == 180 || angle == res[len(res)-1] {
			continue
		}
		res = append(res, angle)
	}
	res = append(res, 180)
	if len(res) < MinSampleAngles {
		return nil, badConfig("need at least %d samples but override gives %d", MinSampleAngles,
			len(res))
	}
	if a.NumSamples != 0 && len(res) != a.NumSamples {
		return nil, badConfig("override gives %d angles but %d samples are expected", len(res),
			a.NumSamples)
	}
	return res, nil
}
