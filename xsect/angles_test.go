package xsect

import (
	"testing"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

func TestAngleSchedule(t *testing.T) {
	tests := []struct {
		name     string
		schedule AngleSchedule
		expected []float64
	}{
		{"half 3", AngleSchedule{NumSamples: 3, HalfSection: true}, []float64{0, 90, 180}},
		{"half 5", AngleSchedule{NumSamples: 5, HalfSection: true}, []float64{0, 45, 90, 135, 180}},
		{"full 3", AngleSchedule{NumSamples: 3}, []float64{0, 90, 180, 270}},
		{
			"full 5",
			AngleSchedule{NumSamples: 5},
			[]float64{0, 45, 90, 135, 180, 225, 270, 315},
		},
		{
			"override interior",
			AngleSchedule{HalfSection: true, Override: []float64{60, 30}},
			[]float64{0, 30, 60, 180},
		},
		{
			"override with poles",
			AngleSchedule{HalfSection: true, Override: []float64{0, 90, 180}},
			[]float64{0, 90, 180},
		},
		{
			"override full",
			AngleSchedule{NumSamples: 4, Override: []float64{45, 120}},
			[]float64{0, 45, 120, 180, 240, 315},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := tt.schedule.Angles()
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(actual, tt.expected) {
				t.Fatalf("expected %v but got %v", tt.expected, actual)
			}
		})
	}
}

func TestAngleScheduleFullCount(t *testing.T) {
	for n := 3; n < 20; n++ {
		angles, err := (&AngleSchedule{NumSamples: n}).Angles()
		if err != nil {
			t.Fatal(err)
		}
		if len(angles) != 2*n-2 {
			t.Errorf("%d samples: expected %d angles but got %d", n, 2*n-2, len(angles))
		}
		if !slices.IsSorted(angles) {
			t.Errorf("%d samples: angles not ascending: %v", n, angles)
		}
	}
}

func TestAngleScheduleErrors(t *testing.T) {
	for _, schedule := range []AngleSchedule{
		{NumSamples: 2, HalfSection: true},
		{NumSamples: 0},
		{HalfSection: true, Override: []float64{}},
		{NumSamples: 5, Override: []float64{90}},
		{Override: []float64{200}},
	} {
		if _, err := schedule.Angles(); !errors.Is(err, ErrConfiguration) {
			t.Errorf("schedule %+v: expected configuration error but got %v", schedule, err)
		}
	}
}
