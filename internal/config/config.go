// Package config handles loading the body profile pipeline configuration.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
	"github.com/unixpickle/xsect/xsect"
)

// Config holds all pipeline settings.
type Config struct {
	Meshes   []string        `yaml:"meshes"`
	Stations []StationConfig `yaml:"stations"`
	Section  SectionConfig   `yaml:"section"`
	Sampling SamplingConfig  `yaml:"sampling"`
	Export   ExportConfig    `yaml:"export"`
	Logging  LoggingConfig   `yaml:"logging"`
}

// Vec3 is a 3D vector written as a YAML sequence.
//
// It is also a flag.Value which parses "x,y,z".
type Vec3 [3]float64

func (v *Vec3) String() string {
	return fmt.Sprintf("%g,%g,%g", v[0], v[1], v[2])
}

func (v *Vec3) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return errors.Errorf("expected x,y,z but got %q", s)
	}
	var res Vec3
	for i, p := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return errors.Wrapf(err, "component %d of %q", i, s)
		}
		res[i] = x
	}
	*v = res
	return nil
}

// Coord converts v to a model3d coordinate.
func (v Vec3) Coord() model3d.Coord3D {
	return model3d.XYZ(v[0], v[1], v[2])
}

// StationConfig places one cutting plane.
type StationConfig struct {
	Name   string `yaml:"name"`
	Point  Vec3   `yaml:"point"`
	Normal Vec3   `yaml:"normal"`
}

// SectionConfig holds the edge classification tolerances.
type SectionConfig struct {
	DirectionTolerance  float64 `yaml:"direction_tolerance"`
	CoincidentTolerance float64 `yaml:"coincident_tolerance"`
}

// SamplingConfig holds the radial sampling settings.
type SamplingConfig struct {
	NumSamples  int       `yaml:"num_samples"`
	HalfSection bool      `yaml:"half_section"`
	Angles      []float64 `yaml:"angles,omitempty"`
	Mode        string    `yaml:"mode"`
	Center      string    `yaml:"center"`
	// Axis is the direction of the 0 degree ray. It becomes the vertical
	// axis of the body, and mirroring reflects across it.
	Axis Vec3 `yaml:"axis"`
}

// ExportConfig holds the body file settings.
type ExportConfig struct {
	Output           string  `yaml:"output"`
	BodyIndex        int     `yaml:"body_index"`
	Scale            float64 `yaml:"scale"`
	Mirror           bool    `yaml:"mirror"`
	LongitudinalAxis Vec3    `yaml:"longitudinal_axis"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with default values and no inputs.
func Default() *Config {
	return &Config{
		Section: SectionConfig{
			DirectionTolerance:  xsect.DefaultDirectionTolerance,
			CoincidentTolerance: xsect.DefaultCoincidentTolerance,
		},
		Sampling: SamplingConfig{
			NumSamples:  9,
			HalfSection: true,
			Mode:        xsect.Outer.String(),
			Center:      xsect.CenterBounds.String(),
			Axis:        Vec3{0, 1, 0},
		},
		Export: ExportConfig{
			Output:           "body.acf",
			Scale:            xsect.MetersToFeet,
			Mirror:           true,
			LongitudinalAxis: Vec3{0, 0, 1},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks that the config describes a runnable pipeline.
func (c *Config) Validate() error {
	if len(c.Meshes) == 0 {
		return errors.New("config: no meshes")
	}
	if len(c.Stations) == 0 {
		return errors.New("config: no stations")
	}
	if len(c.Stations) > xsect.MaxStations {
		return errors.Errorf("config: %d stations exceeds maximum of %d", len(c.Stations),
			xsect.MaxStations)
	}
	if _, err := xsect.ParseMode(c.Sampling.Mode); err != nil {
		return errors.Wrap(err, "config")
	}
	if _, err := xsect.ParseCenterPolicy(c.Sampling.Center); err != nil {
		return errors.Wrap(err, "config")
	}
	if _, err := c.AngleSchedule().Angles(); err != nil {
		return errors.Wrap(err, "config")
	}
	return nil
}

// Sectioner creates the sectioner described by the config.
func (c *Config) Sectioner() *xsect.Sectioner {
	return &xsect.Sectioner{
		DirectionTolerance:  c.Section.DirectionTolerance,
		CoincidentTolerance: c.Section.CoincidentTolerance,
	}
}

// AngleSchedule creates the angle schedule described by the config.
func (c *Config) AngleSchedule() *xsect.AngleSchedule {
	res := &xsect.AngleSchedule{
		NumSamples:  c.Sampling.NumSamples,
		HalfSection: c.Sampling.HalfSection,
	}
	if len(c.Sampling.Angles) > 0 {
		res.Override = c.Sampling.Angles
	}
	return res
}
