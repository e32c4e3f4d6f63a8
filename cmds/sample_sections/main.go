package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/xsect/internal/config"
	"github.com/unixpickle/xsect/internal/logger"
	"github.com/unixpickle/xsect/xsect"
	"go.uber.org/zap"
)

func main() {
	normal := config.Vec3{0, 0, 1}
	axis := config.Vec3{0, 1, 0}
	var angles anglesFlag
	var name string
	var position float64
	var numSamples int
	var full bool
	var modeName string
	var centerName string
	var pad bool
	var logLevel string
	flag.Var(&normal, "normal", "sampling plane normal, as x,y,z")
	flag.Var(&axis, "axis", "direction of the 0 degree ray, which is the body's vertical axis, as x,y,z")
	flag.Var(&angles, "angles", "comma-separated interior angles replacing even spacing")
	flag.StringVar(&name, "name", "", "station name")
	flag.Float64Var(&position, "position", 0, "longitudinal station position")
	flag.IntVar(&numSamples, "samples", 9, "number of half-section samples")
	flag.BoolVar(&full, "full", false, "sample the full section instead of half")
	flag.StringVar(&modeName, "mode", "outer", "sampling mode (outer or inner)")
	flag.StringVar(&centerName, "center", "bounds", "ray origin policy (bounds or centroid)")
	flag.BoolVar(&pad, "pad", false, "fill rays which miss every edge with the previous point")
	flag.StringVar(&logLevel, "log-level", "info", "log level")
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: sample_sections [flags] <output.json> <section.json> ...")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		os.Exit(1)
	}
	outputPath, inputPaths := args[0], args[1:]

	essentials.Must(logger.Init(logLevel, ""))
	defer logger.Sync()

	mode, err := xsect.ParseMode(modeName)
	essentials.Must(err)
	center, err := xsect.ParseCenterPolicy(centerName)
	essentials.Must(err)
	frame, err := xsect.NewFrame(normal.Coord(), axis.Coord())
	essentials.Must(err)
	schedule := &xsect.AngleSchedule{
		NumSamples:  numSamples,
		HalfSection: !full,
		Override:    angles,
	}
	rayAngles, err := schedule.Angles()
	essentials.Must(err)

	sections := make([]*xsect.SectionResult, len(inputPaths))
	for i, path := range inputPaths {
		sections[i], err = xsect.Load(path, xsect.ReadSectionResult)
		essentials.Must(err)
	}

	sampler := &xsect.Sampler{Frame: frame, Center: center, Mode: mode}
	curve, err := sampler.Sample(sections, rayAngles)
	essentials.Must(err)
	if len(curve) == 0 {
		essentials.Die("no ray crossed any section edge")
	}
	if missing := len(rayAngles) - len(curve); missing > 0 {
		logger.Log.Warn("rays missed every edge", zap.Int("missing", missing))
		if pad {
			curve = curve.Filled(rayAngles)
		}
	}
	logger.Log.Info("sampled boundary", zap.Int("points", len(curve)), zap.Stringer("mode", mode))

	station := &xsect.Station{Name: name, Position: position, Curve: curve}
	essentials.Must(xsect.Save(outputPath, station, xsect.WriteStation))
}
