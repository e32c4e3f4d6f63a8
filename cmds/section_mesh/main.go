package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model3d"
	"github.com/unixpickle/xsect/internal/config"
	"github.com/unixpickle/xsect/internal/logger"
	"github.com/unixpickle/xsect/xsect"
	"go.uber.org/zap"
)

func main() {
	var point, translate config.Vec3
	normal := config.Vec3(xsect.DefaultCutNormal().Array())
	var directionTol float64
	var coincidentTol float64
	var logLevel string
	flag.Var(&point, "point", "a point on the cutting plane, as x,y,z")
	flag.Var(&normal, "normal", "the cutting plane normal, as x,y,z")
	flag.Var(&translate, "translate", "offset applied to the mesh before cutting, as x,y,z")
	flag.Float64Var(&directionTol, "direction-tol", xsect.DefaultDirectionTolerance,
		"minimum parameter for a crossing inside an edge")
	flag.Float64Var(&coincidentTol, "coincident-tol", xsect.DefaultCoincidentTolerance,
		"maximum parameter for a crossing at an edge start")
	flag.StringVar(&logLevel, "log-level", "info", "log level")
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: section_mesh [flags] <input.stl> <output.json>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		os.Exit(1)
	}
	inputPath, outputPath := args[0], args[1]

	essentials.Must(logger.Init(logLevel, ""))
	defer logger.Sync()

	logger.Log.Info("loading mesh", zap.String("path", inputPath))
	mesh, err := xsect.Load(inputPath, xsect.ReadMeshSTL)
	essentials.Must(err)
	if offset := translate.Coord(); offset != (model3d.Coord3D{}) {
		mesh = mesh.Transform(offset.Add)
	}
	logger.Log.Info(
		"loaded mesh",
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("edges", len(mesh.Edges)),
		zap.Int("faces", len(mesh.Faces)),
	)

	plane, err := xsect.NewPlane(point.Coord(), normal.Coord())
	essentials.Must(err)
	sectioner := &xsect.Sectioner{
		DirectionTolerance:  directionTol,
		CoincidentTolerance: coincidentTol,
		Logger:              logger.Log,
	}
	res, err := sectioner.Section(mesh, *plane)
	essentials.Must(err)
	if res.IsEmpty() {
		logger.Log.Warn("plane does not cut the mesh")
	}
	logger.Log.Info(
		"computed section",
		zap.Int("vertices", len(res.Vertices)),
		zap.Int("edges", len(res.Edges)),
		zap.Int("anomalies", len(res.Anomalies)),
	)

	essentials.Must(xsect.Save(outputPath, res, xsect.WriteSectionResult))
}
