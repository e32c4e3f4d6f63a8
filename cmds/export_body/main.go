package main

import (
	"flag"
	"os"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/xsect/internal/config"
	"github.com/unixpickle/xsect/internal/logger"
	"github.com/unixpickle/xsect/xsect"
	"go.uber.org/zap"
)

func main() {
	config.RegisterFlags()
	flag.Parse()

	cfg, err := config.Load()
	essentials.Must(err)
	if path := config.WriteConfigPath(); path != "" {
		essentials.Must(cfg.SaveTo(path))
		return
	}
	essentials.Must(cfg.Validate())
	essentials.Must(logger.Init(cfg.Logging.Level, cfg.Logging.LogFile))
	defer logger.Sync()

	meshes := loadMeshes(cfg.Meshes)
	stations, err := sampleStations(cfg, meshes)
	essentials.Must(err)

	body, err := xsect.NewBody(stations, cfg.Export.Mirror)
	essentials.Must(err)

	logger.Log.Info("writing body", zap.String("path", cfg.Export.Output),
		zap.Int("stations", len(body.Stations)))
	f, err := os.Create(cfg.Export.Output)
	essentials.Must(err)
	err = xsect.WriteBody(f, body, xsect.BodyOptions{
		Index: cfg.Export.BodyIndex,
		Scale: cfg.Export.Scale,
	})
	f.Close()
	essentials.Must(err)
}

func loadMeshes(paths []string) []*xsect.Mesh {
	meshes := make([]*xsect.Mesh, len(paths))
	errs := make([]error, len(paths))
	essentials.ConcurrentMap(0, len(paths), func(i int) {
		meshes[i], errs[i] = xsect.Load(paths[i], xsect.ReadMeshSTL)
	})
	for i, err := range errs {
		essentials.Must(err)
		logger.Log.Info(
			"loaded mesh",
			zap.String("path", paths[i]),
			zap.Int("vertices", len(meshes[i].Vertices)),
			zap.Int("faces", len(meshes[i].Faces)),
		)
	}
	return meshes
}
