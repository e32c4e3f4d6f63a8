package main

import (
	"github.com/pkg/errors"
	"github.com/unixpickle/xsect/internal/config"
	"github.com/unixpickle/xsect/internal/logger"
	"github.com/unixpickle/xsect/xsect"
	"go.uber.org/zap"
)

// sampleStations cuts every mesh at each configured station and samples the
// combined section into one station profile.
func sampleStations(cfg *config.Config, meshes []*xsect.Mesh) ([]xsect.Station, error) {
	mode, err := xsect.ParseMode(cfg.Sampling.Mode)
	if err != nil {
		return nil, err
	}
	center, err := xsect.ParseCenterPolicy(cfg.Sampling.Center)
	if err != nil {
		return nil, err
	}
	angles, err := cfg.AngleSchedule().Angles()
	if err != nil {
		return nil, err
	}
	longAxis := cfg.Export.LongitudinalAxis.Coord()
	if longAxis.Norm() == 0 {
		return nil, errors.New("longitudinal axis is zero")
	}
	longAxis = longAxis.Normalize()

	sectioner := cfg.Sectioner()
	sectioner.Logger = logger.Log

	var stations []xsect.Station
	for _, sc := range cfg.Stations {
		plane, err := xsect.NewPlane(sc.Point.Coord(), sc.Normal.Coord())
		if err != nil {
			return nil, errors.Wrapf(err, "station %q", sc.Name)
		}
		sections, err := sectioner.SectionAll(meshes, *plane)
		if err != nil {
			return nil, errors.Wrapf(err, "station %q", sc.Name)
		}
		frame, err := xsect.NewFrame(plane.Normal, cfg.Sampling.Axis.Coord())
		if err != nil {
			return nil, errors.Wrapf(err, "station %q", sc.Name)
		}
		sampler := &xsect.Sampler{Frame: frame, Center: center, Mode: mode}
		curve, err := sampler.Sample(sections, angles)
		if err != nil {
			return nil, errors.Wrapf(err, "station %q", sc.Name)
		}
		if len(curve) == 0 {
			return nil, errors.Errorf("station %q does not cut any mesh", sc.Name)
		}
		if len(curve) < len(angles) {
			logger.Log.Warn(
				"rays missed every edge; repeating previous point",
				zap.String("station", sc.Name),
				zap.Int("missing", len(angles)-len(curve)),
			)
			curve = curve.Filled(angles)
		}
		stations = append(stations, xsect.Station{
			Name:     sc.Name,
			Position: sc.Point.Coord().Dot(longAxis),
			Curve:    curve,
		})
		logger.Log.Debug("sampled station", zap.String("station", sc.Name),
			zap.Int("points", len(curve)))
	}
	return stations, nil
}
