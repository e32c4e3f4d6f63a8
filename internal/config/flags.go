package config

import "flag"

var (
	flagConfig      string
	flagWriteConfig string
	flagDebug       bool
	flagOutput      string
	flagMode        string
	flagCenter      string
	flagSamples     int
	flagFull        bool
)

// RegisterFlags adds the config overrides to the command line flags. Call it
// before flag.Parse.
func RegisterFlags() {
	flag.StringVar(&flagConfig, "config", "", "path to config file")
	flag.StringVar(&flagWriteConfig, "write-config", "",
		"write the effective config to this path and exit")
	flag.BoolVar(&flagDebug, "debug", false, "enable debug logging")
	flag.StringVar(&flagOutput, "output", "", "path to output body file")
	flag.StringVar(&flagMode, "mode", "", "sampling mode (outer or inner)")
	flag.StringVar(&flagCenter, "center", "", "ray origin policy (bounds or centroid)")
	flag.IntVar(&flagSamples, "samples", 0, "number of half-section samples")
	flag.BoolVar(&flagFull, "full", false, "sample the full section instead of half")
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return flagConfig
}

// WriteConfigPath returns the path given to -write-config, if any.
func WriteConfigPath() string {
	return flagWriteConfig
}

// applyFlags applies command-line overrides to the config.
func applyFlags(cfg *Config) {
	if flagDebug {
		cfg.Logging.Level = "debug"
	}
	if flagOutput != "" {
		cfg.Export.Output = flagOutput
	}
	if flagMode != "" {
		cfg.Sampling.Mode = flagMode
	}
	if flagCenter != "" {
		cfg.Sampling.Center = flagCenter
	}
	if flagSamples > 0 {
		cfg.Sampling.NumSamples = flagSamples
	}
	if flagFull {
		cfg.Sampling.HalfSection = false
		cfg.Export.Mirror = false
	}
}
