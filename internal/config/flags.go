package config

import "flag"

var (
	flagConfig       = flag.String("config", "", "Path to config file (.yaml or .toml)")
	flagDebug        = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile      = flag.String("log-file", "", "Write logs to this file as well")
	flagNormalize    = flag.String("normalize", "", "Normalization: full, rotate-only or none")
	flagBoundsSeed   = flag.String("bounds-seed", "", "Bounding box seed: origin or first-vertex")
	flagFaceGeometry = flag.String("face-geometry", "", "Face normal/centroid corners: first-three or polygon")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments (command and its operands).
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagNormalize != "" {
		cfg.Parse.Normalize = *flagNormalize
	}
	if *flagBoundsSeed != "" {
		cfg.Parse.BoundsSeed = *flagBoundsSeed
	}
	if *flagFaceGeometry != "" {
		cfg.Parse.FaceGeometry = *flagFaceGeometry
	}
}
