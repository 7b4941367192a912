package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Definitions lists the definition files to process, in order.
	Definitions []string
	// Renderer is an explicit renderer binary path; empty means locate
	// the default binary.
	Renderer string

	// DryRun logs every command and resolved extension without executing
	// anything.
	DryRun bool
	// SheetOnly regenerates markers and uploads only the marker file.
	SheetOnly bool

	SkipMap     bool
	SkipMarkers bool
	SkipRemote  bool
	SkipWebhook bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Definitions) == 0 {
		return nil, errors.New("at least one definition file is required")
	}
	return &cfg, nil
}
