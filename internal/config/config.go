package config

import (
	"fmt"

	"github.com/MeKo-Tech/langid/internal/langmodel"
	"github.com/MeKo-Tech/langid/internal/models"
)

const (
	debugLevel = "debug"
	infoLevel  = "info"
	warnLevel  = "warn"
	errorLevel = "error"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// DefaultConfig returns the configuration with all default values applied.
func DefaultConfig() Config {
	return Config{
		ModelsDir: models.DefaultModelsDir,
		LogLevel:  infoLevel,
		Verbose:   false,
		Train: TrainConfig{
			NgramSize:     langmodel.DefaultNgramSize,
			Smooth:        langmodel.DefaultSmooth,
			PadUtterances: true,
			OutputDir:     models.DefaultModelsDir,
		},
		Identify: IdentifyConfig{
			Workers: 0,
		},
		Output: OutputConfig{
			Format: formatText,
		},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			CORSOrigin:      "*",
			MaxBodyKB:       64,
			TimeoutSec:      30,
			ShutdownTimeout: 10,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case debugLevel, infoLevel, warnLevel, errorLevel:
	default:
		return fmt.Errorf("invalid log_level %q (must be debug, info, warn, or error)", c.LogLevel)
	}

	if c.Train.NgramSize < 1 {
		return fmt.Errorf("invalid train.ngram_size %d (must be >= 1)", c.Train.NgramSize)
	}
	if c.Train.Smooth <= 0 {
		return fmt.Errorf("invalid train.smooth %g (must be > 0)", c.Train.Smooth)
	}

	if c.Identify.Workers < 0 {
		return fmt.Errorf("invalid identify.workers %d (must be >= 0)", c.Identify.Workers)
	}

	switch c.Output.Format {
	case formatText, formatJSON, formatYAML:
	default:
		return fmt.Errorf("invalid output.format %q (must be text, json, or yaml)", c.Output.Format)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be between 1 and 65535)", c.Server.Port)
	}
	if c.Server.MaxBodyKB < 1 {
		return fmt.Errorf("invalid server.max_body_kb %d (must be >= 1)", c.Server.MaxBodyKB)
	}
	if c.Server.TimeoutSec < 1 {
		return fmt.Errorf("invalid server.timeout_sec %d (must be >= 1)", c.Server.TimeoutSec)
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("invalid server.shutdown_timeout %d (must be >= 0)", c.Server.ShutdownTimeout)
	}

	return nil
}
