package config

// Config represents the complete configuration for the langid application.
// It covers all commands (train, score, identify, models, serve) and is
// loaded from configuration files, environment variables, and command-line
// flags.
type Config struct {
	// Global settings
	ModelsDir string `mapstructure:"models_dir" yaml:"models_dir" json:"models_dir"`
	LogLevel  string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose   bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Training defaults (for the train command)
	Train TrainConfig `mapstructure:"train" yaml:"train" json:"train"`

	// Identification settings
	Identify IdentifyConfig `mapstructure:"identify" yaml:"identify" json:"identify"`

	// Output formatting
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Server configuration (for serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`
}

// TrainConfig contains default hyperparameters for model training.
type TrainConfig struct {
	NgramSize     int     `mapstructure:"ngram_size" yaml:"ngram_size" json:"ngram_size"`
	Smooth        float64 `mapstructure:"smooth" yaml:"smooth" json:"smooth"`
	PadUtterances bool    `mapstructure:"pad_utterances" yaml:"pad_utterances" json:"pad_utterances"`
	OutputDir     string  `mapstructure:"output_dir" yaml:"output_dir" json:"output_dir"`
}

// IdentifyConfig contains settings for multi-model identification.
type IdentifyConfig struct {
	// Workers bounds the concurrent scoring goroutines (0 = number of CPUs).
	Workers int `mapstructure:"workers" yaml:"workers" json:"workers"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string `mapstructure:"host" yaml:"host" json:"host"`
	Port            int    `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin      string `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	MaxBodyKB       int    `mapstructure:"max_body_kb" yaml:"max_body_kb" json:"max_body_kb"`
	TimeoutSec      int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
}
