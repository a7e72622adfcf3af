package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/radiation-monitor/internal/logger"
)

// SensorKind names a sensor variant.
type SensorKind string

const (
	// SensorKindLive selects the simulated plant sensor.
	SensorKindLive SensorKind = "live"
	// SensorKindConstant selects a sensor returning one fixed value.
	SensorKindConstant SensorKind = "constant"
	// SensorKindSequence selects a sensor replaying a scripted list of values.
	SensorKindSequence SensorKind = "sequence"
)

// SensorConfig selects and parameterizes the reading source.
type SensorConfig struct {
	// Kind is one of live, constant or sequence.
	Kind SensorKind `yaml:"kind"`
	// Value is the reading of the constant sensor.
	Value float64 `yaml:"value,omitempty"`
	// Sequence lists the readings of the sequence sensor.
	Sequence []float64 `yaml:"sequence,omitempty"`
	// Seed makes the live sensor reproducible when set.
	Seed *uint64 `yaml:"seed,omitempty"`
}

// Config holds the parameters of a monitoring run.
type Config struct {
	// Iterations is the number of readings taken by the run.
	Iterations int `yaml:"iterations"`
	// Interval is the delay between two readings.
	Interval time.Duration `yaml:"interval"`
	// Sensor selects the reading source.
	Sensor SensorConfig `yaml:"sensor"`
	// LogLevel is the minimum level of diagnostic logs.
	LogLevel string `yaml:"log_level"`
	// ReportFile is where the JSON run report is written. Empty disables the report.
	ReportFile string `yaml:"report_file,omitempty"`
}

const (
	// DefaultConfigFilename is the default filename for run settings.
	DefaultConfigFilename = "radiation-monitor.yaml"

	// DefaultIterations is the number of readings taken by the reference run.
	DefaultIterations = 10

	// DefaultInterval is the delay between readings of the reference run.
	DefaultInterval = 500 * time.Millisecond

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"

	// DefaultFilePermissions is the default file permission for written files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errNegativeIterations is returned when the iteration count is below zero.
	errNegativeIterations = errors.New("iterations must not be negative")
	// errNegativeInterval is returned when the delay between readings is below zero.
	errNegativeInterval = errors.New("interval must not be negative")
	// errUnknownSensorKind is returned for an unsupported sensor kind.
	errUnknownSensorKind = errors.New("unknown sensor kind")
	// errSequenceRequired is returned when the sequence sensor has no values.
	errSequenceRequired = errors.New("sequence sensor requires at least one value")
	// errUnknownLogLevel is returned when the log level cannot be parsed.
	errUnknownLogLevel = errors.New("unknown log level")
)

// Default returns a configuration with every field set to its default.
func Default() *Config {
	cfg := new(Config)

	// Validate only fills defaults on an empty config.
	_ = Validate(cfg)

	return cfg
}

// Load reads configuration from the provided path and validates it.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the settings and fills defaults for unset fields.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	switch {
	case cfg.Iterations < 0:
		return errNegativeIterations
	case cfg.Iterations == 0:
		cfg.Iterations = DefaultIterations
	}

	switch {
	case cfg.Interval < 0:
		return errNegativeInterval
	case cfg.Interval == 0:
		cfg.Interval = DefaultInterval
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, cfg.LogLevel)
	}

	return validateSensor(&cfg.Sensor)
}

// validateSensor checks the sensor section and defaults the kind to live.
func validateSensor(s *SensorConfig) error {
	switch s.Kind {
	case "":
		s.Kind = SensorKindLive
	case SensorKindLive, SensorKindConstant:
	case SensorKindSequence:
		if len(s.Sequence) == 0 {
			return errSequenceRequired
		}
	default:
		return fmt.Errorf("%w: %q", errUnknownSensorKind, s.Kind)
	}

	return nil
}
