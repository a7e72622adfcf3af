package sensor

import (
	"context"
	"errors"
	"fmt"

	"github.com/oshokin/radiation-monitor/internal/config"
)

// Sensor produces radioactivity measurements on demand.
type Sensor interface {
	// NextMeasurement returns the next reading of the sensor.
	NextMeasurement(ctx context.Context) (float64, error)
}

var (
	// ErrEmptySequence is returned when a sequence sensor is built without values.
	ErrEmptySequence = errors.New("at least one value must be provided")
	// ErrUnknownKind is returned when configuration names an unsupported sensor.
	ErrUnknownKind = errors.New("unknown sensor kind")
)

// FromConfig builds the sensor variant selected by the configuration.
//
//nolint:ireturn // Callers only need the capability.
func FromConfig(cfg *config.SensorConfig) (Sensor, error) {
	if cfg == nil {
		return NewLive(), nil
	}

	switch cfg.Kind {
	case config.SensorKindLive, "":
		var opts []LiveOption
		if cfg.Seed != nil {
			opts = append(opts, WithSeed(*cfg.Seed))
		}

		return NewLive(opts...), nil
	case config.SensorKindConstant:
		return NewConstant(cfg.Value), nil
	case config.SensorKindSequence:
		s, err := NewSequence(cfg.Sequence...)
		if err != nil {
			return nil, fmt.Errorf("sequence sensor: %w", err)
		}

		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, cfg.Kind)
	}
}
