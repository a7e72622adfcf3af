package sensor

import "context"

// Constant always reports the same value.
type Constant struct {
	value float64
}

// NewConstant creates a sensor that returns value on every call.
func NewConstant(value float64) *Constant {
	return &Constant{
		value: value,
	}
}

// NextMeasurement returns the configured value.
func (c *Constant) NextMeasurement(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	return c.value, nil
}
