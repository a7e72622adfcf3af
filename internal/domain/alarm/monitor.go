package alarm

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/oshokin/radiation-monitor/internal/sensor"
)

// ErrNilSensor is returned when a Monitor is constructed without a sensor.
var ErrNilSensor = errors.New("sensor must be provided")

// Monitor evaluates sensor readings against the safe range and latches the alarm.
type Monitor struct {
	// sensor is the reading source, fixed for the monitor's lifetime.
	sensor sensor.Sensor
	// alarmOn is latched: it never goes back to false.
	alarmOn bool
	// alarmCount counts out-of-range readings.
	alarmCount uint64
	// lastReading is the most recent value returned by sensor.
	lastReading float64
	// hasReading is set after the first successful evaluation.
	hasReading bool
	// mu serializes evaluations and guards the fields above.
	mu sync.RWMutex
}

// NewMonitor creates a Monitor bound to s.
func NewMonitor(s sensor.Sensor) (*Monitor, error) {
	if s == nil {
		return nil, ErrNilSensor
	}

	return &Monitor{
		sensor: s,
	}, nil
}

// NewDefaultMonitor creates a Monitor bound to the live plant sensor.
func NewDefaultMonitor() *Monitor {
	return &Monitor{
		sensor: sensor.NewLive(),
	}
}

// Evaluate takes one reading and updates the alarm state.
// A sensor failure is returned and leaves the state unchanged.
func (m *Monitor) Evaluate(ctx context.Context) error {
	_, err := m.Check(ctx)

	return err
}

// Check is Evaluate that also reports what the reading did.
func (m *Monitor) Check(ctx context.Context) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, err := m.sensor.NextMeasurement(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("next measurement: %w", err)
	}

	m.lastReading = value
	m.hasReading = true

	result := Result{
		Reading: value,
	}

	if !IsOutOfRange(value) {
		return result, nil
	}

	result.OutOfRange = true
	result.NewlyTriggered = !m.alarmOn

	m.alarmOn = true
	m.alarmCount++

	return result, nil
}

// IsAlarmOn reports whether the alarm has been triggered.
func (m *Monitor) IsAlarmOn() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.alarmOn
}

// AlarmTriggerCount returns the number of out-of-range readings seen so far.
func (m *Monitor) AlarmTriggerCount() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.alarmCount
}

// LastReading returns the most recent reading and whether there is one.
func (m *Monitor) LastReading() (float64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.lastReading, m.hasReading
}

// State returns the current machine state.
func (m *Monitor) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.state()
}

// Snapshot returns a consistent copy of the observable state.
func (m *Monitor) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Snapshot{
		State:       m.state(),
		AlarmOn:     m.alarmOn,
		AlarmCount:  m.alarmCount,
		LastReading: m.lastReading,
		HasReading:  m.hasReading,
	}
}

// state must be called with mu held.
func (m *Monitor) state() State {
	if m.alarmOn {
		return StateTriggered
	}

	return StateQuiescent
}
