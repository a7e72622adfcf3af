package alarm

// State is the position of a Monitor in its two-state machine.
type State int

const (
	// StateQuiescent means no out-of-range reading has been seen yet.
	StateQuiescent State = iota
	// StateTriggered means the alarm is latched on. It is terminal.
	StateTriggered
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case StateQuiescent:
		return "quiescent"
	case StateTriggered:
		return "triggered"
	default:
		return "unknown"
	}
}

// Snapshot is a point-in-time copy of a Monitor's observable state.
type Snapshot struct {
	// State is the current machine state.
	State State
	// AlarmOn is true once any reading has been out of range.
	AlarmOn bool
	// AlarmCount is the number of out-of-range readings so far.
	AlarmCount uint64
	// LastReading is the most recent reading. Meaningful only when HasReading is set.
	LastReading float64
	// HasReading tells whether the monitor has evaluated at least once.
	HasReading bool
}

// Result describes the outcome of a single evaluation.
type Result struct {
	// Reading is the value obtained from the sensor.
	Reading float64
	// OutOfRange is true when Reading triggered the alarm.
	OutOfRange bool
	// NewlyTriggered is true only for the evaluation that latched the alarm.
	NewlyTriggered bool
}
