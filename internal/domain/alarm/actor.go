package alarm

// Actor identifies who ran a monitoring session.
type Actor struct {
	// Hostname is the machine name where the monitor ran.
	Hostname string
	// Username is the system user who started the monitor.
	Username string
}

// Clone returns a deep copy of the actor.
func (a *Actor) Clone() *Actor {
	if a == nil {
		return nil
	}

	cloned := *a

	return &cloned
}
