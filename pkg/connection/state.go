package connection

// Phase is the coordinator's position in the connection state machine.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseAttempting Phase = "attempting"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
	PhaseExhausted  Phase = "exhausted"
)

func (p Phase) String() string {
	return string(p)
}

// State is the connection state owned by a Coordinator.
type State struct {
	Phase       Phase `json:"phase"`
	Attempts    int   `json:"attempts"`
	MaxAttempts int   `json:"maxAttempts"`
	Connected   bool  `json:"connected"`
}

func newState(maxAttempts int) State {
	return State{
		Phase:       PhaseIdle,
		MaxAttempts: maxAttempts,
	}
}

// reset returns the state to the start of a connection cycle.
func (s *State) reset() {
	s.Phase = PhaseIdle
	s.Attempts = 0
	s.Connected = false
}

// nextAttempt moves into Attempting and returns the new attempt number.
func (s *State) nextAttempt() int {
	s.Attempts++
	s.Phase = PhaseAttempting
	return s.Attempts
}

// attemptsLeft reports whether the automatic retry path may try again.
func (s *State) attemptsLeft() bool {
	return s.Attempts < s.MaxAttempts
}
