// Package connection coordinates the splash screen with a bounded number of
// timed attempts to load the remote application page.
//
// A Coordinator is not safe for concurrent use. Every method, and every
// callback handed to its Scheduler, must run on a single event loop.
package connection

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Config wires a Coordinator to its host.
type Config struct {
	Policy    Policy
	Scheduler Scheduler
	Page      Page
	Display   Display
	Presenter Presenter
	Logger    zerolog.Logger
}

// Coordinator drives the connection state machine and the splash-to-main-view
// handoff.
type Coordinator struct {
	policy  Policy
	sched   Scheduler
	page    Page
	display Display
	present Presenter
	log     zerolog.Logger

	state State
	cycle string

	// seq identifies the current attempt; callbacks carrying an older value
	// are stale.
	seq   uint64
	timer Timer

	splash        Timer
	splashElapsed bool
	ready         bool
	presented     bool

	started bool
	closed  bool
}

// New creates a Coordinator. A zero Policy selects DefaultPolicy.
func New(cfg Config) *Coordinator {
	policy := cfg.Policy
	if policy == (Policy{}) {
		policy = DefaultPolicy()
	}

	return &Coordinator{
		policy:  policy,
		sched:   cfg.Scheduler,
		page:    cfg.Page,
		display: cfg.Display,
		present: cfg.Presenter,
		log:     cfg.Logger.With().Str("component", "connection").Logger(),
		state:   newState(policy.MaxAttempts),
	}
}

// Start begins the minimum splash timer and the first attempt.
func (c *Coordinator) Start() {
	if c.started || c.closed {
		return
	}
	c.started = true
	c.newCycle()

	c.log.Info().Dur("minimum_splash", c.policy.MinimumSplash).Msg("Starting connection")
	c.splash = c.sched.AfterFunc(c.policy.MinimumSplash, c.onSplashElapsed)
	c.beginAttempt(true)
}

// PageFinished reports that the target page loaded.
func (c *Coordinator) PageFinished() {
	if !c.accepting("finished") {
		return
	}
	c.stopTimer()

	c.state.Phase = PhaseSucceeded
	c.state.Connected = true
	c.log.Info().Int("attempt", c.state.Attempts).Str("cycle", c.cycle).Msg("Page loaded")
	c.emit(TextConnected)

	seq := c.seq
	c.timer = c.sched.AfterFunc(c.policy.RevealDelay, func() {
		if c.closed || seq != c.seq {
			return
		}
		c.timer = nil
		c.ready = true
		c.maybePresent()
	})
}

// PageFailed reports an explicit page load failure.
func (c *Coordinator) PageFailed(reason string) {
	if !c.accepting("failed") {
		return
	}
	c.stopTimer()
	c.fail(&LoadError{Reason: reason})
}

// Retry handles the retry-connection command. It abandons whatever the
// current cycle is doing and starts a new one from attempt 1.
func (c *Coordinator) Retry() {
	if c.closed {
		return
	}
	if !c.started {
		c.log.Debug().Msg("Retry before start ignored")
		return
	}

	c.log.Info().
		Str("phase", c.state.Phase.String()).
		Int("attempts", c.state.Attempts).
		Msg("Manual retry requested")

	c.stopTimer()
	c.state.reset()
	c.ready = false
	c.seq++
	c.newCycle()

	c.emit(TextReconnecting)
	c.display.ShowRetry(false)
	c.beginAttempt(false)
}

// Close cancels all pending timers. Events delivered afterwards are ignored.
func (c *Coordinator) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.stopTimer()
	if c.splash != nil {
		c.splash.Stop()
		c.splash = nil
	}
	c.log.Debug().Msg("Coordinator closed")
}

// State returns a copy of the current connection state.
func (c *Coordinator) State() State {
	return c.state
}

// Presented reports whether the main view has been revealed.
func (c *Coordinator) Presented() bool {
	return c.presented
}

// CycleID identifies the current connection cycle in logs.
func (c *Coordinator) CycleID() string {
	return c.cycle
}

// beginAttempt enters Attempting. announce controls whether the attempt's own
// status text is shown; a manual retry has already shown its own.
func (c *Coordinator) beginAttempt(announce bool) {
	attempt := c.state.nextAttempt()
	c.seq++
	seq := c.seq

	c.log.Info().
		Int("attempt", attempt).
		Int("max_attempts", c.state.MaxAttempts).
		Str("cycle", c.cycle).
		Msg("Connection attempt")

	if announce {
		c.emit(attemptText(attempt, c.state.MaxAttempts))
	}

	// Arm the timeout before reloading so a synchronous outcome can cancel it.
	c.timer = c.sched.AfterFunc(c.policy.AttemptTimeout, func() {
		if c.closed || seq != c.seq || c.state.Phase != PhaseAttempting {
			return
		}
		c.timer = nil
		c.fail(ErrTimeout)
	})
	c.page.Reload()
}

func (c *Coordinator) fail(err error) {
	attemptErr := &AttemptError{Attempt: c.state.Attempts, Err: err}
	c.state.Phase = PhaseFailed
	c.log.Warn().Err(attemptErr).Str("cycle", c.cycle).Msg("Connection attempt failed")

	if !c.state.attemptsLeft() {
		c.exhaust()
		return
	}

	seq := c.seq
	c.timer = c.sched.AfterFunc(c.policy.RetryDelay, func() {
		if c.closed || seq != c.seq {
			return
		}
		c.timer = nil
		c.beginAttempt(true)
	})
}

func (c *Coordinator) exhaust() {
	c.state.Phase = PhaseExhausted
	c.log.Error().
		Int("attempts", c.state.Attempts).
		Str("cycle", c.cycle).
		Msg("Connection attempts exhausted")
	c.emit(TextExhausted)

	seq := c.seq
	c.timer = c.sched.AfterFunc(c.policy.AffordanceDelay, func() {
		if c.closed || seq != c.seq {
			return
		}
		c.timer = nil
		c.display.ShowRetry(true)
	})
}

func (c *Coordinator) onSplashElapsed() {
	if c.closed {
		return
	}
	c.splash = nil
	c.splashElapsed = true
	c.log.Debug().Bool("connected", c.state.Connected).Msg("Minimum splash elapsed")
	c.maybePresent()
}

// maybePresent reveals the main view once the splash minimum has passed and
// the current cycle is connected and ready.
func (c *Coordinator) maybePresent() {
	if c.presented || !c.splashElapsed || !c.ready || !c.state.Connected {
		return
	}
	c.presented = true
	c.log.Info().Str("cycle", c.cycle).Msg("Presenting main view")
	c.present.Present()
}

// accepting reports whether a page outcome belongs to an active attempt.
func (c *Coordinator) accepting(outcome string) bool {
	if c.closed || c.state.Phase != PhaseAttempting {
		c.log.Debug().
			Str("outcome", outcome).
			Str("phase", c.state.Phase.String()).
			Msg("Ignoring page outcome outside an attempt")
		return false
	}
	return true
}

func (c *Coordinator) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Coordinator) emit(text string) {
	c.display.ShowStatus(Status{
		Phase:       c.state.Phase,
		Text:        text,
		Attempt:     c.state.Attempts,
		MaxAttempts: c.state.MaxAttempts,
	})
}

func (c *Coordinator) newCycle() {
	c.cycle = uuid.NewString()
}
