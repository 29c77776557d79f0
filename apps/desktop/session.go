package main

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bowlrms/desktop/pkg/connection"
	"github.com/bowlrms/desktop/pkg/eventloop"
	"github.com/bowlrms/desktop/pkg/pageload"
	"github.com/bowlrms/desktop/pkg/version"
)

// stopTimeout bounds how long Stop waits for the loop to close the
// coordinator.
const stopTimeout = time.Second

type sessionConfig struct {
	Target    string
	Policy    connection.Policy // zero selects the default policy
	Display   connection.Display
	Presenter connection.Presenter
	Logger    zerolog.Logger
}

// session runs a Coordinator on its own event loop, with a page loader whose
// outcomes are posted back to the loop.
type session struct {
	loop   *eventloop.Loop
	loader *pageload.Loader
	coord  *connection.Coordinator
	log    zerolog.Logger
	done   chan struct{}
}

func newSession(cfg sessionConfig) *session {
	loop := eventloop.New(0)
	loader := pageload.New(cfg.Target,
		pageload.WithLogger(cfg.Logger),
		pageload.WithUserAgent(version.UserAgent()),
	)
	coord := connection.New(connection.Config{
		Policy:    cfg.Policy,
		Scheduler: loop,
		Page:      loader,
		Display:   cfg.Display,
		Presenter: cfg.Presenter,
		Logger:    cfg.Logger,
	})

	s := &session{
		loop:   loop,
		loader: loader,
		coord:  coord,
		log:    cfg.Logger.With().Str("component", "session").Logger(),
		done:   make(chan struct{}),
	}
	loader.OnOutcome(func(o pageload.Outcome) {
		loop.Post(func() { s.handleOutcome(o) })
	})
	return s
}

// handleOutcome runs on the loop. A later attempt may have reloaded between
// delivery and now; its outcome is not this one.
func (s *session) handleOutcome(o pageload.Outcome) {
	if !s.loader.Current(o.Gen) {
		s.log.Debug().Uint64("gen", o.Gen).Msg("Dropping outcome of an earlier attempt")
		return
	}
	if o.OK() {
		s.coord.PageFinished()
		return
	}
	s.coord.PageFailed(o.Reason())
}

// Start runs the loop until ctx ends and begins the first connection cycle.
func (s *session) Start(ctx context.Context) {
	go func() {
		defer close(s.done)
		if err := s.loop.Run(ctx); err != nil && err != context.Canceled {
			s.log.Warn().Err(err).Msg("Event loop stopped")
		}
	}()
	s.loop.Post(s.coord.Start)
}

// Retry delivers the retry-connection command.
func (s *session) Retry() {
	if !s.loop.Post(s.coord.Retry) {
		s.log.Debug().Msg("Retry after shutdown ignored")
	}
}

// Stop closes the coordinator on its loop, then the loop and the loader.
func (s *session) Stop() {
	closed := make(chan struct{})
	if s.loop.Post(func() {
		s.coord.Close()
		close(closed)
	}) {
		select {
		case <-closed:
		case <-s.done:
		case <-time.After(stopTimeout):
			s.log.Warn().Msg("Timed out closing coordinator")
		}
	}
	s.loop.Close()
	s.loader.Close()
}
