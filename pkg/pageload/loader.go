// Package pageload fetches the remote application page and reports whether
// it loaded.
package pageload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/rs/zerolog"
)

// maxBodyBytes bounds how much of a response body is drained.
const maxBodyBytes = 8 << 20

// StatusError is reported for server error responses.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server responded %d %s", e.Code, http.StatusText(e.Code))
}

// Outcome is the result of one load.
type Outcome struct {
	URL        string
	StatusCode int
	Err        error

	// Gen identifies the Reload that produced the outcome.
	Gen uint64
}

// OK reports whether the page finished loading.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Reason is a short description of the failure, empty on success.
func (o Outcome) Reason() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// Option configures a Loader.
type Option func(*Loader)

// WithClient sets the HTTP client used for loads.
func WithClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Loader) { l.log = log.With().Str("component", "pageload").Logger() }
}

// WithUserAgent sets the User-Agent header sent with each load.
func WithUserAgent(ua string) Option {
	return func(l *Loader) { l.userAgent = ua }
}

// Loader loads a single target page. Each Reload supersedes the previous one;
// only the latest load reports an outcome.
type Loader struct {
	client    *http.Client
	log       zerolog.Logger
	userAgent string

	mu      sync.Mutex
	target  string
	handler func(Outcome)
	gen     uint64
	cancel  context.CancelFunc
	closed  bool
	wg      sync.WaitGroup
}

// New creates a Loader for target.
func New(target string, opts ...Option) *Loader {
	l := &Loader{
		client: http.DefaultClient,
		log:    zerolog.Nop(),
		target: target,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// OnOutcome sets the function that receives load outcomes. It is called from
// the load's goroutine.
func (l *Loader) OnOutcome(fn func(Outcome)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handler = fn
}

// SetTarget changes the URL used by later loads.
func (l *Loader) SetTarget(target string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.target = target
}

// Target returns the URL being loaded.
func (l *Loader) Target() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.target
}

// Reload cancels any in-flight load and starts a new one.
func (l *Loader) Reload() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.gen++
	gen := l.gen
	target := l.target
	l.wg.Add(1)
	l.mu.Unlock()

	go func() {
		defer l.wg.Done()
		defer cancel()

		outcome := l.fetch(ctx, target)
		outcome.Gen = gen
		l.deliver(gen, outcome)
	}()
}

// Current reports whether gen belongs to the latest Reload. Outcomes are
// delivered asynchronously, so a receiver that reloads on another goroutine
// must check again before acting on one.
func (l *Loader) Current(gen uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return gen == l.gen && !l.closed
}

// Close cancels the in-flight load and waits for it to return. No outcome is
// delivered after Close.
func (l *Loader) Close() {
	l.mu.Lock()
	l.closed = true
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.mu.Unlock()

	l.wg.Wait()
}

func (l *Loader) fetch(ctx context.Context, target string) Outcome {
	outcome := Outcome{URL: target}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		outcome.Err = fmt.Errorf("failed to create request: %w", err)
		return outcome
	}
	if l.userAgent != "" {
		req.Header.Set("User-Agent", l.userAgent)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	defer resp.Body.Close()

	outcome.StatusCode = resp.StatusCode
	if _, err := io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes)); err != nil {
		outcome.Err = fmt.Errorf("failed to read page: %w", err)
		return outcome
	}
	// A 5xx means the server is not reachable yet; any other response is the
	// application's own page.
	if resp.StatusCode >= http.StatusInternalServerError {
		outcome.Err = &StatusError{Code: resp.StatusCode}
	}
	return outcome
}

func (l *Loader) deliver(gen uint64, outcome Outcome) {
	l.mu.Lock()
	current := gen == l.gen && !l.closed
	handler := l.handler
	l.mu.Unlock()

	if !current {
		l.log.Debug().Str("url", outcome.URL).Msg("Dropping superseded page load")
		return
	}

	if outcome.OK() {
		l.log.Debug().Str("url", outcome.URL).Int("status", outcome.StatusCode).Msg("Page load finished")
	} else if !errors.Is(outcome.Err, context.Canceled) {
		l.log.Debug().Str("url", outcome.URL).Err(outcome.Err).Msg("Page load failed")
	}

	if handler != nil {
		handler(outcome)
	}
}
