package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bowlrms/desktop/pkg/config"
	"github.com/bowlrms/desktop/pkg/connection"
	"github.com/bowlrms/desktop/pkg/logging"
)

// fastPolicy keeps the production shape at test speed.
var fastPolicy = connection.Policy{
	MaxAttempts:     2,
	AttemptTimeout:  2 * time.Second,
	MinimumSplash:   50 * time.Millisecond,
	RetryDelay:      10 * time.Millisecond,
	AffordanceDelay: 10 * time.Millisecond,
	RevealDelay:     10 * time.Millisecond,
}

func testEnv(t *testing.T, target string) *environment {
	t.Helper()
	logger, err := logging.New(logging.Options{Level: "disabled"})
	if err != nil {
		t.Fatalf("logging.New() error = %v", err)
	}
	cfg := config.Default(t.TempDir())
	cfg.Target.URL = target
	return &environment{
		cfg:    cfg,
		logger: logger,
		log:    logger.Component("desktop"),
	}
}

// fakeShell records window operations.
type fakeShell struct {
	mu     sync.Mutex
	calls  []string
	events []string
}

func (f *fakeShell) record(format string, args ...interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeShell) Emit(event string, data ...interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, fmt.Sprintf("%s %v", event, data))
}

func (f *fakeShell) Show()                     { f.record("show") }
func (f *fakeShell) Unminimise()               { f.record("unminimise") }
func (f *fakeShell) SetAlwaysOnTop(on bool)    { f.record("on-top %v", on) }
func (f *fakeShell) SetSize(width, height int) { f.record("size %dx%d", width, height) }
func (f *fakeShell) Center()                   { f.record("center") }
func (f *fakeShell) ExecJS(js string)          { f.record("js %s", js) }
func (f *fakeShell) Quit()                     { f.record("quit") }

func (f *fakeShell) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeShell) Events() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}

// chanDisplay forwards display updates to channels.
type chanDisplay struct {
	statuses chan connection.Status
	retry    chan bool
}

func newChanDisplay() *chanDisplay {
	return &chanDisplay{
		statuses: make(chan connection.Status, 32),
		retry:    make(chan bool, 8),
	}
}

func (d *chanDisplay) ShowStatus(s connection.Status) { d.statuses <- s }
func (d *chanDisplay) ShowRetry(visible bool)         { d.retry <- visible }

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}
