package main

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/wailsapp/wails/v2/pkg/options"

	"github.com/bowlrms/desktop/apps/desktop/tray"
	"github.com/bowlrms/desktop/pkg/config"
	"github.com/bowlrms/desktop/pkg/connection"
	"github.com/bowlrms/desktop/pkg/version"
)

// Frontend events.
const (
	eventStatus = "splash:status"
	eventRetry  = "splash:retry"
)

// SplashState is what a freshly loaded splash page needs to catch up.
type SplashState struct {
	Status       connection.Status `json:"status"`
	RetryVisible bool              `json:"retryVisible"`
	Presented    bool              `json:"presented"`
	Target       string            `json:"target"`
	Version      string            `json:"version"`
}

// App struct holds the application state
type App struct {
	ctx    context.Context
	cancel context.CancelFunc
	shell  shell

	cfg     config.Config
	mgr     *config.Manager
	log     zerolog.Logger
	target  string
	session *session

	// Mirrored display state; bound methods run on arbitrary goroutines.
	mu     sync.RWMutex
	splash SplashState

	// System tray
	noTray bool
	tray   *tray.Tray
}

// NewApp creates the app for target. The connection session starts in
// startup.
func NewApp(env *environment, target string) *App {
	a := &App{
		cfg:    env.cfg,
		mgr:    env.mgr,
		log:    env.log,
		target: target,
		splash: SplashState{
			Status: connection.Status{
				Phase:       connection.PhaseIdle,
				Text:        connection.TextConnecting,
				MaxAttempts: connection.DefaultMaxAttempts,
			},
			Target:  target,
			Version: version.Version,
		},
	}
	a.session = newSession(sessionConfig{
		Target:    target,
		Display:   a,
		Presenter: connection.PresenterFunc(a.present),
		Logger:    env.logger.Logger,
	})
	return a
}

// startup is called when the app starts
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	if a.shell == nil {
		a.shell = wailsShell{ctx: ctx}
	}

	a.log.Info().
		Str("version", version.Version).
		Str("target", a.target).
		Msg("Starting")

	// Start system tray if enabled. It must exist before the session
	// starts reporting status.
	if !a.noTray {
		a.tray = a.newTray()
		go a.tray.Run()
	}

	sessionCtx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.session.Start(sessionCtx)
}

// shutdown is called when the app is closing
func (a *App) shutdown(ctx context.Context) {
	if a.tray != nil {
		a.tray.Quit()
	}
	a.session.Stop()
	if a.cancel != nil {
		a.cancel()
	}
	a.log.Info().Msg("Shut down")
}

// onSecondInstanceLaunch focuses the running window.
func (a *App) onSecondInstanceLaunch(data options.SecondInstanceData) {
	a.log.Info().Strs("args", data.Args).Msg("Second instance launched")
	if a.shell == nil {
		return
	}
	a.shell.Unminimise()
	a.shell.Show()
}

// ShowStatus implements connection.Display.
func (a *App) ShowStatus(s connection.Status) {
	a.mu.Lock()
	a.splash.Status = s
	a.mu.Unlock()

	a.shell.Emit(eventStatus, s)
	a.updateTrayStatus()
}

// ShowRetry implements connection.Display.
func (a *App) ShowRetry(visible bool) {
	a.mu.Lock()
	a.splash.RetryVisible = visible
	a.mu.Unlock()

	a.shell.Emit(eventRetry, visible)
	a.updateTrayStatus()
}

// present swaps the splash for the main view: leave always-on-top, grow to
// the configured size, then navigate to the target.
func (a *App) present() {
	a.mu.Lock()
	a.splash.Presented = true
	a.mu.Unlock()

	a.shell.SetAlwaysOnTop(false)
	a.shell.SetSize(a.cfg.Window.Width, a.cfg.Window.Height)
	a.shell.Center()
	a.shell.ExecJS(navigateJS(a.target))
	a.shell.Show()
	a.updateTrayStatus()
}

// RetryConnection is the retry-connection command from the splash page.
func (a *App) RetryConnection() {
	a.mu.Lock()
	a.splash.RetryVisible = false
	a.mu.Unlock()

	a.session.Retry()
}

// GetSplashState returns the current splash status.
func (a *App) GetSplashState() SplashState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.splash
}

// GetVersion returns the app version information.
func (a *App) GetVersion() version.Info {
	return version.GetInfo()
}
