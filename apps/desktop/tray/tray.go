// Package tray shows the connection status in the system tray.
package tray

import (
	"sync"

	"github.com/energye/systray"

	"github.com/bowlrms/desktop/pkg/connection"
)

// Status is the splash state mirrored into the tray.
type Status struct {
	Phase        connection.Phase
	Text         string
	RetryVisible bool
	Presented    bool
	Target       string
}

// Config contains callbacks and getters for the tray.
type Config struct {
	Title     string
	OnShow    func()
	OnRetry   func()
	OnBack    func()
	OnForward func()
	OnHome    func()
	OnHide    func()
	OnQuit    func()
	GetStatus func() Status
}

// Tray manages the system tray icon and menu.
type Tray struct {
	config Config
	mu     sync.RWMutex
	status Status

	// Lifecycle
	ready    bool
	closed   bool
	stateMu  sync.RWMutex
	quitOnce sync.Once

	// Menu items
	mStatus  *systray.MenuItem
	mShow    *systray.MenuItem
	mRetry   *systray.MenuItem
	mBack    *systray.MenuItem
	mForward *systray.MenuItem
	mHome    *systray.MenuItem
	mHide    *systray.MenuItem
	mQuit    *systray.MenuItem
}

// New creates a new Tray instance.
func New(cfg Config) *Tray {
	if cfg.Title == "" {
		cfg.Title = "BowlRMS"
	}
	return &Tray{
		config: cfg,
	}
}

// Run starts the system tray. This is a blocking call that should run in a goroutine.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// UpdateStatus updates the tray icon and menu based on new status. Updates
// before the tray is ready are kept and applied once it is.
func (t *Tray) UpdateStatus(s Status) {
	t.mu.Lock()
	t.status = s
	t.mu.Unlock()

	t.stateMu.RLock()
	live := t.ready && !t.closed
	t.stateMu.RUnlock()
	if !live {
		return
	}

	t.apply()
}

// Quit signals the tray to exit.
func (t *Tray) Quit() {
	t.quitOnce.Do(func() {
		t.stateMu.Lock()
		t.closed = true
		t.stateMu.Unlock()
		systray.Quit()
	})
}

func (t *Tray) onReady() {
	systray.SetIcon(Icon(connection.PhaseIdle))
	systray.SetTitle(t.config.Title)
	systray.SetTooltip(t.config.Title)

	t.mStatus = systray.AddMenuItem(connection.TextConnecting, "Connection status")
	t.mStatus.Disable()

	systray.AddSeparator()

	t.mShow = systray.AddMenuItem("Show window", "Bring the window to the front")
	t.mRetry = systray.AddMenuItem("Retry connection", "Start a new connection attempt")
	t.mRetry.Disable()

	systray.AddSeparator()

	t.mBack = systray.AddMenuItem("Back", "Go back")
	t.mForward = systray.AddMenuItem("Forward", "Go forward")
	t.mHome = systray.AddMenuItem("Home", "Open the home page")

	systray.AddSeparator()

	t.mHide = systray.AddMenuItem("Hide tray icon", "Remove this icon; re-enable in config.yaml")
	t.mQuit = systray.AddMenuItem("Quit", "Close "+t.config.Title)

	t.mShow.Click(call(t.config.OnShow))
	t.mRetry.Click(call(t.config.OnRetry))
	t.mBack.Click(call(t.config.OnBack))
	t.mForward.Click(call(t.config.OnForward))
	t.mHome.Click(call(t.config.OnHome))
	t.mHide.Click(call(t.config.OnHide))
	t.mQuit.Click(func() {
		if t.config.OnQuit != nil {
			t.config.OnQuit()
		}
		t.Quit()
	})

	t.stateMu.Lock()
	t.ready = true
	t.stateMu.Unlock()

	// Get initial status
	if t.config.GetStatus != nil {
		t.UpdateStatus(t.config.GetStatus())
		return
	}
	t.apply()
}

func (t *Tray) onExit() {
	// Mark as closed to prevent any further updates
	t.stateMu.Lock()
	t.closed = true
	t.stateMu.Unlock()
}

func (t *Tray) apply() {
	t.mu.RLock()
	s := t.status
	t.mu.RUnlock()

	systray.SetIcon(Icon(s.Phase))
	systray.SetTooltip(Tooltip(t.config.Title, s))

	text := s.Text
	if text == "" {
		text = connection.TextConnecting
	}
	t.mStatus.SetTitle(text)

	setEnabled(t.mRetry, s.RetryVisible)
	setEnabled(t.mBack, s.Presented)
	setEnabled(t.mForward, s.Presented)
	setEnabled(t.mHome, s.Presented)
}

// Tooltip is the tray tooltip for s.
func Tooltip(title string, s Status) string {
	switch {
	case s.Presented:
		return title + " - Connected"
	case s.Text == "":
		return title
	default:
		return title + " - " + s.Text
	}
}

func setEnabled(item *systray.MenuItem, enabled bool) {
	if enabled {
		item.Enable()
	} else {
		item.Disable()
	}
}

func call(fn func()) func() {
	return func() {
		if fn != nil {
			fn()
		}
	}
}
