package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestNewManagerWritesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AppData", t.TempDir())

	mgr, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	if got := mgr.GetTargetURL(); got != DefaultTargetURL {
		t.Errorf("GetTargetURL() = %q, want %q", got, DefaultTargetURL)
	}
	if _, err := os.Stat(mgr.Path()); err != nil {
		t.Errorf("config file not written: %v", err)
	}
	if filepath.Base(filepath.Dir(mgr.Path())) != AppDirName {
		t.Errorf("Path() = %q, want it inside %q", mgr.Path(), AppDirName)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default("/cfg/bowlrms")

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got, want := cfg.Target.URL, "https://beta.bowlrms.com/login"; got != want {
		t.Errorf("Target.URL = %q, want %q", got, want)
	}
	if got, want := cfg.HomeURL(), "https://beta.bowlrms.com/"; got != want {
		t.Errorf("HomeURL() = %q, want %q", got, want)
	}
	if cfg.Window.Width != 1024 || cfg.Window.Height != 768 {
		t.Errorf("Window = %dx%d, want 1024x768", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Discovery.Enabled {
		t.Error("Discovery.Enabled = true by default")
	}
	if !cfg.Tray.Enabled {
		t.Error("Tray.Enabled = false by default")
	}
	if want := filepath.Join("/cfg/bowlrms", "logs"); cfg.Log.Dir != want {
		t.Errorf("Log.Dir = %q, want %q", cfg.Log.Dir, want)
	}
}

func TestOpenPartialFileKeepsDefaults(t *testing.T) {
	path := writeTempFile(t, `
target:
  url: http://192.168.0.101:3000/login
discovery:
  enabled: true
  timeout: 5s
log:
  level: debug
`)

	mgr, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	cfg := mgr.Get()

	if cfg.Target.URL != "http://192.168.0.101:3000/login" {
		t.Errorf("Target.URL = %q", cfg.Target.URL)
	}
	if cfg.Target.Home != DefaultHomePath {
		t.Errorf("Target.Home = %q, want %q", cfg.Target.Home, DefaultHomePath)
	}
	if !cfg.Discovery.Enabled {
		t.Error("Discovery.Enabled = false")
	}
	if cfg.Discovery.Timeout != 5*time.Second {
		t.Errorf("Discovery.Timeout = %v, want 5s", cfg.Discovery.Timeout)
	}
	if cfg.Discovery.Service != DefaultDiscoveryService {
		t.Errorf("Discovery.Service = %q, want %q", cfg.Discovery.Service, DefaultDiscoveryService)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Window.Width != DefaultWidth {
		t.Errorf("Window.Width = %d, want %d", cfg.Window.Width, DefaultWidth)
	}
}

func TestOpenRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad yaml", "target: [", "failed to parse config"},
		{"relative url", "target:\n  url: /login\n", "http or https"},
		{"ftp url", "target:\n  url: ftp://example.com\n", "http or https"},
		{"no host", "target:\n  url: 'https://'\n", "no host"},
		{"bad home", "target:\n  home: login\n", "target.home"},
		{"bad window", "window:\n  width: 0\n", "window size"},
		{"bad level", "log:\n  level: loud\n", "log.level"},
		{"negative timeout", "discovery:\n  timeout: -1s\n", "discovery.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(writeTempFile(t, tt.content))
			if err == nil {
				t.Fatal("Open() error = nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Open() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestSetTargetURLPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	mgr, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if err := mgr.SetTargetURL("not a url"); err == nil {
		t.Error("SetTargetURL(invalid) error = nil")
	}
	if err := mgr.SetTargetURL("https://bowl.example.com/login"); err != nil {
		t.Fatalf("SetTargetURL() error = %v", err)
	}
	if err := mgr.SetTrayEnabled(false); err != nil {
		t.Fatalf("SetTrayEnabled() error = %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	cfg := reopened.Get()
	if cfg.Target.URL != "https://bowl.example.com/login" {
		t.Errorf("Target.URL = %q after reopen", cfg.Target.URL)
	}
	if cfg.Tray.Enabled {
		t.Error("Tray.Enabled = true after reopen")
	}
}

func TestHomeURLAndOrigin(t *testing.T) {
	cfg := Default(t.TempDir())
	cfg.Target.URL = "https://beta.bowlrms.com/login?next=/lanes"
	cfg.Target.Home = "/dashboard"

	if got, want := cfg.HomeURL(), "https://beta.bowlrms.com/dashboard"; got != want {
		t.Errorf("HomeURL() = %q, want %q", got, want)
	}
	if got, want := cfg.Origin(), "https://beta.bowlrms.com"; got != want {
		t.Errorf("Origin() = %q, want %q", got, want)
	}
}
