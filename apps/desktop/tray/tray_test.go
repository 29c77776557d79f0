package tray

import (
	"bytes"
	"testing"

	"github.com/bowlrms/desktop/pkg/connection"
)

func TestIconName(t *testing.T) {
	tests := []struct {
		phase connection.Phase
		want  string
	}{
		{connection.PhaseIdle, "connecting"},
		{connection.PhaseAttempting, "connecting"},
		{connection.PhaseFailed, "connecting"},
		{connection.PhaseSucceeded, "connected"},
		{connection.PhaseExhausted, "failed"},
	}

	for _, tt := range tests {
		if got := iconName(tt.phase); got != tt.want {
			t.Errorf("iconName(%q) = %q, want %q", tt.phase, got, tt.want)
		}
	}
}

func TestIconsEmbedded(t *testing.T) {
	pngMagic := []byte{0x89, 'P', 'N', 'G'}
	for _, name := range []string{"connecting", "connected", "failed"} {
		png, err := iconsFS.ReadFile("icons/" + name + ".png")
		if err != nil {
			t.Errorf("icon %s.png missing: %v", name, err)
			continue
		}
		if !bytes.HasPrefix(png, pngMagic) {
			t.Errorf("icon %s.png is not a PNG", name)
		}
		if _, err := iconsFS.ReadFile("icons/" + name + ".ico"); err != nil {
			t.Errorf("icon %s.ico missing: %v", name, err)
		}
	}
	if len(Icon(connection.PhaseExhausted)) == 0 {
		t.Error("Icon(PhaseExhausted) is empty")
	}
}

func TestTooltip(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		want   string
	}{
		{"empty", Status{}, "BowlRMS"},
		{"retrying", Status{Phase: connection.PhaseAttempting, Text: "Retrying (2/3)..."}, "BowlRMS - Retrying (2/3)..."},
		{"presented", Status{Phase: connection.PhaseSucceeded, Text: connection.TextConnected, Presented: true}, "BowlRMS - Connected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Tooltip("BowlRMS", tt.status); got != tt.want {
				t.Errorf("Tooltip() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUpdateStatusBeforeReady(t *testing.T) {
	tr := New(Config{})
	// Must not touch systray before Run.
	tr.UpdateStatus(Status{Phase: connection.PhaseExhausted, RetryVisible: true})

	tr.mu.RLock()
	defer tr.mu.RUnlock()
	if !tr.status.RetryVisible {
		t.Error("status not kept for when the tray becomes ready")
	}
}
