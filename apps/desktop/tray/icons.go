package tray

import (
	"embed"
	"runtime"

	"github.com/bowlrms/desktop/pkg/connection"
)

//go:embed icons/*.ico icons/*.png
var iconsFS embed.FS

func getIcon(name string) []byte {
	// Windows uses .ico, Linux/macOS use .png.
	ext := ".png"
	if runtime.GOOS == "windows" {
		ext = ".ico"
	}

	data, err := iconsFS.ReadFile("icons/" + name + ext)
	if err != nil {
		return nil
	}
	return data
}

// iconName maps a connection phase to an icon file name.
func iconName(phase connection.Phase) string {
	switch phase {
	case connection.PhaseSucceeded:
		return "connected"
	case connection.PhaseExhausted:
		return "failed"
	default:
		return "connecting"
	}
}

// Icon returns the tray icon for phase: blue while connecting, green once
// connected, red when every attempt failed.
func Icon(phase connection.Phase) []byte {
	return getIcon(iconName(phase))
}
