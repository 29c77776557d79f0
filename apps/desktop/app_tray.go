package main

import (
	"github.com/bowlrms/desktop/apps/desktop/tray"
	"github.com/bowlrms/desktop/pkg/version"
)

// newTray builds the system tray icon and menu. Run it on its own goroutine.
func (a *App) newTray() *tray.Tray {
	return tray.New(tray.Config{
		Title:     version.AppName,
		OnShow:    a.shell.Show,
		OnRetry:   a.RetryConnection,
		OnBack:    a.GoBack,
		OnForward: a.GoForward,
		OnHome:    a.GoHome,
		OnHide:    a.hideTray,
		OnQuit: func() {
			a.shell.Quit()
		},
		GetStatus: a.trayStatus,
	})
}

// hideTray removes the tray icon and remembers the choice.
func (a *App) hideTray() {
	if a.mgr != nil {
		if err := a.mgr.SetTrayEnabled(false); err != nil {
			a.log.Warn().Err(err).Msg("Failed to save tray setting")
		}
	}
	if a.tray != nil {
		a.tray.Quit()
	}
}

func (a *App) trayStatus() tray.Status {
	s := a.GetSplashState()
	return tray.Status{
		Phase:        s.Status.Phase,
		Text:         s.Status.Text,
		RetryVisible: s.RetryVisible,
		Presented:    s.Presented,
		Target:       s.Target,
	}
}

// updateTrayStatus mirrors the splash state into the tray.
func (a *App) updateTrayStatus() {
	if a.tray != nil {
		a.tray.UpdateStatus(a.trayStatus())
	}
}
