package main

import (
	"encoding/json"
	"fmt"
)

// GoBack navigates the main view back in history.
func (a *App) GoBack() {
	a.shell.ExecJS("window.history.back()")
}

// GoForward navigates the main view forward in history.
func (a *App) GoForward() {
	a.shell.ExecJS("window.history.forward()")
}

// GoHome loads the home page of the remote application.
func (a *App) GoHome() {
	if !a.GetSplashState().Presented {
		a.log.Debug().Msg("Home requested before the main view was shown")
		return
	}
	a.shell.ExecJS(navigateJS(homeURL(a.cfg, a.target)))
}

// navigateJS returns a script replacing the current page with url.
func navigateJS(url string) string {
	quoted, err := json.Marshal(url)
	if err != nil {
		quoted = []byte(`""`)
	}
	return fmt.Sprintf("window.location.replace(%s)", quoted)
}
