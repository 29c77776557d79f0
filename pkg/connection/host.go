package connection

import "time"

// Timer is a pending scheduled callback.
type Timer interface {
	// Stop prevents the callback from running. It returns false if the
	// callback already ran or the timer was already stopped.
	Stop() bool
}

// Scheduler runs callbacks after a delay on the coordinator's event loop.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Page is the target page hosted in the main view.
type Page interface {
	// Reload starts loading the target page. The outcome is reported back
	// through Coordinator.PageFinished or Coordinator.PageFailed.
	Reload()
}

// Display renders splash progress.
type Display interface {
	ShowStatus(Status)
	ShowRetry(visible bool)
}

// Presenter closes the splash and reveals the main view.
type Presenter interface {
	Present()
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func()

func (f PresenterFunc) Present() { f() }
