package main

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// shell is the part of the Wails runtime the app drives.
type shell interface {
	Emit(event string, data ...interface{})
	Show()
	Unminimise()
	SetAlwaysOnTop(on bool)
	SetSize(width, height int)
	Center()
	ExecJS(js string)
	Quit()
}

// wailsShell forwards to the Wails runtime bound to ctx.
type wailsShell struct {
	ctx context.Context
}

func (w wailsShell) Emit(event string, data ...interface{}) {
	runtime.EventsEmit(w.ctx, event, data...)
}

func (w wailsShell) Show()                     { runtime.WindowShow(w.ctx) }
func (w wailsShell) Unminimise()               { runtime.WindowUnminimise(w.ctx) }
func (w wailsShell) SetAlwaysOnTop(on bool)    { runtime.WindowSetAlwaysOnTop(w.ctx, on) }
func (w wailsShell) SetSize(width, height int) { runtime.WindowSetSize(w.ctx, width, height) }
func (w wailsShell) Center()                   { runtime.WindowCenter(w.ctx) }
func (w wailsShell) ExecJS(js string)          { runtime.WindowExecJS(w.ctx, js) }
func (w wailsShell) Quit()                     { runtime.Quit(w.ctx) }
