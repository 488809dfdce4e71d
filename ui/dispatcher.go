package ui

import "github.com/rivo/tview"

// AppDispatcher runs network work on goroutines and hands completions back
// to the tview event loop.
type AppDispatcher struct {
	App *tview.Application
}

func (d AppDispatcher) Go(work func()) {
	go work()
}

// Post must not be called from the event loop itself; QueueUpdateDraw would block.
func (d AppDispatcher) Post(fn func()) {
	d.App.QueueUpdateDraw(fn)
}
