package session

// Dispatcher separates UI-loop work from network work.
//
// Everything that touches session state or the views runs on the UI loop.
// Go runs blocking work elsewhere; that work reports back through Post.
type Dispatcher interface {
	// Go runs work off the UI loop.
	Go(work func())
	// Post queues fn to run on the UI loop.
	Post(fn func())
}

// Inline runs everything immediately on the calling goroutine.
type Inline struct{}

func (Inline) Go(work func()) { work() }

func (Inline) Post(fn func()) { fn() }
