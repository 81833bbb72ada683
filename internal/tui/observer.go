package tui

import "sync"

// DueNotifier adapts debounce firings to a channel for Bubble Tea.
// Only the most recent undelivered term is kept.
type DueNotifier struct {
	ch        chan string
	done      chan struct{}
	closeOnce sync.Once
}

// NewDueNotifier creates a new notifier
func NewDueNotifier() *DueNotifier {
	return &DueNotifier{
		ch:   make(chan string, 1),
		done: make(chan struct{}),
	}
}

// Notify queues term, replacing an undelivered older one
func (n *DueNotifier) Notify(term string) {
	for {
		select {
		case n.ch <- term:
			return
		case <-n.done:
			return
		default:
		}
		select {
		case <-n.ch: // drop the stale term
		default:
		}
	}
}

// Close releases any listener
func (n *DueNotifier) Close() {
	n.closeOnce.Do(func() { close(n.done) })
}
