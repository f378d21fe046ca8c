package client

import "eyestyle/internal/logger"

// Notifier receives the user-facing toast messages.
type Notifier interface {
	Toast(message string)
}

// NopNotifier drops every toast.
type NopNotifier struct{}

func (NopNotifier) Toast(string) {}

// LogNotifier writes toasts to the structured log.
type LogNotifier struct {
	Log *logger.Logger
}

func (n LogNotifier) Toast(message string) {
	if n.Log != nil {
		n.Log.Infow("toast", "message", message)
	}
}

// Sink receives rendered markup. Rendering itself is pure; the sink is the
// DOM boundary.
type Sink interface {
	ShowProducts(markup string)
	ShowCart(markup string, badgeCount int)
}

// NopSink discards rendered views.
type NopSink struct{}

func (NopSink) ShowProducts(string)  {}
func (NopSink) ShowCart(string, int) {}
