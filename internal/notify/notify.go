// Package notify delivers short user-facing notifications: a title plus an
// optional description, tagged with a severity.
package notify

import (
	"fmt"
	"io"
	"sync"
)

// Kind is the severity of a notification.
type Kind string

// Notification kinds.
const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// Notification is one message for the operator.
type Notification struct {
	Kind        Kind
	Title       string
	Description string
}

// String renders the notification as a single line.
func (n Notification) String() string {
	if n.Description == "" {
		return n.Title
	}
	return n.Title + ": " + n.Description
}

// Notifier receives notifications.
type Notifier interface {
	Notify(n Notification)
}

// Func adapts a function to Notifier.
type Func func(n Notification)

// Notify calls f.
func (f Func) Notify(n Notification) { f(n) }

// Discard drops every notification.
//
//nolint:gochecknoglobals // Stateless sink.
var Discard Notifier = Func(func(Notification) {})

// Error sends an error notification.
func Error(to Notifier, title, description string) {
	to.Notify(Notification{Kind: KindError, Title: title, Description: description})
}

// Success sends a success notification.
func Success(to Notifier, title, description string) {
	to.Notify(Notification{Kind: KindSuccess, Title: title, Description: description})
}

// Warning sends a warning notification.
func Warning(to Notifier, title, description string) {
	to.Notify(Notification{Kind: KindWarning, Title: title, Description: description})
}

// Writer prints notifications as lines, for example to stderr.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriter returns a Writer printing to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Notify prints n as "[kind] title: description".
func (w *Writer) Notify(n Notification) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.out, "[%s] %s\n", n.Kind, n)
}

// Recorder keeps notifications in memory.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

// Notify records n.
func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

// All returns a copy of the recorded notifications.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return Notification{}, false
	}
	return r.items[len(r.items)-1], true
}

// Reset forgets every recorded notification.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}
