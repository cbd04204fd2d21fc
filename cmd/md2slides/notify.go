package main

import (
	"io"
	"sync"

	"github.com/fatih/color"

	md2slides "github.com/alnah/go-md2slides"
)

var _ md2slides.Notifier = (*colorNotifier)(nil)

// colorNotifier prints notices in yellow on stderr. Batch workers share
// it, so writes are serialized.
type colorNotifier struct {
	mu     sync.Mutex
	w      io.Writer
	prefix *color.Color
}

// newNotifier returns the notice printer; --quiet silences notices.
func newNotifier(w io.Writer, quiet bool) md2slides.Notifier {
	if quiet {
		return md2slides.NotifierFunc(func(string) {})
	}
	return &colorNotifier{w: w, prefix: color.New(color.FgYellow, color.Bold)}
}

func (n *colorNotifier) Notice(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.prefix.Fprint(n.w, "notice:")
	io.WriteString(n.w, " "+msg+"\n")
}
