package md2slides

// Notifier receives user-facing notices: unresolved references, cancelled
// prompts and template overruns. Notices never stop a conversion.
type Notifier interface {
	Notice(msg string)
}

type nopNotifier struct{}

func (nopNotifier) Notice(string) {}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

// Notice implements Notifier.
func (f NotifierFunc) Notice(msg string) { f(msg) }
