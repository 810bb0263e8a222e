// Package notify carries user-visible, non-fatal conditions from the core
// out to whatever surface is hosting it. The core never prints; it hands a
// Notice to a sink and moves on.
package notify

// Severity ranks a notice.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Notice is one user-visible message.
type Notice struct {
	Severity Severity
	Title    string
	Body     string
}

// Notifier accepts notices. Implementations must not block; dispatch is
// fire-and-forget from the caller's perspective.
type Notifier interface {
	Notify(Notice)
}

// Discard is a Notifier that drops everything.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Notify(Notice) {}

// Collector buffers notices in order. The TUI drains it after each action;
// tests assert against it directly.
type Collector struct {
	notices []Notice
}

// Notify appends the notice.
func (c *Collector) Notify(n Notice) {
	c.notices = append(c.notices, n)
}

// Drain returns buffered notices and clears the buffer.
func (c *Collector) Drain() []Notice {
	out := c.notices
	c.notices = nil
	return out
}

// Notices returns buffered notices without clearing.
func (c *Collector) Notices() []Notice {
	return c.notices
}
