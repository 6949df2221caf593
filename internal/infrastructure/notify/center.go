// Package notify implements the notification center: transient stacked
// alerts with timed fade and dismissal. A burst of incidents produces a
// burst of toasts; coalescing and rate-limiting are deliberately absent.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/pamash/internal/ports"
)

// Toast is one transient alert.
type Toast struct {
	ID      string
	Title   string
	Message string
	Kind    string
	Shown   time.Time
}

// Center implements the Notifier port. Each toast stays visible for the
// display duration, fades for the fade duration, then is dropped from the
// active set. Rendering happens once, through the sink, when the toast
// appears.
type Center struct {
	display time.Duration
	fade    time.Duration
	sink    func(Toast)

	mu     sync.Mutex
	active map[string]Toast
}

// NewCenter builds a notification center. The sink receives each toast as
// it is shown; a nil sink keeps the center silent (useful in tests).
func NewCenter(display, fade time.Duration, sink func(Toast)) *Center {
	if display <= 0 {
		display = 5 * time.Second
	}
	if fade <= 0 {
		fade = 300 * time.Millisecond
	}
	return &Center{
		display: display,
		fade:    fade,
		sink:    sink,
		active:  map[string]Toast{},
	}
}

// Show implements ports.Notifier.
func (c *Center) Show(title, message, kind string) {
	toast := Toast{
		ID:      uuid.NewString(),
		Title:   title,
		Message: message,
		Kind:    kind,
		Shown:   time.Now(),
	}

	c.mu.Lock()
	c.active[toast.ID] = toast
	c.mu.Unlock()

	if c.sink != nil {
		c.sink(toast)
	}

	// fade begins after the display window; removal after the fade window
	time.AfterFunc(c.display+c.fade, func() {
		c.mu.Lock()
		delete(c.active, toast.ID)
		c.mu.Unlock()
	})
}

// Active implements ports.Notifier, returning the number of toasts still on
// screen (including ones mid-fade).
func (c *Center) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.active)
}

var _ ports.Notifier = (*Center)(nil)
