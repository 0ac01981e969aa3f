package chat

import (
	"sync"
	"time"

	"github.com/osmiq/osmiq/internal/models"
)

// Feedback tracks a transient per-message acknowledgement, such as the
// "copied" check shown after a copy action. At most one message id is
// marked at a time and the mark expires on its own. Fully decoupled
// from the turn lifecycle; it never touches message content.
type Feedback struct {
	expiry time.Duration
	notify func()

	mu     sync.Mutex
	active string
	gen    uint64 // bumped on every Mark/Clear; stale timers check it
	timer  *time.Timer
}

// NewFeedback creates a feedback tracker. An expiry of zero or less
// falls back to the default duration. notify, if non-nil, fires when
// the mark changes, including on auto-expiry.
func NewFeedback(expiry time.Duration, notify func()) *Feedback {
	if expiry <= 0 {
		expiry = models.FeedbackExpiry
	}
	return &Feedback{expiry: expiry, notify: notify}
}

// Mark flags the given message id, replacing any previous mark and
// restarting the expiry countdown.
func (f *Feedback) Mark(id string) {
	f.mu.Lock()
	if f.timer != nil {
		f.timer.Stop()
	}
	f.gen++
	gen := f.gen
	f.active = id
	f.timer = time.AfterFunc(f.expiry, func() {
		f.expire(gen)
	})
	f.mu.Unlock()

	f.changed()
}

// expire clears the mark only if it belongs to the generation whose
// timer fired. Comparing ids is not enough: a timer that already fired
// and is waiting on the lock while the same id gets re-marked would
// clear the fresh mark early.
func (f *Feedback) expire(gen uint64) {
	f.mu.Lock()
	if f.gen != gen {
		f.mu.Unlock()
		return
	}
	f.active = ""
	f.timer = nil
	f.mu.Unlock()

	f.changed()
}

// Clear unconditionally unsets the mark
func (f *Feedback) Clear() {
	f.mu.Lock()
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.gen++
	cleared := f.active != ""
	f.active = ""
	f.mu.Unlock()

	if cleared {
		f.changed()
	}
}

// ActiveID returns the currently marked message id, or ""
func (f *Feedback) ActiveID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}

func (f *Feedback) changed() {
	if f.notify != nil {
		f.notify()
	}
}
