package chat

import (
	"strings"
	"sync"
	"time"

	"github.com/osmiq/osmiq/internal/models"
)

// Scheduler simulates progressive disclosure of a complete answer. The
// text is split into whitespace-separated words; each tick reveals one
// more word by passing the joined prefix to onTick, and onDone fires
// exactly once after the last word. The backend returns complete
// answers, so this is a presentation effect, not real streaming.
//
// Callbacks run sequentially on a single goroutine. They must not call
// Cancel on the same scheduler.
type Scheduler struct {
	tokens   []string
	interval time.Duration
	onTick   func(partial string)
	onDone   func()

	mu        sync.Mutex
	started   bool
	stopped   bool
	completed bool
	stop      chan struct{}
	done      chan struct{}
}

// NewScheduler creates a reveal scheduler for fullText. An interval of
// zero or less falls back to the default cadence.
func NewScheduler(fullText string, interval time.Duration, onTick func(string), onDone func()) *Scheduler {
	if interval <= 0 {
		interval = models.RevealInterval
	}
	return &Scheduler{
		tokens:   strings.Fields(fullText),
		interval: interval,
		onTick:   onTick,
		onDone:   onDone,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins ticking. Starting twice, or after Cancel, is a no-op.
func (r *Scheduler) Start() {
	r.mu.Lock()
	if r.started || r.stopped {
		r.mu.Unlock()
		return
	}
	r.started = true
	r.mu.Unlock()

	go r.run()
}

func (r *Scheduler) run() {
	defer close(r.done)

	// Empty or whitespace-only text has no words to reveal; settle
	// immediately so the turn still completes.
	if len(r.tokens) == 0 {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.stopped {
			return
		}
		r.completed = true
		if r.onDone != nil {
			r.onDone()
		}
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	cursor := 0
	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.mu.Lock()
			if r.stopped {
				r.mu.Unlock()
				return
			}

			cursor++
			if r.onTick != nil {
				r.onTick(strings.Join(r.tokens[:cursor], " "))
			}

			if cursor == len(r.tokens) {
				r.completed = true
				if r.onDone != nil {
					r.onDone()
				}
				r.mu.Unlock()
				return
			}
			r.mu.Unlock()
		}
	}
}

// Cancel stops future ticks and suppresses onDone. Once Cancel
// returns, no callback is in flight or will fire. Cancelling after
// natural completion, or twice, is a no-op.
func (r *Scheduler) Cancel() {
	r.mu.Lock()
	if r.stopped || r.completed {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	close(r.stop)
	started := r.started
	r.mu.Unlock()

	if started {
		<-r.done
	}
}

// Active reports whether the scheduler is still ticking
func (r *Scheduler) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.started && !r.stopped && !r.completed
}

// WordCount returns the number of words the scheduler will reveal
func (r *Scheduler) WordCount() int {
	return len(r.tokens)
}
