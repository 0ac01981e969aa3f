package chat

import (
	"strings"
	"sync"
	"testing"
	"time"
)

// revealRecorder collects ticks and completion under a lock
type revealRecorder struct {
	mu       sync.Mutex
	partials []string
	done     int
	doneCh   chan struct{}
}

func newRevealRecorder() *revealRecorder {
	return &revealRecorder{doneCh: make(chan struct{})}
}

func (r *revealRecorder) onTick(partial string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.partials = append(r.partials, partial)
}

func (r *revealRecorder) onDone() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.done++
	close(r.doneCh)
}

func (r *revealRecorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.doneCh:
	case <-time.After(2 * time.Second):
		t.Fatal("reveal did not complete in time")
	}
}

func (r *revealRecorder) snapshot() ([]string, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.partials))
	copy(out, r.partials)
	return out, r.done
}

func TestScheduler_RevealsFullText(t *testing.T) {
	rec := newRevealRecorder()
	full := "Entropy measures disorder in a system."

	sched := NewScheduler(full, time.Millisecond, rec.onTick, rec.onDone)
	sched.Start()
	rec.wait(t)

	partials, done := rec.snapshot()
	if done != 1 {
		t.Errorf("onDone fired %d times, want 1", done)
	}
	if len(partials) != 6 {
		t.Fatalf("got %d ticks, want 6", len(partials))
	}
	if last := partials[len(partials)-1]; last != full {
		t.Errorf("final partial = %q, want %q", last, full)
	}
}

func TestScheduler_MonotonicPrefixes(t *testing.T) {
	rec := newRevealRecorder()
	full := "one two three four five"

	sched := NewScheduler(full, time.Millisecond, rec.onTick, rec.onDone)
	sched.Start()
	rec.wait(t)

	partials, _ := rec.snapshot()
	for i, p := range partials {
		words := strings.Fields(p)
		if len(words) != i+1 {
			t.Errorf("tick %d revealed %d words, want %d", i, len(words), i+1)
		}
		if i > 0 && !strings.HasPrefix(p, partials[i-1]) {
			t.Errorf("tick %d (%q) is not an extension of tick %d (%q)", i, p, i-1, partials[i-1])
		}
	}
}

func TestScheduler_CollapsesWhitespace(t *testing.T) {
	rec := newRevealRecorder()

	sched := NewScheduler("  spaced\tout\n\nwords ", time.Millisecond, rec.onTick, rec.onDone)
	sched.Start()
	rec.wait(t)

	partials, _ := rec.snapshot()
	if last := partials[len(partials)-1]; last != "spaced out words" {
		t.Errorf("final partial = %q, want single-space joined words", last)
	}
}

func TestScheduler_EmptyText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t "} {
		rec := newRevealRecorder()
		sched := NewScheduler(text, time.Millisecond, rec.onTick, rec.onDone)
		if sched.WordCount() != 0 {
			t.Errorf("WordCount(%q) = %d, want 0", text, sched.WordCount())
		}
		sched.Start()
		rec.wait(t)

		partials, done := rec.snapshot()
		if len(partials) != 0 {
			t.Errorf("empty text produced %d ticks", len(partials))
		}
		if done != 1 {
			t.Errorf("onDone fired %d times for %q, want 1", done, text)
		}
	}
}

func TestScheduler_Cancel(t *testing.T) {
	rec := newRevealRecorder()
	// Long text and slow cadence so the cancel lands mid-reveal.
	full := strings.Repeat("word ", 200)

	sched := NewScheduler(full, 5*time.Millisecond, rec.onTick, rec.onDone)
	sched.Start()
	time.Sleep(25 * time.Millisecond)
	sched.Cancel()

	ticksAtCancel, _ := rec.snapshot()
	time.Sleep(30 * time.Millisecond)
	partials, done := rec.snapshot()

	if done != 0 {
		t.Error("onDone fired after Cancel")
	}
	if len(partials) != len(ticksAtCancel) {
		t.Errorf("ticks continued after Cancel: %d -> %d", len(ticksAtCancel), len(partials))
	}
	if sched.Active() {
		t.Error("scheduler still active after Cancel")
	}
}

func TestScheduler_CancelAfterCompletion(t *testing.T) {
	rec := newRevealRecorder()

	sched := NewScheduler("done already", time.Millisecond, rec.onTick, rec.onDone)
	sched.Start()
	rec.wait(t)

	// No-op, must not panic or re-fire onDone.
	sched.Cancel()
	sched.Cancel()

	_, done := rec.snapshot()
	if done != 1 {
		t.Errorf("onDone fired %d times, want 1", done)
	}
}

func TestScheduler_CancelBeforeStart(t *testing.T) {
	rec := newRevealRecorder()

	sched := NewScheduler("never shown", time.Millisecond, rec.onTick, rec.onDone)
	sched.Cancel()
	sched.Start() // must not start after cancel

	time.Sleep(20 * time.Millisecond)
	partials, done := rec.snapshot()
	if len(partials) != 0 || done != 0 {
		t.Errorf("cancelled scheduler ran: %d ticks, %d done", len(partials), done)
	}
}

func TestScheduler_StartTwice(t *testing.T) {
	rec := newRevealRecorder()

	sched := NewScheduler("a b c", time.Millisecond, rec.onTick, rec.onDone)
	sched.Start()
	sched.Start()
	rec.wait(t)

	partials, done := rec.snapshot()
	if len(partials) != 3 {
		t.Errorf("double Start produced %d ticks, want 3", len(partials))
	}
	if done != 1 {
		t.Errorf("onDone fired %d times, want 1", done)
	}
}
