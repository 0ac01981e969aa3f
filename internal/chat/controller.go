package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	apierrors "github.com/osmiq/osmiq/internal/errors"
	"github.com/osmiq/osmiq/internal/models"
)

// State is the turn lifecycle state of a session
type State int

const (
	// StateIdle means no turn is in flight; Submit is accepted.
	StateIdle State = iota
	// StateSubmitting means input was accepted and the user message is
	// being recorded.
	StateSubmitting
	// StateAwaiting means the generation request is outstanding.
	StateAwaiting
	// StateRevealing means the answer arrived and is being revealed
	// word by word.
	StateRevealing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateAwaiting:
		return "awaiting"
	case StateRevealing:
		return "revealing"
	}
	return "unknown"
}

// Generator produces a complete answer for a message given the prior
// turn history, oldest first. The web search flag asks the backend to
// consult external sources.
type Generator interface {
	Generate(ctx context.Context, message string, history []models.HistoryEntry, useWebSearch bool) (string, error)
}

// Controller drives the full turn lifecycle: it validates input,
// records the user message, calls the generator, and reveals the
// answer into the store. At most one turn is in flight at a time;
// Submit rejects calls while busy regardless of what the UI allows.
type Controller struct {
	gen      Generator
	store    *Store
	interval time.Duration
	notify   func()

	mu       sync.Mutex
	state    State
	epoch    uint64 // bumped by Close; stale turn continuations check it
	reveal   *Scheduler
	inFlight string // id of the model message being revealed
}

// ControllerOption configures a Controller
type ControllerOption func(*Controller)

// WithRevealInterval overrides the reveal cadence (tests shrink it)
func WithRevealInterval(interval time.Duration) ControllerOption {
	return func(c *Controller) {
		c.interval = interval
	}
}

// WithNotify registers a callback fired after every store mutation, so
// the presentation layer knows to re-read Snapshot.
func WithNotify(fn func()) ControllerOption {
	return func(c *Controller) {
		c.notify = fn
	}
}

// NewController creates a session controller over the given store
func NewController(gen Generator, store *Store, opts ...ControllerOption) *Controller {
	c := &Controller{
		gen:      gen,
		store:    store,
		interval: models.RevealInterval,
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit runs one turn: it appends the user message, requests an
// answer and starts the reveal. It blocks until the generation call
// settles (the reveal continues in the background) and returns
// ErrEmptyInput for blank text or ErrBusy while a turn is in flight;
// both are no-ops on the store. Generation failures are absorbed into
// a fixed error reply and are not returned.
func (c *Controller) Submit(ctx context.Context, text string, useWebSearch bool) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return apierrors.ErrEmptyInput
	}

	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return apierrors.ErrBusy
	}
	c.state = StateSubmitting
	epoch := c.epoch
	c.mu.Unlock()

	// History snapshot is taken before the new user message is
	// appended; the backend receives the message separately.
	history := c.store.History()

	userMsg := models.ChatMessage{
		ID:        NextID(),
		Role:      models.RoleUser,
		Text:      trimmed,
		Timestamp: time.Now(),
	}
	if err := c.store.Append(userMsg); err != nil {
		// Unreachable with process-unique ids.
		log.Error().Err(err).Str("id", userMsg.ID).Msg("failed to append user message")
		c.setState(StateIdle)
		return err
	}
	c.changed()

	if !c.advance(epoch, StateAwaiting) {
		log.Debug().Str("id", userMsg.ID).Msg("turn cancelled before the generation request left")
		return nil
	}
	log.Debug().Str("id", userMsg.ID).Bool("web_search", useWebSearch).Msg("generation request started")

	fullText, err := c.gen.Generate(ctx, trimmed, history, useWebSearch)
	if err != nil {
		log.Debug().Err(err).Msg("generation failed, recording error reply")
		c.fail(epoch)
		return nil
	}

	c.startReveal(fullText, epoch)
	return nil
}

// advance moves to the given state unless the turn was cancelled by
// Close in the meantime. A false return means the caller's turn is
// dead and its result must be discarded.
func (c *Controller) advance(epoch uint64, s State) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		return false
	}
	c.state = s
	return true
}

// fail appends the fixed error reply as a whole message and returns
// the session to idle. Failed turns never reveal partial text. A turn
// cancelled while the request was outstanding records nothing.
func (c *Controller) fail(epoch uint64) {
	errMsg := models.ChatMessage{
		ID:        NextID(),
		Role:      models.RoleModel,
		Text:      models.ErrorReply,
		Timestamp: time.Now(),
	}

	c.mu.Lock()
	if c.epoch != epoch {
		c.mu.Unlock()
		log.Debug().Msg("dropping failure of a cancelled turn")
		return
	}
	if err := c.store.Append(errMsg); err != nil {
		log.Error().Err(err).Msg("failed to append error reply")
	}
	c.state = StateIdle
	c.inFlight = ""
	c.reveal = nil
	c.mu.Unlock()
	c.changed()
}

// startReveal appends the empty in-flight model message and begins
// filling it in word by word. An answer that arrives after the turn
// was cancelled is discarded whole; it never touches the store.
func (c *Controller) startReveal(fullText string, epoch uint64) {
	botMsg := models.ChatMessage{
		ID:        NextID(),
		Role:      models.RoleModel,
		Text:      "",
		Timestamp: time.Now(),
	}

	sched := NewScheduler(fullText, c.interval,
		func(partial string) {
			if err := c.store.UpdateText(botMsg.ID, partial); err != nil {
				log.Error().Err(err).Str("id", botMsg.ID).Msg("reveal tick lost")
				return
			}
			c.changed()
		},
		func() {
			c.mu.Lock()
			c.state = StateIdle
			c.inFlight = ""
			c.reveal = nil
			c.mu.Unlock()
			log.Debug().Str("id", botMsg.ID).Msg("reveal complete")
			c.changed()
		},
	)

	c.mu.Lock()
	if c.epoch != epoch {
		c.mu.Unlock()
		log.Debug().Msg("dropping answer of a cancelled turn")
		return
	}
	if err := c.store.Append(botMsg); err != nil {
		c.state = StateIdle
		c.mu.Unlock()
		log.Error().Err(err).Msg("failed to append model message")
		return
	}
	// A previous scheduler still active here would break the single
	// in-flight invariant; the busy check and the epoch guard make this
	// unreachable, but cancel it anyway before replacing it.
	prev := c.reveal
	c.reveal = sched
	c.inFlight = botMsg.ID
	c.state = StateRevealing
	c.mu.Unlock()
	if prev != nil {
		prev.Cancel()
	}

	c.changed()
	sched.Start()
}

// Close cancels the in-flight turn and returns the session to idle.
// Partial text already written stays in the store; there is no
// rollback. A generation request still outstanding keeps running, but
// its result is discarded when it lands. Safe to call at any time,
// including repeatedly.
func (c *Controller) Close() {
	c.mu.Lock()
	c.epoch++
	sched := c.reveal
	c.reveal = nil
	c.inFlight = ""
	c.state = StateIdle
	c.mu.Unlock()

	if sched != nil {
		sched.Cancel()
	}
}

// State returns the current lifecycle state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Busy reports whether a turn is in flight (submission disabled)
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state != StateIdle
}

// InFlightID returns the id of the model message currently being
// revealed, or the empty string.
func (c *Controller) InFlightID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Store returns the message store backing this controller
func (c *Controller) Store() *Store {
	return c.store
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *Controller) changed() {
	if c.notify != nil {
		c.notify()
	}
}
