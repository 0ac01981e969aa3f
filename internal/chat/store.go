// Package chat implements the conversational session engine: the
// ordered message store, the simulated word-by-word reveal, the turn
// lifecycle controller and the transient copy-feedback tracker.
package chat

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	apierrors "github.com/osmiq/osmiq/internal/errors"
	"github.com/osmiq/osmiq/internal/models"
)

// idCounter disambiguates ids created within the same millisecond.
var idCounter atomic.Uint64

// NextID returns a unique, time-derived message id. Ids are unique for
// the lifetime of the process and sort in creation order.
func NextID() string {
	return fmt.Sprintf("%d-%d", time.Now().UnixMilli(), idCounter.Add(1))
}

// Store holds the ordered session history. Insertion order is the only
// meaningful order; messages are never removed individually. All
// methods are safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	messages []models.ChatMessage
	index    map[string]int // id -> position in messages
}

// NewStore creates an empty message store
func NewStore() *Store {
	return &Store{
		index: make(map[string]int),
	}
}

// Append inserts a message at the end of the history. Returns a
// DuplicateIDError if the id is already present.
func (s *Store) Append(msg models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[msg.ID]; exists {
		return apierrors.NewDuplicateIDError(msg.ID)
	}

	s.index[msg.ID] = len(s.messages)
	s.messages = append(s.messages, msg)
	return nil
}

// UpdateText replaces the text of the message with the given id,
// preserving its position. Returns a NotFoundError for unknown ids.
func (s *Store) UpdateText(id, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, exists := s.index[id]
	if !exists {
		return apierrors.NewNotFoundError(id)
	}

	s.messages[pos].Text = text
	return nil
}

// Snapshot returns a copy of the current history, oldest first.
func (s *Store) Snapshot() []models.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// History returns the role/text pairs of the current history, oldest
// first, in the shape the generation backend expects.
func (s *Store) History() []models.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.HistoryEntry, len(s.messages))
	for i, msg := range s.messages {
		out[i] = models.HistoryEntry{Role: msg.Role, Text: msg.Text}
	}
	return out
}

// Len returns the number of messages in the store
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Last returns the most recent message and true, or a zero message and
// false when the store is empty.
func (s *Store) Last() (models.ChatMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.messages) == 0 {
		return models.ChatMessage{}, false
	}
	return s.messages[len(s.messages)-1], true
}
