package api

import (
	"context"
	"sync"

	"github.com/osmiq/osmiq/internal/models"
)

// MockClient is a canned-response generator for tests and offline
// development. It satisfies the same Generate contract as Client.
type MockClient struct {
	mu       sync.Mutex
	Response string
	Err      error

	Calls       int
	LastMessage string
	LastHistory []models.HistoryEntry
	LastWeb     bool
}

// Generate returns the canned response or error
func (m *MockClient) Generate(ctx context.Context, message string, history []models.HistoryEntry, useWebSearch bool) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls++
	m.LastMessage = message
	m.LastHistory = history
	m.LastWeb = useWebSearch

	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
