package models

import "time"

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// ChatMessage is a single turn entry in the session history.
// Fields are fixed at creation, except Text on model messages while
// the answer is still being revealed.
type ChatMessage struct {
	ID        string
	Role      Role
	Text      string
	Timestamp time.Time
}

// HistoryEntry is the role/text pair shape the generation backend
// expects for prior turns, oldest first.
type HistoryEntry struct {
	Role Role
	Text string
}
