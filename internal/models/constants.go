package models

import "time"

// Generation backend endpoints and defaults.
const (
	EndpointGenerate = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"

	DefaultModel = "gemini-3-flash-preview"
)

// SystemPrompt is the assistant persona sent with every request.
const SystemPrompt = "You are Osmiq, a helpful and encouraging AI study assistant for students. " +
	"Keep answers concise, educational, and easy to understand."

// ErrorReply is the fixed message shown in place of an answer when a
// generation request fails. Failures never reveal partial text.
const ErrorReply = "Sorry, I encountered an error while processing your request."

// Timing constants for the interactive session.
const (
	// RevealInterval is the cadence of the simulated word-by-word reveal.
	RevealInterval = 30 * time.Millisecond

	// FeedbackExpiry is how long a copy confirmation stays visible.
	FeedbackExpiry = 2000 * time.Millisecond
)

// SuggestedPrompts seed an empty chat session.
var SuggestedPrompts = []string{
	"Create a study schedule for finals week",
	"Draft an email to my professor asking for an extension",
	"Summarize the key events of the French Revolution",
	"Explain Quantum Entanglement",
}

// DefaultHeaders returns the headers sent on every generation request.
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"User-Agent":   "osmiq/0.1.0",
	}
}
