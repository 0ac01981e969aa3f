package api

import (
	"context"
	"errors"
	"testing"

	apierrors "github.com/osmiq/osmiq/internal/errors"
)

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient("")
	if !errors.Is(err, apierrors.ErrNoAPIKey) {
		t.Errorf("NewClient(\"\") = %v, want ErrNoAPIKey", err)
	}
}

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient("key")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	if client.Model() == "" {
		t.Error("default model not set")
	}
	if client.systemPrompt == "" {
		t.Error("default system prompt not set")
	}
}

func TestNewClient_Options(t *testing.T) {
	client, err := NewClient("key",
		WithModel("gemini-custom"),
		WithSystemPrompt("you are terse"),
	)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	if client.Model() != "gemini-custom" {
		t.Errorf("Model = %q", client.Model())
	}
	if client.systemPrompt != "you are terse" {
		t.Errorf("systemPrompt = %q", client.systemPrompt)
	}
	if got := client.endpoint(); got != "https://generativelanguage.googleapis.com/v1beta/models/gemini-custom:generateContent" {
		t.Errorf("endpoint = %q", got)
	}
}

func TestClient_Generate_EmptyMessage(t *testing.T) {
	client, err := NewClient("key")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	_, err = client.Generate(context.Background(), "  ", nil, false)
	if !errors.Is(err, apierrors.ErrEmptyInput) {
		t.Errorf("Generate with blank message = %v, want ErrEmptyInput", err)
	}
}

func TestMockClient(t *testing.T) {
	mock := &MockClient{Response: "canned"}

	got, err := mock.Generate(context.Background(), "q", nil, true)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "canned" {
		t.Errorf("response = %q", got)
	}
	if mock.Calls != 1 || mock.LastMessage != "q" || !mock.LastWeb {
		t.Errorf("mock recorded %d/%q/%v", mock.Calls, mock.LastMessage, mock.LastWeb)
	}

	mock.Err = errors.New("backend down")
	if _, err := mock.Generate(context.Background(), "q", nil, false); err == nil {
		t.Error("expected canned error")
	}
}
