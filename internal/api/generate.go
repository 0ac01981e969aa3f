package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	http "github.com/bogdanfinn/fhttp"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	apierrors "github.com/osmiq/osmiq/internal/errors"
	"github.com/osmiq/osmiq/internal/models"
)

// maxErrorBody caps how much of an error response is kept for diagnostics
const maxErrorBody = 4096

// Generate sends a message plus the prior turn history (oldest first,
// excluding the message itself) and returns the complete answer text.
// With useWebSearch set, the backend may ground the answer in search
// results; any grounding source URIs are appended to the returned text
// as a trailing Sources list. No retries happen at this layer.
func (c *Client) Generate(ctx context.Context, message string, history []models.HistoryEntry, useWebSearch bool) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", apierrors.ErrEmptyInput
	}

	payload, err := buildPayload(c.systemPrompt, message, history, useWebSearch)
	if err != nil {
		return "", fmt.Errorf("failed to build payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), strings.NewReader(string(payload)))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}
	req.Header.Set("x-goog-api-key", c.apiKey)

	log.Debug().
		Str("model", c.model).
		Int("history_len", len(history)).
		Bool("web_search", useWebSearch).
		Msg("sending generate request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apierrors.NewNetworkError("generate content", c.endpoint(), err)
	}
	defer func() {
		if resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", statusError(resp.StatusCode, c.endpoint(), body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apierrors.NewNetworkError("read response", c.endpoint(), err)
	}

	return parseResponse(body)
}

// statusError maps an HTTP status to the matching typed error
func statusError(status int, endpoint string, body []byte) error {
	message := gjson.GetBytes(body, "error.message").String()
	if message == "" {
		message = strings.TrimSpace(string(body))
	}

	switch status {
	case 401, 403:
		return apierrors.NewAuthError(message)
	case 429:
		return apierrors.NewUsageLimitError(message)
	default:
		return apierrors.NewAPIError(status, endpoint, message)
	}
}

// buildPayload creates the JSON request body: system instruction,
// prior turns as contents, the new message as the final user turn, and
// the search tool when requested.
func buildPayload(systemPrompt, message string, history []models.HistoryEntry, useWebSearch bool) ([]byte, error) {
	type part struct {
		Text string `json:"text"`
	}
	type content struct {
		Role  string `json:"role"`
		Parts []part `json:"parts"`
	}

	contents := make([]content, 0, len(history)+1)
	for _, entry := range history {
		contents = append(contents, content{
			Role:  string(entry.Role),
			Parts: []part{{Text: entry.Text}},
		})
	}
	contents = append(contents, content{
		Role:  string(models.RoleUser),
		Parts: []part{{Text: message}},
	})

	body := map[string]interface{}{
		"system_instruction": map[string]interface{}{
			"parts": []part{{Text: systemPrompt}},
		},
		"contents": contents,
	}
	if useWebSearch {
		body["tools"] = []map[string]interface{}{
			{"google_search": map[string]interface{}{}},
		}
	}

	return json.Marshal(body)
}

// parseResponse extracts the answer text from a generate response and
// appends grounding sources, when present, as a trailing list. The
// concatenation is deliberate: provenance travels inside the text.
func parseResponse(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", apierrors.NewParseError("response is not valid JSON", "")
	}

	if reason := gjson.GetBytes(body, "promptFeedback.blockReason"); reason.Exists() {
		return "", apierrors.NewBlockedError(reason.String())
	}

	candidate := gjson.GetBytes(body, "candidates.0")
	if !candidate.Exists() {
		return "", apierrors.NewParseError("no candidates in response", "candidates")
	}

	var text strings.Builder
	for _, p := range candidate.Get("content.parts").Array() {
		text.WriteString(p.Get("text").String())
	}
	if text.Len() == 0 {
		return "", apierrors.ErrNoContent
	}

	answer := text.String()

	var sources []string
	for _, chunk := range candidate.Get("groundingMetadata.groundingChunks").Array() {
		if uri := chunk.Get("web.uri").String(); uri != "" {
			sources = append(sources, "• "+uri)
		}
	}
	if len(sources) > 0 {
		answer += "\n\n**Sources:**\n" + strings.Join(sources, "\n")
	}

	return answer, nil
}
