// Package api implements the client for the generation backend.
package api

import (
	"fmt"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	apierrors "github.com/osmiq/osmiq/internal/errors"
	"github.com/osmiq/osmiq/internal/models"
)

// Client talks to the generation backend. It returns complete answers;
// the progressive reveal in the chat session is purely client-side.
type Client struct {
	httpClient   tls_client.HttpClient
	apiKey       string
	model        string
	systemPrompt string
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithModel sets the generation model
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithSystemPrompt overrides the assistant persona
func WithSystemPrompt(prompt string) ClientOption {
	return func(c *Client) {
		c.systemPrompt = prompt
	}
}

// WithHTTPClient injects a transport, mainly for tests
func WithHTTPClient(httpClient tls_client.HttpClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new generation client
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, apierrors.ErrNoAPIKey
	}

	client := &Client{
		apiKey:       apiKey,
		model:        models.DefaultModel,
		systemPrompt: models.SystemPrompt,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(300),
			tls_client.WithClientProfile(profiles.Chrome_120),
		}
		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// Model returns the model the client generates with
func (c *Client) Model() string {
	return c.model
}

// endpoint returns the generate URL for the configured model
func (c *Client) endpoint() string {
	return fmt.Sprintf(models.EndpointGenerate, c.model)
}
