// Package llm wraps the Gemini API. The rest of the repo treats the model as
// an opaque text/object generation service; all upstream failures are
// reported as ErrUpstream so the boundary can map them to a service error.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/startupgps/server/internal/models"
)

// ErrUpstream marks any failure of the hosted generation service.
var ErrUpstream = errors.New("upstream generation service error")

// Client wraps the Gemini API for chat streaming and one-shot generation.
type Client struct {
	client    *genai.Client
	chatModel string
	genModel  string
}

// NewClient creates a Gemini client authenticated with an API key.
func NewClient(ctx context.Context, apiKey, chatModel, genModel string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		client:    client,
		chatModel: chatModel,
		genModel:  genModel,
	}, nil
}

// GenerateText sends a single prompt and returns the model's text reply.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	temp := float32(0.7)
	config := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: 2048,
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.genModel, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("%w: no response candidates returned", ErrUpstream)
	}
	return text, nil
}

// GenerateJSON sends a prompt with a response schema and returns the raw JSON
// the model produced.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	temp := float32(0.7)
	config := &genai.GenerateContentConfig{
		Temperature:      &temp,
		MaxOutputTokens:  4096,
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.genModel, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("%w: no response candidates returned", ErrUpstream)
	}
	return text, nil
}

// StreamChat streams a multi-turn conversation, invoking onDelta for every
// incremental text chunk. Cancelling ctx aborts the stream. onDelta errors
// abort the stream and are returned as-is (they are caller errors, not
// upstream ones).
func (c *Client) StreamChat(ctx context.Context, systemPrompt string, messages []models.ChatMessage, onDelta func(delta string) error) error {
	contents := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		role := genai.Role(genai.RoleUser)
		if msg.Role == models.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Content, role))
	}

	temp := float32(0.7)
	config := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: 500,
	}
	if systemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	for chunk, err := range c.client.Models.GenerateContentStream(ctx, c.chatModel, contents, config) {
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("%w: %v", ErrUpstream, err)
		}
		delta := responseText(chunk)
		if delta == "" {
			continue
		}
		if err := onDelta(delta); err != nil {
			return err
		}
	}
	return nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
