// Package chat orchestrates the qualifying conversation: it keeps the
// per-session message history, streams the assistant reply delta by delta,
// and decides when enough context has been gathered to move on to
// recommendations.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/startupgps/server/internal/models"
)

const systemPrompt = `You are a helpful assistant for rural entrepreneurs in India. Your role is to ask qualifying questions to understand their business needs and provide personalized recommendations.

Based on the user's sector, ask 3-5 relevant questions about:
- Their experience level
- Available capital/budget
- Location (district/state)
- Target market
- Specific challenges they face
- Timeline for starting

Keep questions simple, conversational, and in easy-to-understand language. After gathering enough information, summarize what you learned and tell them you'll generate personalized recommendations.

Be encouraging and supportive. Many users may have limited business experience.`

// apologyTurn is recorded as the assistant's reply whenever the upstream
// stream fails, so the history never ends on a dangling user turn.
const apologyTurn = "Sorry, I encountered an error. Please try again."

// readyThreshold is the message count (both roles) after which the
// conversation has gone through enough exchanges for recommendations.
const readyThreshold = 6

// ErrBusy is returned by Send while a previous reply is still streaming.
var ErrBusy = errors.New("a reply is already being generated")

// Streamer is the slice of the model client the session needs.
type Streamer interface {
	StreamChat(ctx context.Context, systemPrompt string, messages []models.ChatMessage, onDelta func(delta string) error) error
}

// SystemPrompt returns the assistant instructions with the user's sector
// appended. An empty sector reads as "Not specified".
func SystemPrompt(sector string) string {
	if sector == "" {
		sector = "Not specified"
	}
	return fmt.Sprintf("%s\n\nUser's selected sector: %s", systemPrompt, sector)
}

// Session holds one user's conversation. It is either idle or waiting for
// the model's reply; a second Send while waiting is refused rather than
// queued. Safe for concurrent use.
type Session struct {
	streamer Streamer
	sector   string

	mu       sync.Mutex
	busy     bool
	messages []models.ChatMessage
}

// NewSession starts an empty conversation for the given sector.
func NewSession(streamer Streamer, sector string) *Session {
	return &Session{streamer: streamer, sector: sector}
}

// Send appends the user's turn, streams the assistant reply through onDelta,
// and folds the deltas into one assistant turn appended to the history.
// On a stream error the fixed apology turn is recorded instead and the
// error is returned; either way the session is idle again afterwards.
func (s *Session) Send(ctx context.Context, content string, onDelta func(delta string) error) error {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return ErrBusy
	}
	s.busy = true
	s.messages = append(s.messages, models.ChatMessage{Role: models.RoleUser, Content: content})
	history := make([]models.ChatMessage, len(s.messages))
	copy(history, s.messages)
	s.mu.Unlock()

	var reply strings.Builder
	err := s.streamer.StreamChat(ctx, SystemPrompt(s.sector), history, func(delta string) error {
		reply.WriteString(delta)
		return onDelta(delta)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if err != nil {
		s.messages = append(s.messages, models.ChatMessage{Role: models.RoleAssistant, Content: apologyTurn})
		return err
	}
	s.messages = append(s.messages, models.ChatMessage{Role: models.RoleAssistant, Content: reply.String()})
	return nil
}

// ReadyForRecommendations reports whether the conversation has reached the
// three full exchanges needed before generating recommendations.
func (s *Session) ReadyForRecommendations() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages) >= readyThreshold
}

// Context returns the user's turns joined with newlines. This is the free
// text the profile extractor and recommendation prompt work from.
func (s *Session) Context() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var turns []string
	for _, m := range s.messages {
		if m.Role == models.RoleUser {
			turns = append(turns, m.Content)
		}
	}
	return strings.Join(turns, "\n")
}

// Messages returns a copy of the conversation history.
func (s *Session) Messages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}
