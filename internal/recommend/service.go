// Package recommend turns a sector and the user's conversation context into
// a normalized recommendation record. The primary path asks the model for a
// schema-constrained JSON object and post-processes it with the derived user
// profile; when that fails the service degrades to a plain-text generation
// parsed by the line-oriented section parser, with fixed defaults filling
// whatever could not be recognized.
package recommend

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/startupgps/server/internal/models"
	"github.com/startupgps/server/internal/profile"
)

// Generator is the slice of the model client the service needs.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
}

// Service builds recommendation records. Each call is a pure function of its
// inputs plus one upstream generation call; nothing is cached or retried.
type Service struct {
	gen    Generator
	logger *zap.Logger
}

// NewService creates a recommendation service.
func NewService(gen Generator, logger *zap.Logger) *Service {
	return &Service{gen: gen, logger: logger}
}

// Recommend produces the recommendation record for one request. The returned
// record is complete (no empty WhyChosen, non-empty sub-collections on the
// text path) and owned by the caller; the service keeps no reference to it.
func (s *Service) Recommend(ctx context.Context, sector, userContext string) (models.Recommendation, error) {
	prof := profile.Extract(userContext)

	raw, err := s.gen.GenerateJSON(ctx, buildStructuredPrompt(sector, userContext), recommendationSchema())
	if err == nil {
		var rec models.Recommendation
		if jsonErr := json.Unmarshal([]byte(cleanJSONResponse(raw)), &rec); jsonErr == nil {
			out := ApplyProfile(rec, prof, sector)
			out.UserProfile = &prof
			return out, nil
		} else {
			s.logger.Warn("structured recommendation was not valid JSON, degrading to text parsing",
				zap.Error(jsonErr))
		}
	} else {
		if ctx.Err() != nil {
			return models.Recommendation{}, err
		}
		s.logger.Warn("schema-constrained generation failed, degrading to text parsing", zap.Error(err))
	}

	text, err := s.gen.GenerateText(ctx, buildTextPrompt(sector, userContext))
	if err != nil {
		return models.Recommendation{}, err
	}

	rec := FillMissing(ParseRecommendationText(text))
	rec = EnsureWhyChosen(rec, sector)
	rec.UserProfile = &prof
	return rec, nil
}

// cleanJSONResponse strips markdown code fences some models wrap around JSON
// replies.
func cleanJSONResponse(response string) string {
	cleaned := strings.TrimSpace(response)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}
	return cleaned
}
