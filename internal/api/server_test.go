package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/startupgps/server/internal/models"
)

type fakeRecommender struct {
	rec models.Recommendation
	err error
}

func (f *fakeRecommender) Recommend(ctx context.Context, sector, userContext string) (models.Recommendation, error) {
	return f.rec, f.err
}

type fakeChatStreamer struct {
	deltas    []string
	err       error
	lastSys   string
	lastCount int
}

func (f *fakeChatStreamer) StreamChat(ctx context.Context, systemPrompt string, messages []models.ChatMessage, onDelta func(delta string) error) error {
	f.lastSys = systemPrompt
	f.lastCount = len(messages)
	for _, d := range f.deltas {
		if err := onDelta(d); err != nil {
			return err
		}
	}
	return f.err
}

func newTestServer(rec *fakeRecommender, streamer *fakeChatStreamer) *Server {
	return NewServer(rec, streamer, nil, zap.NewNop(), 5*time.Second, 5*time.Second)
}

func TestChatRequiresMessages(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "not json", body: "hello"},
		{name: "missing messages", body: `{"sector": "dairy"}`},
		{name: "empty messages", body: `{"messages": []}`},
	}

	srv := newTestServer(&fakeRecommender{}, &fakeChatStreamer{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			srv.Router().ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestChatStreamsDeltas(t *testing.T) {
	streamer := &fakeChatStreamer{deltas: []string{"What is ", "your budget?"}}
	srv := newTestServer(&fakeRecommender{}, streamer)

	body := `{"messages": [{"role": "user", "content": "hello"}], "sector": "dairy"}`
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}

	out := w.Body.String()
	if !strings.Contains(out, `data: {"type":"text-delta","delta":"What is "}`) {
		t.Errorf("first delta event missing from stream:\n%s", out)
	}
	if !strings.Contains(out, `data: {"type":"text-delta","delta":"your budget?"}`) {
		t.Errorf("second delta event missing from stream:\n%s", out)
	}
	if !strings.HasSuffix(out, "data: [DONE]\n\n") {
		t.Errorf("stream not terminated with [DONE]:\n%s", out)
	}

	if !strings.Contains(streamer.lastSys, "User's selected sector: dairy") {
		t.Errorf("system prompt missing sector:\n%s", streamer.lastSys)
	}
	if streamer.lastCount != 1 {
		t.Errorf("streamer received %d messages, want 1", streamer.lastCount)
	}
}

func TestChatUpstreamFailureBeforeFirstByte(t *testing.T) {
	streamer := &fakeChatStreamer{err: errors.New("upstream generation service error")}
	srv := newTestServer(&fakeRecommender{}, streamer)

	body := `{"messages": [{"role": "user", "content": "hello"}]}`
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error body is not JSON: %v", err)
	}
	if resp["error"] == "" {
		t.Errorf("error body = %v, want an error message", resp)
	}
}

func TestChatMidStreamFailureReportsInBand(t *testing.T) {
	streamer := &fakeChatStreamer{
		deltas: []string{"partial "},
		err:    errors.New("upstream generation service error"),
	}
	srv := newTestServer(&fakeRecommender{}, streamer)

	body := `{"messages": [{"role": "user", "content": "hello"}]}`
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, a started stream cannot change status", w.Code)
	}
	out := w.Body.String()
	if !strings.Contains(out, `"type":"error"`) {
		t.Errorf("error event missing from stream:\n%s", out)
	}
	if !strings.HasSuffix(out, "data: [DONE]\n\n") {
		t.Errorf("stream not terminated with [DONE]:\n%s", out)
	}
}

func TestRecommendationsRequiresSector(t *testing.T) {
	srv := newTestServer(&fakeRecommender{}, &fakeChatStreamer{})

	req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(`{"context": "x"}`))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRecommendationsReturnsRecord(t *testing.T) {
	prof := models.UserProfile{Education: models.EducationGraduate, Capital: models.CapitalSome, State: "Punjab"}
	rec := models.Recommendation{
		UserProfile: &prof,
		Schemes:     []models.Scheme{{Name: "PMEGP", Description: "subsidy", WhyChosen: "fit"}},
		Budget:      models.Budget{InitialInvestment: "₹75,000", ProjectedROI: "30%"},
		NextSteps:   []string{"Register on Udyam"},
	}
	srv := newTestServer(&fakeRecommender{rec: rec}, &fakeChatStreamer{})

	body := `{"sector": "dairy", "context": "I am a graduate with savings in Punjab"}`
	req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	var got models.Recommendation
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("response is not a recommendation record: %v", err)
	}
	if got.UserProfile == nil || got.UserProfile.State != "Punjab" {
		t.Errorf("userProfile not carried through: %+v", got.UserProfile)
	}
	if len(got.Schemes) != 1 || got.Schemes[0].Name != "PMEGP" {
		t.Errorf("schemes not carried through: %+v", got.Schemes)
	}
}

func TestRecommendationsUpstreamFailure(t *testing.T) {
	srv := newTestServer(&fakeRecommender{err: errors.New("upstream generation service error")}, &fakeChatStreamer{})

	req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(`{"sector": "dairy"}`))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error body is not JSON: %v", err)
	}
	if resp["error"] == "" || resp["details"] == "" {
		t.Errorf("error body = %v, want error and details", resp)
	}
}

func exportBody() string {
	return `{"sector": "dairy", "recommendation": {
		"schemes": [{"name": "PMEGP", "description": "subsidy", "whyChosen": "fit"}],
		"banks": [{"name": "SBI", "loanType": "Mudra loan", "whyChosen": "reach"}],
		"licenses": [], "training": [],
		"budget": {"initialInvestment": "₹50,000", "projectedROI": "20%"},
		"nextSteps": ["Register"]
	}}`
}

func TestExportText(t *testing.T) {
	srv := newTestServer(&fakeRecommender{}, &fakeChatStreamer{})

	req := httptest.NewRequest(http.MethodPost, "/export", strings.NewReader(exportBody()))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q, want text/plain", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "roadmap.txt") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	out := w.Body.String()
	if !strings.Contains(out, "SCHEMES:\n1. PMEGP: subsidy - Why chosen: fit") {
		t.Errorf("scheme line missing from export:\n%s", out)
	}
}

func TestExportExcel(t *testing.T) {
	srv := newTestServer(&fakeRecommender{}, &fakeChatStreamer{})

	req := httptest.NewRequest(http.MethodPost, "/export?format=xlsx", strings.NewReader(exportBody()))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "roadmap.xlsx") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if body := w.Body.Bytes(); len(body) < 2 || body[0] != 'P' || body[1] != 'K' {
		t.Error("xlsx response does not look like a zip archive")
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&fakeRecommender{}, &fakeChatStreamer{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "healthy") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestRateLimitAppliesToPost(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	defer limiter.Stop()

	srv := NewServer(&fakeRecommender{}, &fakeChatStreamer{deltas: []string{"hi"}}, limiter, zap.NewNop(), time.Second, time.Second)
	router := srv.Router()

	body := `{"sector": "dairy"}`
	first := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(body))
	w1 := httptest.NewRecorder()
	router.ServeHTTP(w1, first)
	if w1.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", w1.Code)
	}

	second := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(body))
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, second)
	if w2.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", w2.Code)
	}

	// GET endpoints are never limited.
	health := httptest.NewRequest(http.MethodGet, "/health", nil)
	w3 := httptest.NewRecorder()
	router.ServeHTTP(w3, health)
	if w3.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", w3.Code)
	}
}
