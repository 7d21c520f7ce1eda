package enhancer

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/domain"
)

func TestInferCategory(t *testing.T) {
	tests := []struct {
		title string
		want  domain.Category
	}{
		{"AM HYPE Market Update", domain.CategoryDailyUpdate},
		{"Friday Market Recap", domain.CategoryDailyUpdate},
		{"0DTE Positioning for Today", domain.CategoryDailyUpdate},
		{"Options Education: Understanding Greeks", domain.CategoryEducational},
		{"What Is Gamma Exposure?", domain.CategoryEducational},
		{"Options 101 for Beginners", domain.CategoryEducational},
		{"Interview with a Market Maker", domain.CategoryInterview},
		{"Live Q&A Session", domain.CategoryInterview},
		{"FOMC Day Special", domain.CategorySpecialEvent},
		{"OPEX Week Preview", domain.CategorySpecialEvent},
		{"Random Topic", domain.CategoryGeneral},
		{"", domain.CategoryGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := InferCategory(tt.title); got != tt.want {
				t.Errorf("InferCategory(%q) = %s, want %s", tt.title, got, tt.want)
			}
		})
	}
}

func TestInferCategory_FirstMatchWins(t *testing.T) {
	// Matches both daily_update ("market update") and educational
	// ("understanding"); rule order decides.
	got := InferCategory("Market Update: Understanding Today's Move")
	if got != domain.CategoryDailyUpdate {
		t.Errorf("expected daily_update, got %s", got)
	}
}

func TestQualityScore(t *testing.T) {
	// 150 words over one minute hits the target exactly.
	text := strings.Repeat("word ", 150)

	if got := QualityScore(text, 60, true); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("expected 1.0 at target rate, got %f", got)
	}

	// 75 words per minute is half the target.
	if got := QualityScore(text, 120, true); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("expected 0.5 at half rate, got %f", got)
	}

	// Faster than target clamps to 1.
	if got := QualityScore(strings.Repeat("word ", 400), 60, true); got != 1.0 {
		t.Errorf("expected clamp to 1.0, got %f", got)
	}
}

func TestQualityScore_NoCaptions(t *testing.T) {
	if got := QualityScore(strings.Repeat("word ", 300), 60, false); got != 0 {
		t.Errorf("expected 0 without captions, got %f", got)
	}
}

func TestQualityScore_EmptyText(t *testing.T) {
	if got := QualityScore("", 60, true); got != 0 {
		t.Errorf("expected 0 for empty text, got %f", got)
	}
}

func TestQualityScore_ShortDuration(t *testing.T) {
	// Durations under a minute are treated as one minute, so a 30-second
	// clip cannot inflate its rate.
	text := strings.Repeat("word ", 75)
	if got := QualityScore(text, 30, true); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("expected 0.5 with sub-minute floor, got %f", got)
	}
}

func TestTechnicalScore(t *testing.T) {
	// 10 term occurrences is half saturation.
	text := strings.Repeat("gamma ", 10)
	if got := TechnicalScore(text, true); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("expected 0.5, got %f", got)
	}

	// Dense technical text clamps to 1.
	if got := TechnicalScore(strings.Repeat("gamma delta theta ", 20), true); got != 1.0 {
		t.Errorf("expected clamp to 1.0, got %f", got)
	}

	if got := TechnicalScore("nothing relevant here", true); got != 0 {
		t.Errorf("expected 0 for non-technical text, got %f", got)
	}

	if got := TechnicalScore(strings.Repeat("gamma ", 50), false); got != 0 {
		t.Errorf("expected 0 without captions, got %f", got)
	}
}

func TestProcessor_Process_StampsAllChunks(t *testing.T) {
	p := New()
	transcript := &domain.Transcript{
		Video: domain.Video{
			ID:              "vid-1",
			Title:           "AM HYPE Market Update",
			DurationSeconds: 60,
		},
		Text:        strings.Repeat("gamma hedging flow ", 50), // 150 words
		HasCaptions: true,
	}
	chunks := []domain.Chunk{
		{ID: "vid-1:0000", VideoID: "vid-1"},
		{ID: "vid-1:0001", VideoID: "vid-1"},
	}

	out, err := p.Process(context.Background(), transcript, chunks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, chunk := range out {
		if chunk.Category != domain.CategoryDailyUpdate {
			t.Errorf("chunk %s: expected daily_update, got %s", chunk.ID, chunk.Category)
		}
		if chunk.QualityLevel != domain.QualityHigh {
			t.Errorf("chunk %s: expected high quality, got %s", chunk.ID, chunk.QualityLevel)
		}
		if chunk.TechnicalScore == 0 {
			t.Errorf("chunk %s: expected non-zero technical score", chunk.ID)
		}
	}
}

func TestProcessor_Process_NoCaptions(t *testing.T) {
	p := New()
	transcript := &domain.Transcript{
		Video:       domain.Video{ID: "vid-1", Title: "Random Topic", DurationSeconds: 600},
		Text:        "auto-generated gamma delta filler",
		HasCaptions: false,
	}
	chunks := []domain.Chunk{{ID: "vid-1:0000", VideoID: "vid-1"}}

	out, err := p.Process(context.Background(), transcript, chunks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out[0].QualityScore != 0 || out[0].QualityLevel != domain.QualityNone {
		t.Errorf("expected zero quality without captions, got %f/%s", out[0].QualityScore, out[0].QualityLevel)
	}
	if out[0].TechnicalScore != 0 {
		t.Errorf("expected zero technical score without captions, got %f", out[0].TechnicalScore)
	}
}
