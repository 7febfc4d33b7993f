package analysis

import (
	"context"
	stdErrors "errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/MatheusBP09/sales-insight-buddy/errors"
)

type fakeCompleter struct {
	content string
	err     error
}

func (f *fakeCompleter) ChatCompletion(_ context.Context, _, _ string) (string, error) {
	return f.content, f.err
}

func TestAnalyzeTranscription_ValidJSON(t *testing.T) {
	completer := &fakeCompleter{content: `{
		"client_objections": ["muito caro"],
		"commitments": [],
		"next_steps": ["enviar proposta"],
		"pain_points": [],
		"value_proposition": "economia de escala",
		"interest_score": 80,
		"keywords": ["proposta"],
		"sentiment": "positive",
		"opportunities": [],
		"risks": []
	}`}

	svc := NewService(completer, zap.NewNop())
	result, err := svc.AnalyzeTranscription(context.Background(), "transcrição")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.InterestScore != 80 || result.Sentiment != "positive" {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(result.ClientObjections) != 1 || result.ClientObjections[0] != "muito caro" {
		t.Fatalf("unexpected objections %v", result.ClientObjections)
	}
}

func TestAnalyzeTranscription_MarkdownFencedJSON(t *testing.T) {
	completer := &fakeCompleter{content: "```json\n{\"interest_score\": 70, \"sentiment\": \"negative\"}\n```"}

	svc := NewService(completer, zap.NewNop())
	result, err := svc.AnalyzeTranscription(context.Background(), "transcrição")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.InterestScore != 70 || result.Sentiment != "negative" {
		t.Fatalf("fenced JSON not parsed, got %+v", result)
	}
	if result.Keywords == nil {
		t.Fatal("nil list fields must be normalized to empty slices")
	}
}

func TestAnalyzeTranscription_NonJSONFallsBackToDefault(t *testing.T) {
	completer := &fakeCompleter{content: "Sorry, I cannot comply"}

	svc := NewService(completer, zap.NewNop())
	result, err := svc.AnalyzeTranscription(context.Background(), "transcrição")
	if err != nil {
		t.Fatalf("non-JSON content must not be an error, got %v", err)
	}
	if result.InterestScore != 50 {
		t.Fatalf("expected default interest_score 50 got %d", result.InterestScore)
	}
	if result.Sentiment != "neutral" {
		t.Fatalf("expected default sentiment neutral got %s", result.Sentiment)
	}
}

func TestAnalyzeTranscription_CompleterFailure(t *testing.T) {
	completer := &fakeCompleter{err: fmt.Errorf("connection refused")}

	svc := NewService(completer, zap.NewNop())
	_, err := svc.AnalyzeTranscription(context.Background(), "transcrição")
	if err == nil {
		t.Fatal("expected error")
	}

	var appErr errors.AppError
	if !stdErrors.As(err, &appErr) {
		t.Fatalf("expected AppError got %T", err)
	}
	if appErr.Code != errors.ErrorCode_UPSTREAM_ERROR {
		t.Fatalf("expected upstream error code got %s", appErr.Code)
	}
}
