package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/MatheusBP09/sales-insight-buddy/errors"
	"github.com/MatheusBP09/sales-insight-buddy/internal/domain/entities"
	"github.com/MatheusBP09/sales-insight-buddy/internal/usecase/ingestion"
	pkgvalidator "github.com/MatheusBP09/sales-insight-buddy/pkg/validator"
)

type fakeIngestService struct {
	result *ingestion.Result
	err    error
}

func (f *fakeIngestService) ProcessWebhook(context.Context, json.RawMessage) (*ingestion.Result, error) {
	return f.result, f.err
}

func (f *fakeIngestService) IngestDirect(context.Context, json.RawMessage) (*ingestion.Result, error) {
	return f.result, f.err
}

func (f *fakeIngestService) AnalyzeMeeting(context.Context, string, string) (*ingestion.Result, error) {
	return f.result, f.err
}

func newTestContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = pkgvalidator.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestProcessMeeting_Success(t *testing.T) {
	svc := &fakeIngestService{result: &ingestion.Result{
		MeetingID:         uuid.New(),
		ExternalMeetingID: "ext-1",
		Status:            entities.MeetingStatusCompleted,
	}}
	h := NewWebhook(svc, zap.NewNop())

	c, rec := newTestContext(http.MethodPost, "/v1/webhooks/process-meeting", `{"meeting_id":"ext-1"}`)
	if err := h.ProcessMeeting(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["success"] != true {
		t.Fatalf("expected success true, got %v", body)
	}
}

func TestProcessMeeting_ValidationErrorIsFiveHundred(t *testing.T) {
	svc := &fakeIngestService{err: errors.ErrMissingField("meeting_id")}
	h := NewWebhook(svc, zap.NewNop())

	c, rec := newTestContext(http.MethodPost, "/v1/webhooks/process-meeting", `{}`)
	if err := h.ProcessMeeting(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["success"] != false {
		t.Fatalf("expected success false, got %v", body)
	}
	if body["error"] == "" {
		t.Fatal("expected error message in body")
	}
}

func TestProcessMeeting_EmptyBody(t *testing.T) {
	h := NewWebhook(&fakeIngestService{}, zap.NewNop())

	c, rec := newTestContext(http.MethodPost, "/v1/webhooks/process-meeting", "")
	if err := h.ProcessMeeting(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rec.Code)
	}
}

func TestIngestMeeting_ConflictPassesThrough(t *testing.T) {
	svc := &fakeIngestService{err: errors.ErrIngestInProgress("ext-1")}
	h := NewWebhook(svc, zap.NewNop())

	c, rec := newTestContext(http.MethodPost, "/v1/webhooks/ingest-meeting", `{"meeting_id":"ext-1"}`)
	if err := h.IngestMeeting(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}
}

func TestAnalyzeMeeting_RequiresMeetingID(t *testing.T) {
	h := NewWebhook(&fakeIngestService{}, zap.NewNop())

	c, rec := newTestContext(http.MethodPost, "/v1/webhooks/analyze-meeting", `{"transcription":"texto"}`)
	if err := h.AnalyzeMeeting(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rec.Code)
	}
}

func TestAnalyzeMeeting_Success(t *testing.T) {
	svc := &fakeIngestService{result: &ingestion.Result{
		ExternalMeetingID: "ext-1",
		InterestScore:     75,
		Sentiment:         "positive",
	}}
	h := NewWebhook(svc, zap.NewNop())

	c, rec := newTestContext(http.MethodPost, "/v1/webhooks/analyze-meeting", `{"meeting_id":"ext-1"}`)
	if err := h.AnalyzeMeeting(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}
