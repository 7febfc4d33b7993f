package handler

import (
	"context"
	"encoding/json"
	"io"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/MatheusBP09/sales-insight-buddy/errors"
	meetingdto "github.com/MatheusBP09/sales-insight-buddy/internal/adapter/dto/meeting"
	"github.com/MatheusBP09/sales-insight-buddy/internal/usecase/ingestion"
)

// IngestService is the ingestion pipeline surface the webhook handlers use
type IngestService interface {
	ProcessWebhook(ctx context.Context, raw json.RawMessage) (*ingestion.Result, error)
	IngestDirect(ctx context.Context, raw json.RawMessage) (*ingestion.Result, error)
	AnalyzeMeeting(ctx context.Context, externalMeetingID, transcription string) (*ingestion.Result, error)
}

// Webhook handles the meeting ingestion endpoints
type Webhook struct {
	service IngestService
	logger  *zap.Logger
}

func NewWebhook(service IngestService, logger *zap.Logger) *Webhook {
	return &Webhook{service: service, logger: logger}
}

func (h *Webhook) readBody(c echo.Context) (json.RawMessage, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, errors.ErrValidation("failed to read request body")
	}
	if len(body) == 0 {
		return nil, errors.ErrValidation("empty request body")
	}
	return body, nil
}

// ProcessMeeting ingests a meeting payload from the platform webhook,
// resolving the organizer against existing profiles
func (h *Webhook) ProcessMeeting(c echo.Context) error {
	raw, err := h.readBody(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.service.ProcessWebhook(c.Request().Context(), raw)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, result)
}

// IngestMeeting is the direct ingestion endpoint; unknown organizers get a
// temporary profile instead of an account lookup
func (h *Webhook) IngestMeeting(c echo.Context) error {
	raw, err := h.readBody(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.service.IngestDirect(c.Request().Context(), raw)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, result)
}

// AnalyzeMeeting runs the language model analysis over an existing meeting
func (h *Webhook) AnalyzeMeeting(c echo.Context) error {
	req := &meetingdto.AnalyzeMeetingRequest{}
	if err := c.Bind(req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidation("invalid JSON payload"))
	}
	if err := c.Validate(req); err != nil {
		return HandleError(h.logger, c, errors.ErrMissingField("meeting_id"))
	}

	result, err := h.service.AnalyzeMeeting(c.Request().Context(), req.MeetingID, req.Transcription)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, result)
}
