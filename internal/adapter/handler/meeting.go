package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/MatheusBP09/sales-insight-buddy/errors"
	meetingdto "github.com/MatheusBP09/sales-insight-buddy/internal/adapter/dto/meeting"
	"github.com/MatheusBP09/sales-insight-buddy/internal/domain/entities"
	"github.com/MatheusBP09/sales-insight-buddy/internal/domain/repositories"
)

const defaultPageSize = 20

// Meeting serves the dashboard read API
type Meeting struct {
	repo   repositories.MeetingRepository
	logger *zap.Logger
}

func NewMeeting(repo repositories.MeetingRepository, logger *zap.Logger) *Meeting {
	return &Meeting{repo: repo, logger: logger}
}

// buildFilters converts ListMeetingsRequest to repository filters
func buildFilters(req *meetingdto.ListMeetingsRequest) repositories.MeetingFilters {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = defaultPageSize
	}

	filters := repositories.MeetingFilters{
		Limit:  req.PageSize,
		Offset: (req.Page - 1) * req.PageSize,
	}

	if req.Status != "" {
		status := entities.MeetingStatus(req.Status)
		filters.Status = &status
	}
	if req.MeetingType != "" {
		meetingType := entities.MeetingType(req.MeetingType)
		filters.MeetingType = &meetingType
	}
	if req.BusinessUnit != "" {
		unit := entities.BusinessUnit(req.BusinessUnit)
		filters.BusinessUnit = &unit
	}

	return filters
}

// ListMeetings returns meetings filtered by status, type and business unit
func (h *Meeting) ListMeetings(c echo.Context) error {
	req := &meetingdto.ListMeetingsRequest{}
	if err := c.Bind(req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidation("invalid query parameters"))
	}

	meetings, total, err := h.repo.List(c.Request().Context(), buildFilters(req))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrPersistence("meeting list", err))
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{
		"meetings": meetings,
		"total":    total,
	})
}

// GetMeeting returns one meeting with participants, keywords, insight and
// analytics preloaded
func (h *Meeting) GetMeeting(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrValidation("invalid meeting id"))
	}

	meeting, err := h.repo.FindByID(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrPersistence("meeting lookup", err))
	}
	if meeting == nil {
		return HandleError(h.logger, c, errors.ErrMeetingNotFound(id.String()))
	}

	return HandleSuccess(h.logger, c, meeting)
}
