package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MatheusBP09/sales-insight-buddy/internal/domain/entities"
	"github.com/MatheusBP09/sales-insight-buddy/internal/domain/repositories"
)

// meetingRepository implements the MeetingRepository interface
type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &meetingRepository{db: db}
}

// meetingUpsertColumns are the columns refreshed when an external_meeting_id
// is re-ingested. The primary key and created_at of the existing row survive.
var meetingUpsertColumns = []string{
	"title", "meeting_type", "business_unit",
	"start_time", "end_time", "duration_minutes",
	"organizer_email", "organizer_name", "profile_id",
	"transcript", "corrected_transcript",
	"quality_score", "sentiment_score", "engagement_score", "word_count",
	"status", "updated_at",
}

// Upsert inserts or updates a meeting keyed on external_meeting_id
func (r *meetingRepository) Upsert(ctx context.Context, meeting *entities.Meeting) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_meeting_id"}},
			DoUpdates: clause.AssignmentColumns(meetingUpsertColumns),
		}).
		Omit("Participants", "Keywords", "Insight", "Analytics", "Profile").
		Create(meeting).Error
	if err != nil {
		return err
	}

	// Reload so the caller sees the canonical row id when the conflict path
	// updated a pre-existing meeting
	var stored entities.Meeting
	if err := r.db.WithContext(ctx).
		Where("external_meeting_id = ?", meeting.ExternalMeetingID).
		First(&stored).Error; err != nil {
		return err
	}
	meeting.ID = stored.ID
	meeting.CreatedAt = stored.CreatedAt
	return nil
}

// FindByID retrieves a meeting by its internal id, with owned child rows
func (r *meetingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Preload("Participants").
		Preload("Keywords").
		Preload("Insight").
		Preload("Analytics").
		Where("id = ?", id).
		First(&meeting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &meeting, nil
}

// FindByExternalID retrieves a meeting by the upstream platform id
func (r *meetingRepository) FindByExternalID(ctx context.Context, externalID string) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Where("external_meeting_id = ?", externalID).
		First(&meeting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &meeting, nil
}

// List retrieves meetings matching the filters, newest first
func (r *meetingRepository) List(ctx context.Context, filters repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	query := r.db.WithContext(ctx).Model(&entities.Meeting{})

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.MeetingType != nil {
		query = query.Where("meeting_type = ?", *filters.MeetingType)
	}
	if filters.BusinessUnit != nil {
		query = query.Where("business_unit = ?", *filters.BusinessUnit)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var meetings []*entities.Meeting
	err := query.Order("start_time DESC NULLS LAST, created_at DESC").Find(&meetings).Error
	return meetings, total, err
}

// UpdateStatus advances a meeting's lifecycle status
func (r *meetingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.MeetingStatus) error {
	return r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}
