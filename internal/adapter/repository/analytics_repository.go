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

// analyticsRepository implements the AnalyticsRepository interface
type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) repositories.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// Upsert inserts or updates the analytics row keyed on meeting_id
func (r *analyticsRepository) Upsert(ctx context.Context, analytics *entities.MeetingAnalytics) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "meeting_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"word_count", "avg_sentence_length",
				"question_count", "action_item_count", "objection_count", "decision_point_count",
				"follow_up_scheduled", "agenda_followed", "updated_at",
			}),
		}).
		Create(analytics).Error
}

// FindByMeetingID retrieves the analytics row of a meeting
func (r *analyticsRepository) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.MeetingAnalytics, error) {
	var analytics entities.MeetingAnalytics
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		First(&analytics).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &analytics, nil
}
