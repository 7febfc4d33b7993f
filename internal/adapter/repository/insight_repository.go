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

// insightRepository implements the InsightRepository interface
type insightRepository struct {
	db *gorm.DB
}

// NewInsightRepository creates a new insight repository
func NewInsightRepository(db *gorm.DB) repositories.InsightRepository {
	return &insightRepository{db: db}
}

// Upsert inserts or updates the insight row keyed on meeting_id
func (r *insightRepository) Upsert(ctx context.Context, insight *entities.MeetingInsight) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "meeting_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"sentiment", "interest_score",
				"opportunities", "commitments", "next_steps", "pain_points",
				"objections", "risks", "keywords",
				"value_proposition", "updated_at",
			}),
		}).
		Create(insight).Error
}

// FindByMeetingID retrieves the insight row of a meeting
func (r *insightRepository) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.MeetingInsight, error) {
	var insight entities.MeetingInsight
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		First(&insight).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &insight, nil
}
