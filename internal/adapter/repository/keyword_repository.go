package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MatheusBP09/sales-insight-buddy/internal/domain/entities"
	"github.com/MatheusBP09/sales-insight-buddy/internal/domain/repositories"
)

// keywordRepository implements the KeywordRepository interface
type keywordRepository struct {
	db *gorm.DB
}

// NewKeywordRepository creates a new keyword repository
func NewKeywordRepository(db *gorm.DB) repositories.KeywordRepository {
	return &keywordRepository{db: db}
}

// ReplaceForMeeting deletes all keyword rows for the meeting, then bulk
// inserts the new set
func (r *keywordRepository) ReplaceForMeeting(ctx context.Context, meetingID uuid.UUID, keywords []*entities.MeetingKeyword) error {
	if err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Delete(&entities.MeetingKeyword{}).Error; err != nil {
		return err
	}

	if len(keywords) == 0 {
		return nil
	}

	for _, k := range keywords {
		k.MeetingID = meetingID
	}
	return r.db.WithContext(ctx).Create(&keywords).Error
}

// FindByMeetingID retrieves all keywords of a meeting, most frequent first
func (r *keywordRepository) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.MeetingKeyword, error) {
	var keywords []*entities.MeetingKeyword
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("frequency DESC, keyword ASC").
		Find(&keywords).Error
	return keywords, err
}
