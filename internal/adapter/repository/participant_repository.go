package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MatheusBP09/sales-insight-buddy/internal/domain/entities"
	"github.com/MatheusBP09/sales-insight-buddy/internal/domain/repositories"
)

// participantRepository implements the ParticipantRepository interface
type participantRepository struct {
	db *gorm.DB
}

// NewParticipantRepository creates a new participant repository
func NewParticipantRepository(db *gorm.DB) repositories.ParticipantRepository {
	return &participantRepository{db: db}
}

// ReplaceForMeeting deletes all participant rows for the meeting, then bulk
// inserts the new set
func (r *participantRepository) ReplaceForMeeting(ctx context.Context, meetingID uuid.UUID, participants []*entities.MeetingParticipant) error {
	if err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Delete(&entities.MeetingParticipant{}).Error; err != nil {
		return err
	}

	if len(participants) == 0 {
		return nil
	}

	for _, p := range participants {
		p.MeetingID = meetingID
	}
	return r.db.WithContext(ctx).Create(&participants).Error
}

// FindByMeetingID retrieves all participants of a meeting
func (r *participantRepository) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.MeetingParticipant, error) {
	var participants []*entities.MeetingParticipant
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("speaking_time_seconds DESC, name ASC").
		Find(&participants).Error
	return participants, err
}
