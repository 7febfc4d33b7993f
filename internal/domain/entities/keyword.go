package entities

import (
	"time"

	"github.com/google/uuid"
)

// MeetingKeyword is one categorized keyword occurrence count for a meeting.
// Same replace-on-reingest lifecycle as MeetingParticipant.
type MeetingKeyword struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID uuid.UUID `gorm:"type:uuid;not null;index" json:"meeting_id"`
	Keyword   string    `gorm:"type:varchar(100);not null" json:"keyword"`
	Frequency int       `gorm:"default:0" json:"frequency"`
	Category  string    `gorm:"type:varchar(50)" json:"category"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for MeetingKeyword
func (MeetingKeyword) TableName() string {
	return "meeting_keywords"
}
