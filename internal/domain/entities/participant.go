package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MeetingParticipant represents one attendee of a meeting. The set is fully
// replaced (delete-all, insert-all) on each re-ingestion of its parent.
type MeetingParticipant struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID           uuid.UUID `gorm:"type:uuid;not null;index" json:"meeting_id"`
	Name                string    `gorm:"type:varchar(255);not null" json:"name"`
	Email               string    `gorm:"type:varchar(255)" json:"email,omitempty"`
	Company             string    `gorm:"type:varchar(255)" json:"company,omitempty"`
	Role                string    `gorm:"type:varchar(100)" json:"role,omitempty"`
	SpeakingTimeSeconds int       `gorm:"default:0" json:"speaking_time_seconds"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for MeetingParticipant
func (MeetingParticipant) TableName() string {
	return "meeting_participants"
}

// EmailDomain returns the lowercase domain part of the participant email,
// or empty when no email is present
func (p *MeetingParticipant) EmailDomain() string {
	at := strings.LastIndex(p.Email, "@")
	if at < 0 || at == len(p.Email)-1 {
		return ""
	}
	return strings.ToLower(p.Email[at+1:])
}

// IsExternal reports whether the participant belongs to another organization
func (p *MeetingParticipant) IsExternal(homeDomain string) bool {
	domain := p.EmailDomain()
	return domain != "" && domain != strings.ToLower(homeDomain)
}
