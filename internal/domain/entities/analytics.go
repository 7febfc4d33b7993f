package entities

import (
	"time"

	"github.com/google/uuid"
)

// MeetingAnalytics holds derived text statistics for a meeting, one-to-one
// with the meeting row and upserted on meeting_id conflict
type MeetingAnalytics struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"meeting_id"`
	WordCount          int       `gorm:"default:0" json:"word_count"`
	AvgSentenceLength  float64   `gorm:"default:0" json:"avg_sentence_length"`
	QuestionCount      int       `gorm:"default:0" json:"question_count"`
	ActionItemCount    int       `gorm:"default:0" json:"action_item_count"`
	ObjectionCount     int       `gorm:"default:0" json:"objection_count"`
	DecisionPointCount int       `gorm:"default:0" json:"decision_point_count"`
	FollowUpScheduled  bool      `gorm:"default:false" json:"follow_up_scheduled"`
	AgendaFollowed     bool      `gorm:"default:false" json:"agenda_followed"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for MeetingAnalytics
func (MeetingAnalytics) TableName() string {
	return "meeting_analytics"
}
