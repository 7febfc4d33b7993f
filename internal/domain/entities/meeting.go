package entities

import (
	"time"

	"github.com/google/uuid"
)

// MeetingStatus represents the ingestion lifecycle of a meeting
type MeetingStatus string

const (
	MeetingStatusScheduled  MeetingStatus = "scheduled"
	MeetingStatusProcessing MeetingStatus = "processing"
	MeetingStatusCompleted  MeetingStatus = "completed"
)

// MeetingType is the heuristic classification of a meeting
type MeetingType string

const (
	MeetingTypeProspeccao    MeetingType = "prospeccao"
	MeetingTypeDemonstracao  MeetingType = "demonstracao"
	MeetingTypeNegociacao    MeetingType = "negociacao"
	MeetingTypeFollowUp      MeetingType = "follow_up"
	MeetingTypeOnboarding    MeetingType = "onboarding"
	MeetingTypeSuporte       MeetingType = "suporte"
	MeetingTypeInterna       MeetingType = "interna"
	MeetingTypeCompanyWide   MeetingType = "company_wide"
	MeetingTypeVendorPartner MeetingType = "vendor_partner"
	MeetingTypeOther         MeetingType = "other"
)

// BusinessUnit is the organizational tag inferred from the organizer email
type BusinessUnit string

const (
	BusinessUnitComercial   BusinessUnit = "comercial"
	BusinessUnitFinanceiro  BusinessUnit = "financeiro"
	BusinessUnitEducacional BusinessUnit = "educacional"
	BusinessUnitOperacoes   BusinessUnit = "operacoes"
	BusinessUnitOutros      BusinessUnit = "outros"
)

// Meeting is the aggregate root of the ingestion pipeline. Participants,
// keywords, insight and analytics rows are owned by it and replaced or
// upserted whenever the same external_meeting_id is re-ingested.
type Meeting struct {
	ID                  uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ExternalMeetingID   string        `gorm:"type:varchar(255);not null;uniqueIndex" json:"external_meeting_id"`
	Title               string        `gorm:"type:varchar(500)" json:"title"`
	MeetingType         MeetingType   `gorm:"type:varchar(30);default:'other'" json:"meeting_type"`
	BusinessUnit        BusinessUnit  `gorm:"type:varchar(30);default:'outros'" json:"business_unit"`
	StartTime           *time.Time    `json:"start_time,omitempty"`
	EndTime             *time.Time    `json:"end_time,omitempty"`
	DurationMinutes     int           `gorm:"default:0" json:"duration_minutes"`
	OrganizerEmail      string        `gorm:"type:varchar(255);not null;index" json:"organizer_email"`
	OrganizerName       string        `gorm:"type:varchar(255)" json:"organizer_name"`
	ProfileID           *uuid.UUID    `gorm:"type:uuid;index" json:"profile_id,omitempty"`
	Profile             *Profile      `gorm:"foreignKey:ProfileID" json:"profile,omitempty"`
	Transcript          string        `gorm:"type:text" json:"transcript,omitempty"`
	CorrectedTranscript string        `gorm:"type:text" json:"corrected_transcript,omitempty"`
	QualityScore        int           `gorm:"default:0" json:"quality_score"`
	SentimentScore      float64       `gorm:"default:0" json:"sentiment_score"`
	EngagementScore     float64       `gorm:"default:0" json:"engagement_score"`
	WordCount           int           `gorm:"default:0" json:"word_count"`
	Status              MeetingStatus `gorm:"type:varchar(20);default:'scheduled';index" json:"status"`
	CreatedAt           time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	Participants []MeetingParticipant `gorm:"foreignKey:MeetingID" json:"participants,omitempty"`
	Keywords     []MeetingKeyword     `gorm:"foreignKey:MeetingID" json:"keywords,omitempty"`
	Insight      *MeetingInsight      `gorm:"foreignKey:MeetingID" json:"insight,omitempty"`
	Analytics    *MeetingAnalytics    `gorm:"foreignKey:MeetingID" json:"analytics,omitempty"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// NewMeeting creates a new Meeting entity keyed on the upstream platform id
func NewMeeting(externalMeetingID string) *Meeting {
	return &Meeting{
		ID:                uuid.New(),
		ExternalMeetingID: externalMeetingID,
		MeetingType:       MeetingTypeOther,
		BusinessUnit:      BusinessUnitOutros,
		Status:            MeetingStatusScheduled,
	}
}

// HasTranscript reports whether any transcript text was ingested
func (m *Meeting) HasTranscript() bool {
	return m.Transcript != "" || m.CorrectedTranscript != ""
}

// BestTranscript returns the corrected transcript when present, else the raw one
func (m *Meeting) BestTranscript() string {
	if m.CorrectedTranscript != "" {
		return m.CorrectedTranscript
	}
	return m.Transcript
}
