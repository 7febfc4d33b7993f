package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Sentiment labels produced by the LLM analysis
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// InsightResult is the structured output of meeting analysis, either from the
// chat-completion call or from the heuristic extractors. Field names match the
// JSON object the LLM prompt requests.
type InsightResult struct {
	ClientObjections []string `json:"client_objections"`
	Commitments      []string `json:"commitments"`
	NextSteps        []string `json:"next_steps"`
	PainPoints       []string `json:"pain_points"`
	ValueProposition string   `json:"value_proposition"`
	InterestScore    int      `json:"interest_score"`
	Keywords         []string `json:"keywords"`
	Sentiment        string   `json:"sentiment"`
	Opportunities    []string `json:"opportunities"`
	Risks            []string `json:"risks"`
}

// DefaultInsightResult is the fallback used when the LLM returns content that
// is not valid JSON. The pipeline always produces an insight row rather than
// blocking on parse errors.
func DefaultInsightResult() *InsightResult {
	return &InsightResult{
		ClientObjections: []string{},
		Commitments:      []string{},
		NextSteps:        []string{},
		PainPoints:       []string{},
		ValueProposition: "",
		InterestScore:    50,
		Keywords:         []string{},
		Sentiment:        SentimentNeutral,
		Opportunities:    []string{},
		Risks:            []string{},
	}
}

// Normalize fills nil list fields and clamps scores so downstream persistence
// never serializes `null` into the JSONB columns
func (r *InsightResult) Normalize() {
	if r.ClientObjections == nil {
		r.ClientObjections = []string{}
	}
	if r.Commitments == nil {
		r.Commitments = []string{}
	}
	if r.NextSteps == nil {
		r.NextSteps = []string{}
	}
	if r.PainPoints == nil {
		r.PainPoints = []string{}
	}
	if r.Keywords == nil {
		r.Keywords = []string{}
	}
	if r.Opportunities == nil {
		r.Opportunities = []string{}
	}
	if r.Risks == nil {
		r.Risks = []string{}
	}
	if r.InterestScore < 0 {
		r.InterestScore = 0
	}
	if r.InterestScore > 100 {
		r.InterestScore = 100
	}
	switch r.Sentiment {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
	default:
		r.Sentiment = SentimentNeutral
	}
}

// MeetingInsight is the persisted one-to-one analysis row for a meeting,
// upserted on meeting_id conflict
type MeetingInsight struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"meeting_id"`
	Sentiment        string         `gorm:"type:varchar(20);default:'neutral'" json:"sentiment"`
	InterestScore    int            `gorm:"default:50" json:"interest_score"`
	Opportunities    datatypes.JSON `gorm:"type:jsonb" json:"opportunities,omitempty"`
	Commitments      datatypes.JSON `gorm:"type:jsonb" json:"commitments,omitempty"`
	NextSteps        datatypes.JSON `gorm:"type:jsonb" json:"next_steps,omitempty"`
	PainPoints       datatypes.JSON `gorm:"type:jsonb" json:"pain_points,omitempty"`
	Objections       datatypes.JSON `gorm:"type:jsonb" json:"objections,omitempty"`
	Risks            datatypes.JSON `gorm:"type:jsonb" json:"risks,omitempty"`
	Keywords         datatypes.JSON `gorm:"type:jsonb" json:"keywords,omitempty"`
	ValueProposition string         `gorm:"type:text" json:"value_proposition,omitempty"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for MeetingInsight
func (MeetingInsight) TableName() string {
	return "meeting_insights"
}

// NewMeetingInsight builds a persisted insight row from an analysis result
func NewMeetingInsight(meetingID uuid.UUID, result *InsightResult) *MeetingInsight {
	result.Normalize()

	insight := &MeetingInsight{
		ID:               uuid.New(),
		MeetingID:        meetingID,
		Sentiment:        result.Sentiment,
		InterestScore:    result.InterestScore,
		ValueProposition: result.ValueProposition,
	}

	insight.Opportunities = mustJSON(result.Opportunities)
	insight.Commitments = mustJSON(result.Commitments)
	insight.NextSteps = mustJSON(result.NextSteps)
	insight.PainPoints = mustJSON(result.PainPoints)
	insight.Objections = mustJSON(result.ClientObjections)
	insight.Risks = mustJSON(result.Risks)
	insight.Keywords = mustJSON(result.Keywords)

	return insight
}

// mustJSON marshals a string list; a slice of strings cannot fail to marshal
func mustJSON(list []string) datatypes.JSON {
	if list == nil {
		list = []string{}
	}
	b, _ := json.Marshal(list)
	return datatypes.JSON(b)
}
