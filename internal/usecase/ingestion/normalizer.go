package ingestion

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/MatheusBP09/sales-insight-buddy/errors"
)

// MeetingData is the canonical record every supported payload shape is
// normalized into before anything touches the database
type MeetingData struct {
	ExternalMeetingID   string
	Subject             string
	StartTime           *time.Time
	EndTime             *time.Time
	OrganizerEmail      string
	OrganizerName       string
	Transcript          string
	CorrectedTranscript string
	Participants        []ParticipantData
	Segments            []TranscriptSegment
}

// ParticipantData carries one attendee. Payloads send either a plain email
// string or a structured object; both decode into this shape.
type ParticipantData struct {
	Name                string
	Email               string
	Company             string
	Role                string
	SpeakingTimeSeconds float64
}

// TranscriptSegment is one timed utterance from a segmented transcript
type TranscriptSegment struct {
	Speaker string
	Text    string
	Start   string
	End     string
}

// BestTranscript returns the corrected text when present, else the raw one
func (d *MeetingData) BestTranscript() string {
	if d.CorrectedTranscript != "" {
		return d.CorrectedTranscript
	}
	return d.Transcript
}

// Alias sets, resolved first-non-null-wins in this order
var (
	meetingIDAliases      = []string{"meeting_id", "external_meeting_id", "online_meeting_id", "id"}
	subjectAliases        = []string{"subject", "title", "meeting_title"}
	startTimeAliases      = []string{"start_time", "start", "started_at"}
	endTimeAliases        = []string{"end_time", "end", "ended_at"}
	organizerEmailAliases = []string{"organizer_email", "user_email", "email"}
	organizerNameAliases  = []string{"organizer_name", "user_name"}
	transcriptAliases     = []string{"transcription", "transcript", "transcript_content", "content"}
	correctedAliases      = []string{"corrected_transcription", "corrected_transcript"}
)

// Normalize decodes an arbitrary webhook payload into one canonical
// MeetingData record. Input may be an array of one, or wrapped under a
// Body/body envelope; field names vary across producer versions and are
// resolved through fixed alias lists. The meeting id and the organizer email
// are hard requirements.
func Normalize(raw json.RawMessage) (*MeetingData, error) {
	obj, err := unwrap(raw)
	if err != nil {
		return nil, err
	}

	data := &MeetingData{
		ExternalMeetingID:   firstString(obj, meetingIDAliases),
		Subject:             firstString(obj, subjectAliases),
		StartTime:           firstTime(obj, startTimeAliases),
		EndTime:             firstTime(obj, endTimeAliases),
		OrganizerName:       firstString(obj, organizerNameAliases),
		OrganizerEmail:      firstString(obj, organizerEmailAliases),
		Transcript:          firstString(obj, transcriptAliases),
		CorrectedTranscript: firstString(obj, correctedAliases),
	}

	// Nested organizer object takes priority over flat aliases
	if org, ok := obj["organizer"].(map[string]interface{}); ok {
		if email := stringValue(org["email"]); email != "" {
			data.OrganizerEmail = email
		}
		if name := stringValue(org["name"]); name != "" {
			data.OrganizerName = name
		}
	}

	if data.ExternalMeetingID == "" {
		return nil, errors.ErrMissingField("meeting_id")
	}
	if data.OrganizerEmail == "" {
		return nil, errors.ErrMissingField("organizer_email")
	}
	data.OrganizerEmail = strings.ToLower(data.OrganizerEmail)

	data.Participants = decodeParticipants(obj["participants"])
	data.Segments = decodeSegments(obj["segments"])

	return data, nil
}

// unwrap applies the input resolution order: array element 0, then the
// Body/body envelope, then the object itself
func unwrap(raw json.RawMessage) (map[string]interface{}, error) {
	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, errors.ErrValidation("invalid JSON payload")
	}

	if arr, ok := decoded.([]interface{}); ok {
		if len(arr) == 0 {
			return nil, errors.ErrValidation("empty payload array")
		}
		decoded = arr[0]
	}

	obj, ok := decoded.(map[string]interface{})
	if !ok {
		return nil, errors.ErrValidation("payload is not a JSON object")
	}

	if body, ok := obj["Body"].(map[string]interface{}); ok {
		return body, nil
	}
	if body, ok := obj["body"].(map[string]interface{}); ok {
		return body, nil
	}
	return obj, nil
}

func stringValue(v interface{}) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func firstString(obj map[string]interface{}, aliases []string) string {
	for _, key := range aliases {
		if s := stringValue(obj[key]); s != "" {
			return s
		}
	}
	return ""
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func firstTime(obj map[string]interface{}, aliases []string) *time.Time {
	raw := firstString(obj, aliases)
	if raw == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// decodeParticipants handles both producer variants: a list of plain email
// strings and a list of structured objects
func decodeParticipants(v interface{}) []ParticipantData {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}

	participants := make([]ParticipantData, 0, len(items))
	for _, item := range items {
		switch p := item.(type) {
		case string:
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			participants = append(participants, ParticipantData{
				Name:  nameFromEmail(p),
				Email: strings.ToLower(p),
			})
		case map[string]interface{}:
			pd := ParticipantData{
				Name:    stringValue(p["name"]),
				Email:   strings.ToLower(firstString(p, []string{"email", "email_address"})),
				Company: stringValue(p["company"]),
				Role:    stringValue(p["role"]),
			}
			if secs, ok := p["speaking_time_seconds"].(float64); ok && secs > 0 {
				pd.SpeakingTimeSeconds = secs
			}
			if pd.Name == "" && pd.Email != "" {
				pd.Name = nameFromEmail(pd.Email)
			}
			if pd.Name == "" && pd.Email == "" {
				continue
			}
			participants = append(participants, pd)
		}
	}
	return participants
}

func decodeSegments(v interface{}) []TranscriptSegment {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}

	segments := make([]TranscriptSegment, 0, len(items))
	for _, item := range items {
		seg, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		segments = append(segments, TranscriptSegment{
			Speaker: firstString(seg, []string{"speaker", "speaker_name"}),
			Text:    firstString(seg, []string{"text", "content"}),
			Start:   firstString(seg, []string{"start", "start_time", "offset"}),
			End:     firstString(seg, []string{"end", "end_time"}),
		})
	}
	return segments
}

// nameFromEmail derives a display name from the address local part
func nameFromEmail(email string) string {
	local := email
	if at := strings.Index(email, "@"); at > 0 {
		local = email[:at]
	}
	local = strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(local)
	return strings.TrimSpace(local)
}
