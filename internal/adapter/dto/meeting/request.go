package meeting

// AnalyzeMeetingRequest asks for LLM analysis of an existing meeting.
// Transcription overrides the stored transcript when present.
type AnalyzeMeetingRequest struct {
	MeetingID     string `json:"meeting_id" validate:"required"`
	Transcription string `json:"transcription"`
}

// ListMeetingsRequest filters the dashboard meeting listing
type ListMeetingsRequest struct {
	Status       string `query:"status"`
	MeetingType  string `query:"meeting_type"`
	BusinessUnit string `query:"business_unit"`
	Page         int    `query:"page"`
	PageSize     int    `query:"page_size"`
}
