package ingestion

import (
	"testing"
)

func TestParseClockOffset(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"00:00:00.000", 0},
		{"00:01:30.500", 90.5},
		{"01:00:00", 3600},
		{"02:15:10.250", 8110.25},
	}

	for _, tt := range tests {
		got, err := ParseClockOffset(tt.input)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tt.input, err)
		}
		if got != tt.expected {
			t.Fatalf("%s: expected %v got %v", tt.input, tt.expected, got)
		}
	}
}

func TestParseClockOffset_Invalid(t *testing.T) {
	for _, input := range []string{"", "abc", "00:75:00"} {
		if _, err := ParseClockOffset(input); err == nil {
			t.Fatalf("%q: expected error", input)
		}
	}
}

func TestSpeakingTimeBySpeaker(t *testing.T) {
	segments := []TranscriptSegment{
		{Speaker: "Ana", Start: "00:00:00.000", End: "00:00:30.000"},
		{Speaker: "Bob", Start: "00:00:30.000", End: "00:00:45.000"},
		{Speaker: "Ana", Start: "00:00:45.000", End: "00:01:00.000"},
		{Speaker: "Ana", Start: "bogus", End: "00:02:00.000"},
		{Speaker: "", Start: "00:00:00.000", End: "00:01:00.000"},
	}

	totals := SpeakingTimeBySpeaker(segments)
	if totals["Ana"] != 45 {
		t.Fatalf("expected Ana 45s got %v", totals["Ana"])
	}
	if totals["Bob"] != 15 {
		t.Fatalf("expected Bob 15s got %v", totals["Bob"])
	}
	if len(totals) != 2 {
		t.Fatalf("unparseable and unnamed segments must be skipped, got %v", totals)
	}
}

func TestApplySpeakingTimes(t *testing.T) {
	participants := []ParticipantData{
		{Name: "Ana", Email: "ana@y.com"},
		{Name: "", Email: "bob@y.com"},
		{Name: "Carol", Email: "carol@y.com"},
	}
	totals := map[string]float64{
		"ana": 120,
		"bob": 60,
	}

	ApplySpeakingTimes(participants, totals)

	if participants[0].SpeakingTimeSeconds != 120 {
		t.Fatalf("name match failed: %v", participants[0].SpeakingTimeSeconds)
	}
	if participants[1].SpeakingTimeSeconds != 60 {
		t.Fatalf("email local part match failed: %v", participants[1].SpeakingTimeSeconds)
	}
	if participants[2].SpeakingTimeSeconds != 0 {
		t.Fatalf("unmatched participant must keep zero, got %v", participants[2].SpeakingTimeSeconds)
	}
}
