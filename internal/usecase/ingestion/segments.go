package ingestion

import (
	"fmt"
	"strings"
)

// ParseClockOffset converts an "HH:MM:SS" or "HH:MM:SS.mmm" transcript offset
// into seconds
func ParseClockOffset(offset string) (float64, error) {
	offset = strings.TrimSpace(offset)
	if offset == "" {
		return 0, fmt.Errorf("empty clock offset")
	}

	var h, m int
	var s float64
	if _, err := fmt.Sscanf(offset, "%d:%d:%f", &h, &m, &s); err != nil {
		return 0, fmt.Errorf("parse clock offset %q: %w", offset, err)
	}
	if h < 0 || m < 0 || m > 59 || s < 0 || s >= 60 {
		return 0, fmt.Errorf("clock offset %q out of range", offset)
	}
	return float64(h)*3600 + float64(m)*60 + s, nil
}

// SpeakingTimeBySpeaker accumulates per-speaker durations from timed
// segments. Segments with unparseable or inverted offsets are skipped.
func SpeakingTimeBySpeaker(segments []TranscriptSegment) map[string]float64 {
	totals := make(map[string]float64)
	for _, seg := range segments {
		if seg.Speaker == "" {
			continue
		}
		start, err := ParseClockOffset(seg.Start)
		if err != nil {
			continue
		}
		end, err := ParseClockOffset(seg.End)
		if err != nil || end < start {
			continue
		}
		totals[seg.Speaker] += end - start
	}
	return totals
}

// ApplySpeakingTimes writes aggregated segment durations onto the matching
// participants. Matching is by case-insensitive name, then by email local
// part, so "Alice Souza" segments land on the alice.souza participant.
func ApplySpeakingTimes(participants []ParticipantData, totals map[string]float64) {
	if len(totals) == 0 {
		return
	}
	for i := range participants {
		if secs, ok := matchSpeaker(&participants[i], totals); ok {
			participants[i].SpeakingTimeSeconds = secs
		}
	}
}

func matchSpeaker(p *ParticipantData, totals map[string]float64) (float64, bool) {
	name := strings.ToLower(strings.TrimSpace(p.Name))
	local := ""
	if at := strings.Index(p.Email, "@"); at > 0 {
		local = strings.ToLower(p.Email[:at])
	}
	for speaker, secs := range totals {
		s := strings.ToLower(strings.TrimSpace(speaker))
		if s != "" && (s == name || s == local) {
			return secs, true
		}
	}
	return 0, false
}
