package analysis

import (
	"strings"
	"unicode/utf8"

	"github.com/MatheusBP09/sales-insight-buddy/internal/domain/entities"
)

const minCountedWordRunes = 4

var (
	actionItemMarkers = []string{"vou ", "vamos ", "preciso ", "farei", "ficou de"}
	objectionMarkers  = []string{"mas ", "porém", "porem", "entretanto", "não concordo", "nao concordo"}
	decisionMarkers   = []string{"decidimos", "ficou decidido", "aprovado", "fechado", "vamos seguir"}
	followUpMarkers   = []string{"agendar", "marcar", "próxima reunião", "proxima reuniao", "retorno"}
	agendaMarkers     = []string{"agenda", "pauta"}
)

func countMarkers(lower string, markers []string) int {
	total := 0
	for _, m := range markers {
		total += strings.Count(lower, m)
	}
	return total
}

func containsAny(lower string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// BuildAnalytics derives textual statistics from the transcript content.
// Words shorter than four runes are ignored by the word count so that
// articles and fillers do not inflate it.
func BuildAnalytics(content string) *entities.MeetingAnalytics {
	lower := strings.ToLower(content)

	wordCount := 0
	for _, w := range strings.Fields(content) {
		if utf8.RuneCountInString(w) >= minCountedWordRunes {
			wordCount++
		}
	}

	sentences := splitSentences(content)
	avgSentenceLength := 0.0
	if len(sentences) > 0 {
		totalWords := 0
		for _, s := range sentences {
			totalWords += len(strings.Fields(s))
		}
		avgSentenceLength = float64(totalWords) / float64(len(sentences))
	}

	return &entities.MeetingAnalytics{
		WordCount:          wordCount,
		AvgSentenceLength:  avgSentenceLength,
		QuestionCount:      strings.Count(content, "?"),
		ActionItemCount:    countMarkers(lower, actionItemMarkers),
		ObjectionCount:     countMarkers(lower, objectionMarkers),
		DecisionPointCount: countMarkers(lower, decisionMarkers),
		FollowUpScheduled:  containsAny(lower, followUpMarkers),
		AgendaFollowed:     containsAny(lower, agendaMarkers),
	}
}
