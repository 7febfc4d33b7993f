package analysis

import (
	"strings"
	"unicode/utf8"

	"github.com/MatheusBP09/sales-insight-buddy/internal/domain/entities"
)

// qualityIndicators are the structure markers a well-run meeting transcript
// tends to contain. Each found indicator adds a flat bonus regardless of how
// often it occurs, so content rich in indicators can exceed 100 before the
// final clamp.
var qualityIndicators = []string{
	"agenda",
	"objetivo",
	"pauta",
	"próximos passos",
	"action item",
	"decisão",
	"encaminhamento",
	"responsável",
	"follow up",
	"resumo",
	"alinhamento",
	"cronograma",
}

// quality score constants; kept literally as tuned in production, no
// documented derivation
const (
	qualityBase           = 50
	qualityIndicatorBonus = 8
	qualityShortPenalty   = 20
	qualityListBonus      = 10
	qualityMinLength      = 100
)

// CalculateQualityScore scores transcript structure on a 0-100 scale
func CalculateQualityScore(content string) int {
	lower := strings.ToLower(content)

	score := qualityBase
	for _, indicator := range qualityIndicators {
		if strings.Contains(lower, indicator) {
			score += qualityIndicatorBonus
		}
	}

	if utf8.RuneCountInString(content) < qualityMinLength {
		score -= qualityShortPenalty
	}

	if strings.Contains(content, "1.") || strings.Contains(content, "•") || strings.Contains(content, "-") {
		score += qualityListBonus
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// positiveWords and negativeWords are the fixed sentiment vocabularies,
// matched as case-insensitive substrings
var positiveWords = []string{
	"ótimo", "otimo", "excelente", "gostei", "perfeito", "maravilha",
	"interessante", "adorei", "legal", "concordo", "sucesso", "parabéns",
}

var negativeWords = []string{
	"problema", "ruim", "caro", "difícil", "dificil", "complicado",
	"preocupado", "atraso", "cancelar", "insatisfeito", "reclamação", "reclamacao",
}

// CalculateSentimentScore returns positive/(positive+negative) occurrence
// ratio in [0,1]; 0.5 when the content is empty or carries no sentiment words
func CalculateSentimentScore(content string) float64 {
	if content == "" {
		return 0.5
	}

	lower := strings.ToLower(content)

	positive := 0
	for _, w := range positiveWords {
		positive += strings.Count(lower, w)
	}
	negative := 0
	for _, w := range negativeWords {
		negative += strings.Count(lower, w)
	}

	total := positive + negative
	if total == 0 {
		return 0.5
	}
	return float64(positive) / float64(total)
}

// engagementVarianceDivisor maps speaking-time variance onto the 0-100 scale.
// Arbitrary but fixed scaling constant, not derived from data statistics.
const engagementVarianceDivisor = 1000.0

// CalculateEngagementScore scores how evenly speaking time is distributed.
// Without speaking-time data it falls back to a per-participant count bonus.
func CalculateEngagementScore(participants []*entities.MeetingParticipant) float64 {
	if len(participants) == 0 {
		return 0
	}

	hasSpeakingData := false
	for _, p := range participants {
		if p.SpeakingTimeSeconds > 0 {
			hasSpeakingData = true
			break
		}
	}

	if !hasSpeakingData {
		score := float64(len(participants) * 20)
		if score > 100 {
			return 100
		}
		return score
	}

	mean := 0.0
	for _, p := range participants {
		mean += float64(p.SpeakingTimeSeconds)
	}
	mean /= float64(len(participants))

	variance := 0.0
	for _, p := range participants {
		d := float64(p.SpeakingTimeSeconds) - mean
		variance += d * d
	}
	variance /= float64(len(participants))

	score := 100 - variance/engagementVarianceDivisor
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
