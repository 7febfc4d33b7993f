package analysis

import (
	"math"

	"github.com/MatheusBP09/sales-insight-buddy/internal/domain/entities"
)

const (
	positiveSentimentThreshold = 0.6
	negativeSentimentThreshold = 0.4
)

func sentimentLabel(score float64) string {
	switch {
	case score > positiveSentimentThreshold:
		return "positive"
	case score < negativeSentimentThreshold:
		return "negative"
	default:
		return "neutral"
	}
}

// HeuristicInsight produces a full insight result from the transcript alone,
// without calling the language model. It is the fallback analysis path and
// also feeds the keyword table.
func HeuristicInsight(content string) *entities.InsightResult {
	sentiment := CalculateSentimentScore(content)

	keywords := []string{}
	for _, kw := range ExtractKeywords(content) {
		keywords = append(keywords, kw.Keyword)
	}

	result := &entities.InsightResult{
		ClientObjections: ExtractListFromText(content, ObjectionTriggers),
		Commitments:      ExtractListFromText(content, CommitmentTriggers),
		NextSteps:        ExtractListFromText(content, NextStepTriggers),
		PainPoints:       ExtractListFromText(content, PainPointTriggers),
		ValueProposition: ExtractValueProposition(content),
		InterestScore:    int(math.Round(sentiment * 100)),
		Keywords:         keywords,
		Sentiment:        sentimentLabel(sentiment),
		Opportunities:    ExtractListFromText(content, OpportunityTriggers),
		Risks:            ExtractListFromText(content, RiskTriggers),
	}
	result.Normalize()
	return result
}
