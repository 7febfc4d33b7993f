package analysis

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/MatheusBP09/sales-insight-buddy/errors"
	"github.com/MatheusBP09/sales-insight-buddy/internal/domain/entities"
)

// ChatCompleter sends a system plus user prompt to a language model and
// returns the raw assistant content
type ChatCompleter interface {
	ChatCompletion(ctx context.Context, system, user string) (string, error)
}

const systemPrompt = "Você é um analista de vendas especializado em reuniões comerciais. " +
	"Responda sempre e somente com um objeto JSON válido, sem texto adicional."

const userPromptTemplate = `Analise a transcrição de reunião de vendas abaixo e retorne um JSON com exatamente estes campos:
{
  "client_objections": ["objeções levantadas pelo cliente"],
  "commitments": ["compromissos assumidos"],
  "next_steps": ["próximos passos acordados"],
  "pain_points": ["dores do cliente"],
  "value_proposition": "proposta de valor apresentada",
  "interest_score": 0,
  "keywords": ["palavras-chave relevantes"],
  "sentiment": "positive, neutral ou negative",
  "opportunities": ["oportunidades identificadas"],
  "risks": ["riscos identificados"]
}

interest_score é um inteiro de 0 a 100. Transcrição:

`

// Service runs the language model analysis over transcripts
type Service struct {
	completer ChatCompleter
	logger    *zap.Logger
}

func NewService(completer ChatCompleter, logger *zap.Logger) *Service {
	return &Service{completer: completer, logger: logger}
}

// AnalyzeTranscription asks the model for a structured insight over the
// transcript. A transport or provider failure is returned as an error. A
// response that is not parseable JSON is not an error: the caller gets the
// neutral default result instead.
func (s *Service) AnalyzeTranscription(ctx context.Context, transcription string) (*entities.InsightResult, error) {
	content, err := s.completer.ChatCompletion(ctx, systemPrompt, userPromptTemplate+transcription)
	if err != nil {
		return nil, errors.ErrUpstream("chat completion", err)
	}

	result := &entities.InsightResult{}
	if err := json.Unmarshal([]byte(extractJSON(content)), result); err != nil {
		s.logger.Warn("model returned non-JSON content, using default insight",
			zap.Error(err),
			zap.Int("content_length", len(content)))
		return entities.DefaultInsightResult(), nil
	}

	result.Normalize()
	return result, nil
}

// extractJSON strips a markdown code fence around the model output, if any,
// and trims to the outermost JSON object
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx >= 0 {
			content = content[:idx]
		}
		content = strings.TrimSpace(content)
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
