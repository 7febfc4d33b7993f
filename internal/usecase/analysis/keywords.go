package analysis

import (
	"regexp"
	"sort"
	"strings"

	"github.com/MatheusBP09/sales-insight-buddy/internal/domain/entities"
)

// keywordCategory binds a category tag to its tracked vocabulary
type keywordCategory struct {
	Category string
	Words    []string
}

var keywordCategories = []keywordCategory{
	{"produto", []string{
		"plataforma", "funcionalidade", "integração", "integracao",
		"relatório", "relatorio", "dashboard", "aplicativo",
	}},
	{"comercial", []string{
		"proposta", "contrato", "desconto", "preço", "preco",
		"orçamento", "orcamento", "fechamento", "renovação", "renovacao",
	}},
	{"financeiro", []string{
		"pagamento", "boleto", "fatura", "mensalidade", "investimento", "custo",
	}},
	{"tecnico", []string{
		"api", "implantação", "implantacao", "migração", "migracao", "suporte", "bug",
	}},
	{"relacionamento", []string{
		"parceria", "confiança", "confianca", "indicação", "indicacao", "reunião", "reuniao",
	}},
}

const maxKeywords = 20

// ExtractKeywords counts occurrences of every tracked word per category and
// returns the non-zero entries sorted by descending frequency, truncated to
// the top 20
func ExtractKeywords(content string) []*entities.MeetingKeyword {
	lower := strings.ToLower(content)

	var keywords []*entities.MeetingKeyword
	for _, cat := range keywordCategories {
		for _, word := range cat.Words {
			freq := strings.Count(lower, word)
			if freq > 0 {
				keywords = append(keywords, &entities.MeetingKeyword{
					Keyword:   word,
					Frequency: freq,
					Category:  cat.Category,
				})
			}
		}
	}

	sort.SliceStable(keywords, func(i, j int) bool {
		return keywords[i].Frequency > keywords[j].Frequency
	})

	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}

// Trigger vocabularies for sentence-level insight extraction
var (
	ObjectionTriggers = []string{
		"caro", "preço", "preco", "não tenho certeza", "nao tenho certeza",
		"preocupa", "dúvida", "duvida", "problema", "difícil", "dificil",
	}
	CommitmentTriggers = []string{
		"vou enviar", "vamos enviar", "me comprometo", "fica combinado",
		"pode contar", "vou verificar", "vou agendar",
	}
	NextStepTriggers = []string{
		"próximo passo", "proximo passo", "próximos passos", "proximos passos",
		"agendar", "marcar", "enviar proposta", "retornar", "follow up", "follow-up",
	}
	PainPointTriggers = []string{
		"dificuldade", "desafio", "gargalo", "demora", "retrabalho", "manual",
	}
	RiskTriggers = []string{
		"risco", "concorrente", "cancelar", "atraso", "incerteza",
	}
	OpportunityTriggers = []string{
		"oportunidade", "expandir", "crescer", "upsell", "nova unidade", "aumentar", "potencial",
	}
	valueTriggers = []string{
		"valor", "benefício", "beneficio", "economia", "retorno",
		"ganho", "solução", "solucao", "resultado",
	}
)

const maxExtractedSentences = 3

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// splitSentences breaks text on sentence terminators, trimming whitespace and
// dropping empty fragments
func splitSentences(text string) []string {
	parts := sentenceSplitRe.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// ExtractListFromText returns, in original order, the first sentences that
// contain any trigger keyword, at most three
func ExtractListFromText(text string, triggers []string) []string {
	selected := []string{}
	for _, sentence := range splitSentences(text) {
		lower := strings.ToLower(sentence)
		for _, trigger := range triggers {
			if strings.Contains(lower, trigger) {
				selected = append(selected, sentence)
				break
			}
		}
		if len(selected) >= maxExtractedSentences {
			break
		}
	}
	return selected
}

// defaultValueProposition is the placeholder when no value-related sentence
// exists in the transcript
const defaultValueProposition = "Proposta de valor não identificada na transcrição."

// ExtractValueProposition returns the first sentence mentioning value-related
// vocabulary, or a fixed placeholder
func ExtractValueProposition(text string) string {
	for _, sentence := range splitSentences(text) {
		lower := strings.ToLower(sentence)
		for _, trigger := range valueTriggers {
			if strings.Contains(lower, trigger) {
				return sentence
			}
		}
	}
	return defaultValueProposition
}
