package analysis

import (
	"strings"

	"github.com/MatheusBP09/sales-insight-buddy/internal/domain/entities"
)

// meetingTypeRule binds a meeting type to its trigger keywords. Table order is
// significant: the first type with any keyword match wins, regardless of how
// many keywords later types would match.
type meetingTypeRule struct {
	Type     entities.MeetingType
	Keywords []string
}

var meetingTypeTable = []meetingTypeRule{
	{entities.MeetingTypeProspeccao, []string{
		"prospecção", "prospeccao", "primeira conversa", "apresentação inicial", "cold call",
	}},
	{entities.MeetingTypeDemonstracao, []string{
		"demonstração", "demonstracao", "demo", "apresentação do produto",
	}},
	{entities.MeetingTypeNegociacao, []string{
		"negociação", "negociacao", "proposta comercial", "contrato", "desconto", "fechamento",
	}},
	{entities.MeetingTypeFollowUp, []string{
		"follow up", "follow-up", "acompanhamento", "retorno da conversa",
	}},
	{entities.MeetingTypeOnboarding, []string{
		"onboarding", "implantação", "implantacao", "treinamento inicial",
	}},
	{entities.MeetingTypeSuporte, []string{
		"suporte", "chamado", "problema técnico", "problema tecnico",
	}},
	{entities.MeetingTypeInterna, []string{
		"alinhamento interno", "reunião interna", "reuniao interna", "daily", "sprint",
	}},
}

// companyWideThreshold is the participant count above which a meeting with no
// keyword match is classified company_wide
const companyWideThreshold = 10

// ClassifyMeetingType scans the fixed ordered type table for a case-insensitive
// substring match in subject or content. Without a keyword match it falls back
// to participant heuristics: large meetings are company_wide, meetings with any
// participant outside the home org domain are vendor_partner, else other.
func ClassifyMeetingType(subject, content string, participants []*entities.MeetingParticipant, homeDomain string) entities.MeetingType {
	haystack := strings.ToLower(subject) + " " + strings.ToLower(content)

	for _, rule := range meetingTypeTable {
		for _, kw := range rule.Keywords {
			if strings.Contains(haystack, kw) {
				return rule.Type
			}
		}
	}

	if len(participants) > companyWideThreshold {
		return entities.MeetingTypeCompanyWide
	}
	if ExternalParticipantCount(participants, homeDomain) > 0 {
		return entities.MeetingTypeVendorPartner
	}
	return entities.MeetingTypeOther
}

// ExternalParticipantCount counts participants whose email domain differs from
// the home organization domain. Participants without an email are not counted.
func ExternalParticipantCount(participants []*entities.MeetingParticipant, homeDomain string) int {
	count := 0
	for _, p := range participants {
		if p.IsExternal(homeDomain) {
			count++
		}
	}
	return count
}

// businessUnitRule binds a business unit to email substring patterns
type businessUnitRule struct {
	Unit     entities.BusinessUnit
	Patterns []string
}

var businessUnitTable = []businessUnitRule{
	{entities.BusinessUnitComercial, []string{"comercial", "vendas", "sales"}},
	{entities.BusinessUnitFinanceiro, []string{"financeiro", "finance", "fin."}},
	{entities.BusinessUnitEducacional, []string{"educacional", "educacao", "tutor", "ensino"}},
	{entities.BusinessUnitOperacoes, []string{"operacoes", "ops", "operacional"}},
}

// DetectBusinessUnit infers the organizational unit from the email's lowercase
// form; first matching pattern wins, default is outros
func DetectBusinessUnit(email string) entities.BusinessUnit {
	lower := strings.ToLower(email)
	for _, rule := range businessUnitTable {
		for _, pattern := range rule.Patterns {
			if strings.Contains(lower, pattern) {
				return rule.Unit
			}
		}
	}
	return entities.BusinessUnitOutros
}
