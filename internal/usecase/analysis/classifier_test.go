package analysis

import (
	"testing"

	"github.com/MatheusBP09/sales-insight-buddy/internal/domain/entities"
)

const homeDomain = "tutorsparticipacoes.com"

func TestClassifyMeetingType_KeywordMatch(t *testing.T) {
	tests := []struct {
		name     string
		subject  string
		content  string
		expected entities.MeetingType
	}{
		{"prospeccao from subject", "Prospecção novo cliente", "", entities.MeetingTypeProspeccao},
		{"demo from content", "Reunião", "vamos fazer uma demo da plataforma", entities.MeetingTypeDemonstracao},
		{"negociacao", "Proposta comercial renovação", "", entities.MeetingTypeNegociacao},
		{"suporte", "Chamado aberto", "", entities.MeetingTypeSuporte},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyMeetingType(tt.subject, tt.content, nil, homeDomain)
			if got != tt.expected {
				t.Fatalf("expected %s got %s", tt.expected, got)
			}
		})
	}
}

func TestClassifyMeetingType_TableOrderWins(t *testing.T) {
	// content matches both demonstracao and negociacao; demonstracao is
	// earlier in the table so it wins regardless of match count
	content := "demo do produto, depois negociação de contrato com desconto e fechamento"
	got := ClassifyMeetingType("", content, nil, homeDomain)
	if got != entities.MeetingTypeDemonstracao {
		t.Fatalf("expected demonstracao got %s", got)
	}
}

func TestClassifyMeetingType_CompanyWideFallback(t *testing.T) {
	participants := make([]*entities.MeetingParticipant, 11)
	for i := range participants {
		participants[i] = &entities.MeetingParticipant{Name: "p", Email: "p@tutorsparticipacoes.com"}
	}
	got := ClassifyMeetingType("sem palavras chave", "", participants, homeDomain)
	if got != entities.MeetingTypeCompanyWide {
		t.Fatalf("expected company_wide got %s", got)
	}
}

func TestClassifyMeetingType_VendorPartnerFallback(t *testing.T) {
	participants := []*entities.MeetingParticipant{
		{Name: "alice", Email: "alice@acme.com"},
		{Name: "bob", Email: "bob@tutorsparticipacoes.com"},
	}
	got := ClassifyMeetingType("sem palavras chave", "", participants, homeDomain)
	if got != entities.MeetingTypeVendorPartner {
		t.Fatalf("expected vendor_partner got %s", got)
	}
}

func TestClassifyMeetingType_OtherFallback(t *testing.T) {
	got := ClassifyMeetingType("sem palavras chave", "", nil, homeDomain)
	if got != entities.MeetingTypeOther {
		t.Fatalf("expected other got %s", got)
	}
}

func TestExternalParticipantCount(t *testing.T) {
	participants := []*entities.MeetingParticipant{
		{Name: "alice", Email: "alice@acme.com"},
		{Name: "bob", Email: "bob@tutorsparticipacoes.com"},
	}
	if got := ExternalParticipantCount(participants, homeDomain); got != 1 {
		t.Fatalf("expected 1 external participant got %d", got)
	}
}

func TestExternalParticipantCount_NoEmailNotCounted(t *testing.T) {
	participants := []*entities.MeetingParticipant{
		{Name: "sem email"},
	}
	if got := ExternalParticipantCount(participants, homeDomain); got != 0 {
		t.Fatalf("expected 0 got %d", got)
	}
}

func TestDetectBusinessUnit(t *testing.T) {
	tests := []struct {
		email    string
		expected entities.BusinessUnit
	}{
		{"vendas@tutorsparticipacoes.com", entities.BusinessUnitComercial},
		{"financeiro@tutorsparticipacoes.com", entities.BusinessUnitFinanceiro},
		{"tutor.maria@tutorsparticipacoes.com", entities.BusinessUnitEducacional},
		{"ops@holding.com", entities.BusinessUnitOperacoes},
		{"joao@empresa.com", entities.BusinessUnitOutros},
	}

	for _, tt := range tests {
		if got := DetectBusinessUnit(tt.email); got != tt.expected {
			t.Fatalf("%s: expected %s got %s", tt.email, tt.expected, got)
		}
	}
}
