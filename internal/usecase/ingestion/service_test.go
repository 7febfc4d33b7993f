package ingestion

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MatheusBP09/sales-insight-buddy/errors"
	"github.com/MatheusBP09/sales-insight-buddy/internal/domain/entities"
	"github.com/MatheusBP09/sales-insight-buddy/internal/domain/repositories"
)

// fakeStore is a single in-memory backing shared by all fake repositories
type fakeStore struct {
	meetings     map[string]*entities.Meeting
	participants map[uuid.UUID][]*entities.MeetingParticipant
	keywords     map[uuid.UUID][]*entities.MeetingKeyword
	insights     map[uuid.UUID]*entities.MeetingInsight
	analytics    map[uuid.UUID]*entities.MeetingAnalytics
	profiles     map[string]*entities.Profile
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		meetings:     make(map[string]*entities.Meeting),
		participants: make(map[uuid.UUID][]*entities.MeetingParticipant),
		keywords:     make(map[uuid.UUID][]*entities.MeetingKeyword),
		insights:     make(map[uuid.UUID]*entities.MeetingInsight),
		analytics:    make(map[uuid.UUID]*entities.MeetingAnalytics),
		profiles:     make(map[string]*entities.Profile),
	}
}

type fakeMeetingRepo struct{ s *fakeStore }

func (r *fakeMeetingRepo) Upsert(_ context.Context, m *entities.Meeting) error {
	if existing, ok := r.s.meetings[m.ExternalMeetingID]; ok {
		m.ID = existing.ID
	}
	r.s.meetings[m.ExternalMeetingID] = m
	return nil
}

func (r *fakeMeetingRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Meeting, error) {
	for _, m := range r.s.meetings {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMeetingRepo) FindByExternalID(_ context.Context, externalID string) (*entities.Meeting, error) {
	return r.s.meetings[externalID], nil
}

func (r *fakeMeetingRepo) List(_ context.Context, _ repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	var out []*entities.Meeting
	for _, m := range r.s.meetings {
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

func (r *fakeMeetingRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entities.MeetingStatus) error {
	for _, m := range r.s.meetings {
		if m.ID == id {
			m.Status = status
			return nil
		}
	}
	return nil
}

type fakeParticipantRepo struct{ s *fakeStore }

func (r *fakeParticipantRepo) ReplaceForMeeting(_ context.Context, meetingID uuid.UUID, participants []*entities.MeetingParticipant) error {
	r.s.participants[meetingID] = participants
	return nil
}

func (r *fakeParticipantRepo) FindByMeetingID(_ context.Context, meetingID uuid.UUID) ([]*entities.MeetingParticipant, error) {
	return r.s.participants[meetingID], nil
}

type fakeKeywordRepo struct{ s *fakeStore }

func (r *fakeKeywordRepo) ReplaceForMeeting(_ context.Context, meetingID uuid.UUID, keywords []*entities.MeetingKeyword) error {
	r.s.keywords[meetingID] = keywords
	return nil
}

func (r *fakeKeywordRepo) FindByMeetingID(_ context.Context, meetingID uuid.UUID) ([]*entities.MeetingKeyword, error) {
	return r.s.keywords[meetingID], nil
}

type fakeInsightRepo struct{ s *fakeStore }

func (r *fakeInsightRepo) Upsert(_ context.Context, insight *entities.MeetingInsight) error {
	r.s.insights[insight.MeetingID] = insight
	return nil
}

func (r *fakeInsightRepo) FindByMeetingID(_ context.Context, meetingID uuid.UUID) (*entities.MeetingInsight, error) {
	return r.s.insights[meetingID], nil
}

type fakeAnalyticsRepo struct{ s *fakeStore }

func (r *fakeAnalyticsRepo) Upsert(_ context.Context, analytics *entities.MeetingAnalytics) error {
	r.s.analytics[analytics.MeetingID] = analytics
	return nil
}

func (r *fakeAnalyticsRepo) FindByMeetingID(_ context.Context, meetingID uuid.UUID) (*entities.MeetingAnalytics, error) {
	return r.s.analytics[meetingID], nil
}

type fakeProfileRepo struct{ s *fakeStore }

func (r *fakeProfileRepo) FindByEmail(_ context.Context, email string) (*entities.Profile, error) {
	return r.s.profiles[email], nil
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *entities.Profile) error {
	r.s.profiles[profile.Email] = profile
	return nil
}

type fakeUnitOfWork struct{ s *fakeStore }

func (u *fakeUnitOfWork) Repos() repositories.Repositories {
	return repositories.Repositories{
		Meetings:     &fakeMeetingRepo{u.s},
		Participants: &fakeParticipantRepo{u.s},
		Keywords:     &fakeKeywordRepo{u.s},
		Insights:     &fakeInsightRepo{u.s},
		Analytics:    &fakeAnalyticsRepo{u.s},
		Profiles:     &fakeProfileRepo{u.s},
	}
}

func (u *fakeUnitOfWork) Transaction(_ context.Context, fn func(r repositories.Repositories) error) error {
	return fn(u.Repos())
}

type alwaysFreeLocker struct{}

func (alwaysFreeLocker) Acquire(context.Context, string, time.Duration) (bool, error) {
	return true, nil
}
func (alwaysFreeLocker) Release(context.Context, string) error { return nil }

type heldLocker struct{}

func (heldLocker) Acquire(context.Context, string, time.Duration) (bool, error) {
	return false, nil
}
func (heldLocker) Release(context.Context, string) error { return nil }

type fakeAnalyzer struct {
	result *entities.InsightResult
	err    error
}

func (f *fakeAnalyzer) AnalyzeTranscription(context.Context, string) (*entities.InsightResult, error) {
	return f.result, f.err
}

func newTestService(store *fakeStore, locker Locker, analyzer Analyzer) *Service {
	return NewService(
		&fakeUnitOfWork{store},
		locker,
		nil,
		analyzer,
		"tutorsparticipacoes.com",
		time.Minute,
		zap.NewNop(),
	)
}

const basePayload = `{
	"meeting_id": "ext-100",
	"subject": "Demonstração da plataforma",
	"organizer_email": "ana@tutorsparticipacoes.com",
	"transcription": "Apresentamos a plataforma. Vamos definir os próximos passos e enviar proposta.",
	"participants": ["ana@tutorsparticipacoes.com", "cliente@acme.com"]
}`

func TestProcessWebhook_FullPipeline(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, alwaysFreeLocker{}, nil)

	result, err := svc.ProcessWebhook(context.Background(), json.RawMessage(basePayload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	meeting := store.meetings["ext-100"]
	if meeting == nil {
		t.Fatal("meeting not stored")
	}
	if meeting.Status != entities.MeetingStatusCompleted {
		t.Fatalf("expected completed status got %s", meeting.Status)
	}
	if meeting.MeetingType != entities.MeetingTypeDemonstracao {
		t.Fatalf("expected demonstracao got %s", meeting.MeetingType)
	}
	if len(store.participants[meeting.ID]) != 2 {
		t.Fatalf("expected 2 participants got %d", len(store.participants[meeting.ID]))
	}
	if store.insights[meeting.ID] == nil {
		t.Fatal("insight row not stored")
	}
	if store.analytics[meeting.ID] == nil {
		t.Fatal("analytics row not stored")
	}
	if store.profiles["ana@tutorsparticipacoes.com"] == nil {
		t.Fatal("organizer profile not created")
	}
	if store.profiles["ana@tutorsparticipacoes.com"].Temporary {
		t.Fatal("webhook path must not create temporary profiles")
	}
	if result.ParticipantCount != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestProcessWebhook_ReingestReplacesParticipants(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, alwaysFreeLocker{}, nil)

	if _, err := svc.ProcessWebhook(context.Background(), json.RawMessage(basePayload)); err != nil {
		t.Fatalf("first ingest failed: %v", err)
	}
	firstID := store.meetings["ext-100"].ID

	second := `{
		"meeting_id": "ext-100",
		"organizer_email": "ana@tutorsparticipacoes.com",
		"transcription": "Nova conversa.",
		"participants": ["novo@acme.com"]
	}`
	if _, err := svc.ProcessWebhook(context.Background(), json.RawMessage(second)); err != nil {
		t.Fatalf("second ingest failed: %v", err)
	}

	meeting := store.meetings["ext-100"]
	if meeting.ID != firstID {
		t.Fatal("re-ingesting must not change the meeting id")
	}
	got := store.participants[meeting.ID]
	if len(got) != 1 || got[0].Email != "novo@acme.com" {
		t.Fatalf("participants must be fully replaced, got %+v", got)
	}
}

func TestIngest_LockHeld(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, heldLocker{}, nil)

	_, err := svc.ProcessWebhook(context.Background(), json.RawMessage(basePayload))
	if err == nil {
		t.Fatal("expected conflict error")
	}
	var appErr errors.AppError
	if !stdErrors.As(err, &appErr) || appErr.Code != errors.ErrorCode_CONFLICT {
		t.Fatalf("expected conflict got %v", err)
	}
	if len(store.meetings) != 0 {
		t.Fatal("nothing must be stored while the lock is held")
	}
}

func TestIngestDirect_CreatesTemporaryProfile(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, alwaysFreeLocker{}, nil)

	if _, err := svc.IngestDirect(context.Background(), json.RawMessage(basePayload)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	profile := store.profiles["ana@tutorsparticipacoes.com"]
	if profile == nil || !profile.Temporary {
		t.Fatalf("expected temporary profile, got %+v", profile)
	}
}

func TestIngest_ExistingProfileReused(t *testing.T) {
	store := newFakeStore()
	existing := entities.NewProfile("ana@tutorsparticipacoes.com", "Ana")
	store.profiles[existing.Email] = existing

	svc := newTestService(store, alwaysFreeLocker{}, nil)
	if _, err := svc.ProcessWebhook(context.Background(), json.RawMessage(basePayload)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	meeting := store.meetings["ext-100"]
	if meeting.ProfileID == nil || *meeting.ProfileID != existing.ID {
		t.Fatal("meeting must link to the existing profile")
	}
}

func TestAnalyzeMeeting_NotFound(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, alwaysFreeLocker{}, &fakeAnalyzer{})

	_, err := svc.AnalyzeMeeting(context.Background(), "missing", "texto")
	if err == nil {
		t.Fatal("expected not found error")
	}
	var appErr errors.AppError
	if !stdErrors.As(err, &appErr) || appErr.Code != errors.ErrorCode_NOT_FOUND {
		t.Fatalf("expected not found got %v", err)
	}
}

func TestAnalyzeMeeting_UpsertsInsightAndCompletes(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, alwaysFreeLocker{}, nil)
	if _, err := svc.ProcessWebhook(context.Background(), json.RawMessage(basePayload)); err != nil {
		t.Fatalf("ingest failed: %v", err)
	}

	analyzed := entities.DefaultInsightResult()
	analyzed.InterestScore = 90
	analyzed.Sentiment = entities.SentimentPositive
	svc.analyzer = &fakeAnalyzer{result: analyzed}

	result, err := svc.AnalyzeMeeting(context.Background(), "ext-100", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.InterestScore != 90 || result.Sentiment != "positive" {
		t.Fatalf("unexpected result %+v", result)
	}

	meeting := store.meetings["ext-100"]
	insight := store.insights[meeting.ID]
	if insight == nil || insight.InterestScore != 90 {
		t.Fatalf("insight not upserted, got %+v", insight)
	}
	if meeting.Status != entities.MeetingStatusCompleted {
		t.Fatalf("expected completed status got %s", meeting.Status)
	}
}

func TestAnalyzeMeeting_AnalyzerFailureLeavesStatus(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, alwaysFreeLocker{}, nil)
	if _, err := svc.ProcessWebhook(context.Background(), json.RawMessage(basePayload)); err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	store.meetings["ext-100"].Status = entities.MeetingStatusProcessing

	svc.analyzer = &fakeAnalyzer{err: errors.ErrUpstream("chat completion", stdErrors.New("boom"))}

	if _, err := svc.AnalyzeMeeting(context.Background(), "ext-100", ""); err == nil {
		t.Fatal("expected analyzer error to propagate")
	}
	if store.meetings["ext-100"].Status != entities.MeetingStatusProcessing {
		t.Fatal("failed analysis must not advance the meeting status")
	}
}
