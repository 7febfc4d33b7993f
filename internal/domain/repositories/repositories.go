package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/MatheusBP09/sales-insight-buddy/internal/domain/entities"
)

// MeetingFilters narrows meeting listings for the read API
type MeetingFilters struct {
	Status       *entities.MeetingStatus
	MeetingType  *entities.MeetingType
	BusinessUnit *entities.BusinessUnit
	Limit        int
	Offset       int
}

// MeetingRepository persists meeting aggregate roots
type MeetingRepository interface {
	// Upsert inserts the meeting or, on external_meeting_id conflict, updates
	// the existing row in place. The passed entity is reloaded so its ID
	// reflects the canonical stored row.
	Upsert(ctx context.Context, meeting *entities.Meeting) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)
	FindByExternalID(ctx context.Context, externalID string) (*entities.Meeting, error)
	List(ctx context.Context, filters MeetingFilters) ([]*entities.Meeting, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.MeetingStatus) error
}

// ParticipantRepository persists meeting participants
type ParticipantRepository interface {
	// ReplaceForMeeting deletes all existing participant rows for the meeting
	// and inserts the new set
	ReplaceForMeeting(ctx context.Context, meetingID uuid.UUID, participants []*entities.MeetingParticipant) error
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.MeetingParticipant, error)
}

// KeywordRepository persists meeting keywords
type KeywordRepository interface {
	ReplaceForMeeting(ctx context.Context, meetingID uuid.UUID, keywords []*entities.MeetingKeyword) error
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.MeetingKeyword, error)
}

// InsightRepository persists the one-to-one meeting insight row
type InsightRepository interface {
	Upsert(ctx context.Context, insight *entities.MeetingInsight) error
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.MeetingInsight, error)
}

// AnalyticsRepository persists the one-to-one meeting analytics row
type AnalyticsRepository interface {
	Upsert(ctx context.Context, analytics *entities.MeetingAnalytics) error
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.MeetingAnalytics, error)
}

// ProfileRepository persists organizer profiles
type ProfileRepository interface {
	FindByEmail(ctx context.Context, email string) (*entities.Profile, error)
	Create(ctx context.Context, profile *entities.Profile) error
}

// Repositories bundles every repository bound to one database handle
// (either the shared pool or a single transaction)
type Repositories struct {
	Meetings     MeetingRepository
	Participants ParticipantRepository
	Keywords     KeywordRepository
	Insights     InsightRepository
	Analytics    AnalyticsRepository
	Profiles     ProfileRepository
}

// UnitOfWork scopes multi-step persistence. The ingestion pipeline runs its
// whole upsert sequence inside one transaction so a crash cannot leave a
// meeting with partially replaced children.
type UnitOfWork interface {
	// Repos returns repositories bound to the shared connection pool
	Repos() Repositories
	// Transaction runs fn with repositories bound to a single transaction,
	// committing on nil and rolling back on error
	Transaction(ctx context.Context, fn func(r Repositories) error) error
}
