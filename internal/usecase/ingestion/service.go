package ingestion

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MatheusBP09/sales-insight-buddy/errors"
	"github.com/MatheusBP09/sales-insight-buddy/internal/domain/entities"
	"github.com/MatheusBP09/sales-insight-buddy/internal/domain/repositories"
	"github.com/MatheusBP09/sales-insight-buddy/internal/usecase/analysis"
)

// Locker serializes concurrent ingests of the same external meeting id
type Locker interface {
	// Acquire takes the lock for key, returning false when it is already held
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// PayloadArchiver stores raw webhook bodies for replay and debugging
type PayloadArchiver interface {
	Archive(ctx context.Context, externalMeetingID string, payload []byte) error
}

// Analyzer produces a structured insight from a transcription
type Analyzer interface {
	AnalyzeTranscription(ctx context.Context, transcription string) (*entities.InsightResult, error)
}

// Service orchestrates the full ingestion pipeline: normalization, heuristic
// analysis and the persistence sequence
type Service struct {
	uow        repositories.UnitOfWork
	locker     Locker
	archiver   PayloadArchiver
	analyzer   Analyzer
	homeDomain string
	lockTTL    time.Duration
	logger     *zap.Logger
}

func NewService(
	uow repositories.UnitOfWork,
	locker Locker,
	archiver PayloadArchiver,
	analyzer Analyzer,
	homeDomain string,
	lockTTL time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		uow:        uow,
		locker:     locker,
		archiver:   archiver,
		analyzer:   analyzer,
		homeDomain: homeDomain,
		lockTTL:    lockTTL,
		logger:     logger,
	}
}

// Result summarizes one processed ingestion for the webhook response body
type Result struct {
	MeetingID         uuid.UUID              `json:"meeting_id"`
	ExternalMeetingID string                 `json:"external_meeting_id"`
	MeetingType       entities.MeetingType   `json:"meeting_type"`
	BusinessUnit      entities.BusinessUnit  `json:"business_unit"`
	Status            entities.MeetingStatus `json:"status"`
	QualityScore      int                    `json:"quality_score"`
	SentimentScore    float64                `json:"sentiment_score"`
	EngagementScore   float64                `json:"engagement_score"`
	ParticipantCount  int                    `json:"participant_count"`
	KeywordCount      int                    `json:"keyword_count"`
	InterestScore     int                    `json:"interest_score"`
	Sentiment         string                 `json:"sentiment"`
}

// ProcessWebhook runs the full pipeline for the platform webhook. The
// organizer is resolved against existing profiles and created when absent.
func (s *Service) ProcessWebhook(ctx context.Context, raw json.RawMessage) (*Result, error) {
	return s.ingest(ctx, raw, false)
}

// IngestDirect is the alternate ingestion path. Unknown organizers get a
// freshly generated temporary profile instead of an account lookup.
func (s *Service) IngestDirect(ctx context.Context, raw json.RawMessage) (*Result, error) {
	return s.ingest(ctx, raw, true)
}

func (s *Service) ingest(ctx context.Context, raw json.RawMessage, temporary bool) (*Result, error) {
	data, err := Normalize(raw)
	if err != nil {
		return nil, err
	}

	// Raw payloads are logged in full for incident replay, transcript included
	s.logger.Info("ingesting meeting payload",
		zap.String("external_meeting_id", data.ExternalMeetingID),
		zap.String("organizer_email", data.OrganizerEmail),
		zap.Int("participant_count", len(data.Participants)),
		zap.ByteString("payload", raw))

	lockKey := "ingest:" + data.ExternalMeetingID
	acquired, err := s.locker.Acquire(ctx, lockKey, s.lockTTL)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}
	if !acquired {
		return nil, errors.ErrIngestInProgress(data.ExternalMeetingID)
	}
	defer func() {
		if err := s.locker.Release(context.WithoutCancel(ctx), lockKey); err != nil {
			s.logger.Warn("failed to release ingest lock", zap.String("key", lockKey), zap.Error(err))
		}
	}()

	if s.archiver != nil {
		if err := s.archiver.Archive(ctx, data.ExternalMeetingID, raw); err != nil {
			s.logger.Warn("payload archive failed",
				zap.String("external_meeting_id", data.ExternalMeetingID),
				zap.Error(err))
		}
	}

	ApplySpeakingTimes(data.Participants, SpeakingTimeBySpeaker(data.Segments))

	meeting, participants, keywords, insight, analytics := s.buildAggregate(data)

	err = s.uow.Transaction(ctx, func(r repositories.Repositories) error {
		profile, err := s.resolveProfile(ctx, r, data, temporary)
		if err != nil {
			return err
		}
		if profile != nil {
			meeting.ProfileID = &profile.ID
		}

		if err := r.Meetings.Upsert(ctx, meeting); err != nil {
			return errors.ErrPersistence("meeting upsert", err)
		}

		for i := range participants {
			participants[i].MeetingID = meeting.ID
		}
		if err := r.Participants.ReplaceForMeeting(ctx, meeting.ID, participants); err != nil {
			s.logger.Warn("participant replace failed",
				zap.String("meeting_id", meeting.ID.String()), zap.Error(err))
		}

		for i := range keywords {
			keywords[i].MeetingID = meeting.ID
		}
		if err := r.Keywords.ReplaceForMeeting(ctx, meeting.ID, keywords); err != nil {
			s.logger.Warn("keyword replace failed",
				zap.String("meeting_id", meeting.ID.String()), zap.Error(err))
		}

		insightRow := entities.NewMeetingInsight(meeting.ID, insight)
		if err := r.Insights.Upsert(ctx, insightRow); err != nil {
			return errors.ErrPersistence("insight upsert", err)
		}

		analytics.MeetingID = meeting.ID
		if err := r.Analytics.Upsert(ctx, analytics); err != nil {
			s.logger.Warn("analytics upsert failed",
				zap.String("meeting_id", meeting.ID.String()), zap.Error(err))
		}

		if err := r.Meetings.UpdateStatus(ctx, meeting.ID, entities.MeetingStatusCompleted); err != nil {
			return errors.ErrPersistence("status update", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("meeting ingested",
		zap.String("meeting_id", meeting.ID.String()),
		zap.String("external_meeting_id", meeting.ExternalMeetingID),
		zap.String("meeting_type", string(meeting.MeetingType)),
		zap.Int("quality_score", meeting.QualityScore))

	return &Result{
		MeetingID:         meeting.ID,
		ExternalMeetingID: meeting.ExternalMeetingID,
		MeetingType:       meeting.MeetingType,
		BusinessUnit:      meeting.BusinessUnit,
		Status:            entities.MeetingStatusCompleted,
		QualityScore:      meeting.QualityScore,
		SentimentScore:    meeting.SentimentScore,
		EngagementScore:   meeting.EngagementScore,
		ParticipantCount:  len(participants),
		KeywordCount:      len(keywords),
		InterestScore:     insight.InterestScore,
		Sentiment:         insight.Sentiment,
	}, nil
}

// buildAggregate derives every persisted row from the canonical payload using
// the heuristic analyzers
func (s *Service) buildAggregate(data *MeetingData) (
	*entities.Meeting,
	[]*entities.MeetingParticipant,
	[]*entities.MeetingKeyword,
	*entities.InsightResult,
	*entities.MeetingAnalytics,
) {
	participants := make([]*entities.MeetingParticipant, 0, len(data.Participants))
	for _, p := range data.Participants {
		participants = append(participants, &entities.MeetingParticipant{
			ID:                  uuid.New(),
			Name:                p.Name,
			Email:               p.Email,
			Company:             p.Company,
			Role:                p.Role,
			SpeakingTimeSeconds: int(math.Round(p.SpeakingTimeSeconds)),
		})
	}

	content := data.BestTranscript()

	meeting := entities.NewMeeting(data.ExternalMeetingID)
	meeting.Title = data.Subject
	meeting.StartTime = data.StartTime
	meeting.EndTime = data.EndTime
	meeting.OrganizerEmail = data.OrganizerEmail
	meeting.OrganizerName = data.OrganizerName
	meeting.Transcript = data.Transcript
	meeting.CorrectedTranscript = data.CorrectedTranscript
	meeting.MeetingType = analysis.ClassifyMeetingType(data.Subject, content, participants, s.homeDomain)
	meeting.BusinessUnit = analysis.DetectBusinessUnit(data.OrganizerEmail)
	meeting.QualityScore = analysis.CalculateQualityScore(content)
	meeting.SentimentScore = analysis.CalculateSentimentScore(content)
	meeting.EngagementScore = analysis.CalculateEngagementScore(participants)
	meeting.Status = entities.MeetingStatusProcessing
	if data.StartTime != nil && data.EndTime != nil && data.EndTime.After(*data.StartTime) {
		meeting.DurationMinutes = int(data.EndTime.Sub(*data.StartTime).Minutes())
	}

	keywords := analysis.ExtractKeywords(content)
	analytics := analysis.BuildAnalytics(content)
	analytics.ID = uuid.New()
	meeting.WordCount = analytics.WordCount

	insight := analysis.HeuristicInsight(content)

	return meeting, participants, keywords, insight, analytics
}

func (s *Service) resolveProfile(
	ctx context.Context,
	r repositories.Repositories,
	data *MeetingData,
	temporary bool,
) (*entities.Profile, error) {
	profile, err := r.Profiles.FindByEmail(ctx, data.OrganizerEmail)
	if err != nil {
		return nil, errors.ErrPersistence("profile lookup", err)
	}
	if profile != nil {
		return profile, nil
	}

	if temporary {
		profile = entities.NewTemporaryProfile(data.OrganizerEmail)
	} else {
		profile = entities.NewProfile(data.OrganizerEmail, data.OrganizerName)
	}
	if err := r.Profiles.Create(ctx, profile); err != nil {
		return nil, errors.ErrPersistence("profile create", err)
	}

	s.logger.Info("organizer profile created",
		zap.String("email", profile.Email),
		zap.Bool("temporary", profile.Temporary))
	return profile, nil
}

// AnalyzeMeeting runs the language model analysis over an existing meeting and
// upserts its insight row. The transcription argument overrides the stored
// transcript when present.
func (s *Service) AnalyzeMeeting(ctx context.Context, externalMeetingID, transcription string) (*Result, error) {
	repos := s.uow.Repos()

	meeting, err := repos.Meetings.FindByExternalID(ctx, externalMeetingID)
	if err != nil {
		return nil, errors.ErrPersistence("meeting lookup", err)
	}
	if meeting == nil {
		return nil, errors.ErrMeetingNotFound(externalMeetingID)
	}

	if transcription == "" {
		transcription = meeting.BestTranscript()
	}
	if transcription == "" {
		return nil, errors.ErrValidation("meeting has no transcription to analyze").
			WithDetail("external_meeting_id", externalMeetingID)
	}

	result, err := s.analyzer.AnalyzeTranscription(ctx, transcription)
	if err != nil {
		return nil, err
	}

	err = s.uow.Transaction(ctx, func(r repositories.Repositories) error {
		insightRow := entities.NewMeetingInsight(meeting.ID, result)
		if err := r.Insights.Upsert(ctx, insightRow); err != nil {
			return errors.ErrPersistence("insight upsert", err)
		}
		if err := r.Meetings.UpdateStatus(ctx, meeting.ID, entities.MeetingStatusCompleted); err != nil {
			return errors.ErrPersistence("status update", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("meeting analyzed",
		zap.String("meeting_id", meeting.ID.String()),
		zap.String("sentiment", result.Sentiment),
		zap.Int("interest_score", result.InterestScore))

	return &Result{
		MeetingID:         meeting.ID,
		ExternalMeetingID: meeting.ExternalMeetingID,
		MeetingType:       meeting.MeetingType,
		BusinessUnit:      meeting.BusinessUnit,
		Status:            entities.MeetingStatusCompleted,
		QualityScore:      meeting.QualityScore,
		SentimentScore:    meeting.SentimentScore,
		EngagementScore:   meeting.EngagementScore,
		InterestScore:     result.InterestScore,
		Sentiment:         result.Sentiment,
	}, nil
}
