package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MatheusBP09/sales-insight-buddy/internal/domain/repositories"
)

// unitOfWork implements repositories.UnitOfWork on top of GORM transactions
type unitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a UnitOfWork bound to the shared connection pool
func NewUnitOfWork(db *gorm.DB) repositories.UnitOfWork {
	return &unitOfWork{db: db}
}

func bindRepositories(db *gorm.DB) repositories.Repositories {
	return repositories.Repositories{
		Meetings:     NewMeetingRepository(db),
		Participants: NewParticipantRepository(db),
		Keywords:     NewKeywordRepository(db),
		Insights:     NewInsightRepository(db),
		Analytics:    NewAnalyticsRepository(db),
		Profiles:     NewProfileRepository(db),
	}
}

// Repos returns repositories bound to the shared connection pool
func (u *unitOfWork) Repos() repositories.Repositories {
	return bindRepositories(u.db)
}

// Transaction runs fn with repositories bound to one database transaction
func (u *unitOfWork) Transaction(ctx context.Context, fn func(r repositories.Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(bindRepositories(tx))
	})
}
