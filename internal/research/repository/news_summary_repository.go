package repository

import (
	"context"
	"errors"
	"time"

	"equity-reporter/internal/entity"

	"gorm.io/gorm"
)

// NewsSummaryRepository defines the interface for interacting with news summary data.
type NewsSummaryRepository interface {
	Create(ctx context.Context, summary *entity.NewsSummary) error
	GetLast(ctx context.Context, symbol string, since time.Time) (*entity.NewsSummary, error)
}

// NewNewsSummaryRepository creates a new instance of NewsSummaryRepository.
func NewNewsSummaryRepository(db *gorm.DB) NewsSummaryRepository {
	return &newsSummaryRepository{
		db: db,
	}
}

type newsSummaryRepository struct {
	db *gorm.DB
}

// Create saves a news summary to the database.
func (r *newsSummaryRepository) Create(ctx context.Context, summary *entity.NewsSummary) error {
	return r.db.WithContext(ctx).Create(summary).Error
}

// GetLast returns the most recent summary for a symbol created after the cutoff,
// or nil when none exists yet.
func (r *newsSummaryRepository) GetLast(ctx context.Context, symbol string, since time.Time) (*entity.NewsSummary, error) {
	var summary entity.NewsSummary
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND symbol = ?", since, symbol).
		Order("created_at DESC").
		First(&summary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}
