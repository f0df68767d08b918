package repository

import (
	"context"
	"errors"

	"equity-reporter/internal/entity"

	"gorm.io/gorm"
)

// ScoreSnapshotRepository defines the interface for interacting with score snapshot data.
type ScoreSnapshotRepository interface {
	Create(ctx context.Context, snapshot *entity.ScoreSnapshot) error
	GetLatest(ctx context.Context, symbol string) (*entity.ScoreSnapshot, error)
}

// NewScoreSnapshotRepository creates a new instance of ScoreSnapshotRepository.
func NewScoreSnapshotRepository(db *gorm.DB) ScoreSnapshotRepository {
	return &scoreSnapshotRepository{
		db: db,
	}
}

type scoreSnapshotRepository struct {
	db *gorm.DB
}

// Create saves a score snapshot to the database.
func (r *scoreSnapshotRepository) Create(ctx context.Context, snapshot *entity.ScoreSnapshot) error {
	return r.db.WithContext(ctx).Create(snapshot).Error
}

// GetLatest returns the most recent snapshot for a symbol, or nil when the
// symbol has never been scored.
func (r *scoreSnapshotRepository) GetLatest(ctx context.Context, symbol string) (*entity.ScoreSnapshot, error) {
	var snapshot entity.ScoreSnapshot
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("created_at DESC").
		First(&snapshot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &snapshot, nil
}
