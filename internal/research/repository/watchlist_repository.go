package repository

import (
	"context"
	"fmt"
	"strings"

	"equity-reporter/internal/entity"
	"equity-reporter/internal/research/dto"

	"gorm.io/gorm"
)

// WatchlistRepository defines the interface for interacting with watchlist data.
type WatchlistRepository interface {
	Get(ctx context.Context, param dto.GetWatchlistParam) ([]entity.WatchlistEntry, error)
	Create(ctx context.Context, watchlistEntry *entity.WatchlistEntry) error
	Update(ctx context.Context, watchlistEntry *entity.WatchlistEntry) error
	Delete(ctx context.Context, id uint) error
}

// NewWatchlistRepository creates a new instance of WatchlistRepository.
func NewWatchlistRepository(db *gorm.DB) WatchlistRepository {
	return &watchlistRepository{
		db: db,
	}
}

type watchlistRepository struct {
	db *gorm.DB
}

// Get returns watchlist entries matching the filter. At least one filter
// field must be set.
func (r *watchlistRepository) Get(ctx context.Context, param dto.GetWatchlistParam) ([]entity.WatchlistEntry, error) {
	var (
		entries      []entity.WatchlistEntry
		qFilter      []string
		qFilterParam []interface{}
	)

	if len(param.IDs) > 0 {
		qFilter = append(qFilter, "id IN (?)")
		qFilterParam = append(qFilterParam, param.IDs)
	}

	if len(param.Symbols) > 0 {
		qFilter = append(qFilter, "symbol IN (?)")
		qFilterParam = append(qFilterParam, param.Symbols)
	}

	if param.IsActive != nil {
		qFilter = append(qFilter, "is_active = ?")
		qFilterParam = append(qFilterParam, *param.IsActive)
	}

	if param.Triggered != nil {
		qFilter = append(qFilter, "is_alert_triggered = ?")
		qFilterParam = append(qFilterParam, *param.Triggered)
	}

	if len(qFilter) == 0 {
		return nil, fmt.Errorf("no filter provided")
	}

	err := r.db.WithContext(ctx).
		Where(strings.Join(qFilter, " AND "), qFilterParam...).
		Order("added_date ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// Create saves a watchlist entry to the database.
func (r *watchlistRepository) Create(ctx context.Context, watchlistEntry *entity.WatchlistEntry) error {
	return r.db.WithContext(ctx).Create(watchlistEntry).Error
}

// Update saves changes to an existing watchlist entry.
func (r *watchlistRepository) Update(ctx context.Context, watchlistEntry *entity.WatchlistEntry) error {
	return r.db.WithContext(ctx).Save(watchlistEntry).Error
}

// Delete removes a watchlist entry by ID.
func (r *watchlistRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.WatchlistEntry{}, id).Error
}
