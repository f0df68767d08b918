package repository

import (
	"context"
	"strings"

	"equity-reporter/internal/entity"

	"gorm.io/gorm"
)

// WatchlistRepository defines the interface for watchlist entry data operations.
type WatchlistRepository interface {
	Create(ctx context.Context, entry *entity.WatchlistEntry) error
	FindByID(ctx context.Context, id uint) (*entity.WatchlistEntry, error)
	FindAll(ctx context.Context) ([]entity.WatchlistEntry, error)
	Update(ctx context.Context, entry *entity.WatchlistEntry) error
	Delete(ctx context.Context, id uint) error
}

// NewWatchlistRepository creates a new GORM-based watchlist repository.
func NewWatchlistRepository(db *gorm.DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

type watchlistRepository struct {
	db *gorm.DB
}

// Create adds a new watchlist entry. Symbols are stored upper-cased.
func (r *watchlistRepository) Create(ctx context.Context, entry *entity.WatchlistEntry) error {
	entry.Symbol = strings.ToUpper(entry.Symbol)
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByID retrieves a watchlist entry by its ID.
func (r *watchlistRepository) FindByID(ctx context.Context, id uint) (*entity.WatchlistEntry, error) {
	var entry entity.WatchlistEntry
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindAll retrieves all watchlist entries ordered by when they were added.
func (r *watchlistRepository) FindAll(ctx context.Context) ([]entity.WatchlistEntry, error) {
	var entries []entity.WatchlistEntry
	if err := r.db.WithContext(ctx).Order("added_date asc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Update updates a watchlist entry.
func (r *watchlistRepository) Update(ctx context.Context, entry *entity.WatchlistEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// Delete removes a watchlist entry by its ID.
func (r *watchlistRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.WatchlistEntry{}, id).Error
}
