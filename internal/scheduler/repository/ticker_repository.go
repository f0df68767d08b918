package repository

import (
	"context"
	"strings"

	"equity-reporter/internal/entity"

	"gorm.io/gorm"
)

// TickerRepository defines the interface for ticker universe data operations.
type TickerRepository interface {
	Create(ctx context.Context, ticker *entity.Ticker) error
	FindByID(ctx context.Context, id uint) (*entity.Ticker, error)
	FindBySymbol(ctx context.Context, symbol string) (*entity.Ticker, error)
	FindAll(ctx context.Context) ([]entity.Ticker, error)
	Update(ctx context.Context, ticker *entity.Ticker) error
	Delete(ctx context.Context, id uint) error
}

// NewTickerRepository creates a new GORM-based ticker repository.
func NewTickerRepository(db *gorm.DB) TickerRepository {
	return &tickerRepository{db: db}
}

type tickerRepository struct {
	db *gorm.DB
}

// Create registers a new ticker. Symbols are stored upper-cased.
func (r *tickerRepository) Create(ctx context.Context, ticker *entity.Ticker) error {
	ticker.Symbol = strings.ToUpper(ticker.Symbol)
	return r.db.WithContext(ctx).Create(ticker).Error
}

// FindByID retrieves a ticker by its ID.
func (r *tickerRepository) FindByID(ctx context.Context, id uint) (*entity.Ticker, error) {
	var ticker entity.Ticker
	if err := r.db.WithContext(ctx).First(&ticker, id).Error; err != nil {
		return nil, err
	}
	return &ticker, nil
}

// FindBySymbol retrieves a ticker by its symbol.
func (r *tickerRepository) FindBySymbol(ctx context.Context, symbol string) (*entity.Ticker, error) {
	var ticker entity.Ticker
	if err := r.db.WithContext(ctx).Where("symbol = ?", strings.ToUpper(symbol)).First(&ticker).Error; err != nil {
		return nil, err
	}
	return &ticker, nil
}

// FindAll retrieves all registered tickers ordered by symbol.
func (r *tickerRepository) FindAll(ctx context.Context) ([]entity.Ticker, error) {
	var tickers []entity.Ticker
	if err := r.db.WithContext(ctx).Order("symbol asc").Find(&tickers).Error; err != nil {
		return nil, err
	}
	return tickers, nil
}

// Update updates a registered ticker.
func (r *tickerRepository) Update(ctx context.Context, ticker *entity.Ticker) error {
	return r.db.WithContext(ctx).Save(ticker).Error
}

// Delete soft-deletes a ticker so historical reports keep resolving its ID.
func (r *tickerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Ticker{}, id).Error
}
