package repository

import (
	"context"

	"equity-reporter/internal/entity"

	"gorm.io/gorm"
)

type TickerRepository interface {
	GetTickers(ctx context.Context) ([]entity.Ticker, error)
	FindBySymbol(ctx context.Context, symbol string) (*entity.Ticker, error)
}

type tickerRepository struct {
	db *gorm.DB
}

func NewTickerRepository(db *gorm.DB) TickerRepository {
	return &tickerRepository{db: db}
}

func (r *tickerRepository) GetTickers(ctx context.Context) ([]entity.Ticker, error) {
	var tickers []entity.Ticker
	if err := r.db.WithContext(ctx).Find(&tickers).Error; err != nil {
		return nil, err
	}
	return tickers, nil
}

func (r *tickerRepository) FindBySymbol(ctx context.Context, symbol string) (*entity.Ticker, error) {
	var ticker entity.Ticker
	result := r.db.WithContext(ctx).Where("symbol = ?", symbol).First(&ticker)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &ticker, nil
}
