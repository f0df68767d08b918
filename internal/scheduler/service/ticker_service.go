package service

import (
	"context"
	"fmt"
	"strings"

	"equity-reporter/internal/entity"
	"equity-reporter/internal/scheduler/dto"
	"equity-reporter/internal/scheduler/repository"
	"equity-reporter/pkg/logger"
)

// TickerService defines the interface for managing the research ticker universe.
type TickerService interface {
	CreateTicker(ctx context.Context, req *dto.CreateTickerRequest) (*dto.TickerResponse, error)
	GetTickerByID(ctx context.Context, id uint) (*dto.TickerResponse, error)
	GetAllTickers(ctx context.Context) ([]*dto.TickerResponse, error)
	UpdateTicker(ctx context.Context, id uint, req *dto.UpdateTickerRequest) (*dto.TickerResponse, error)
	DeleteTicker(ctx context.Context, id uint) error
}

// NewTickerService creates a new ticker service.
func NewTickerService(tickerRepo repository.TickerRepository, logger *logger.Logger) TickerService {
	return &tickerService{
		tickerRepo: tickerRepo,
		logger:     logger,
	}
}

type tickerService struct {
	tickerRepo repository.TickerRepository
	logger     *logger.Logger
}

// CreateTicker handles the business logic for registering a new ticker.
func (s *tickerService) CreateTicker(ctx context.Context, req *dto.CreateTickerRequest) (*dto.TickerResponse, error) {
	symbol := strings.TrimSpace(req.Symbol)
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}

	ticker := &entity.Ticker{
		Symbol: symbol,
		Name:   req.Name,
		Sector: req.Sector,
	}

	if err := s.tickerRepo.Create(ctx, ticker); err != nil {
		s.logger.Error("Failed to create ticker", logger.ErrorField(err), logger.Field("symbol", symbol))
		return nil, err
	}

	s.logger.Info("Ticker created successfully", logger.Field("symbol", ticker.Symbol))
	return s.mapToTickerResponse(ticker), nil
}

// GetTickerByID retrieves a ticker by its ID.
func (s *tickerService) GetTickerByID(ctx context.Context, id uint) (*dto.TickerResponse, error) {
	ticker, err := s.tickerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.mapToTickerResponse(ticker), nil
}

// GetAllTickers retrieves all registered tickers.
func (s *tickerService) GetAllTickers(ctx context.Context) ([]*dto.TickerResponse, error) {
	tickers, err := s.tickerRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to get all tickers", logger.ErrorField(err))
		return nil, err
	}

	var tickerResponses []*dto.TickerResponse
	for _, ticker := range tickers {
		tickerResponses = append(tickerResponses, s.mapToTickerResponse(&ticker))
	}

	return tickerResponses, nil
}

// UpdateTicker handles the business logic for updating a registered ticker.
// The symbol itself is immutable; delist and re-register to change it.
func (s *tickerService) UpdateTicker(ctx context.Context, id uint, req *dto.UpdateTickerRequest) (*dto.TickerResponse, error) {
	ticker, err := s.tickerRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to find ticker for update", logger.ErrorField(err), logger.Field("ticker_id", id))
		return nil, err
	}

	ticker.Name = req.Name
	ticker.Sector = req.Sector

	if err := s.tickerRepo.Update(ctx, ticker); err != nil {
		s.logger.Error("Failed to update ticker", logger.ErrorField(err), logger.Field("ticker_id", id))
		return nil, err
	}

	s.logger.Info("Ticker updated successfully", logger.Field("symbol", ticker.Symbol))
	return s.mapToTickerResponse(ticker), nil
}

// DeleteTicker removes a ticker from the research universe.
func (s *tickerService) DeleteTicker(ctx context.Context, id uint) error {
	err := s.tickerRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("Failed to delete ticker", logger.ErrorField(err), logger.Field("ticker_id", id))
		return err
	}
	s.logger.Info("Ticker deleted successfully", logger.Field("ticker_id", id))
	return nil
}

// mapToTickerResponse maps an entity.Ticker to a dto.TickerResponse.
func (s *tickerService) mapToTickerResponse(ticker *entity.Ticker) *dto.TickerResponse {
	return &dto.TickerResponse{
		ID:        ticker.ID,
		Symbol:    ticker.Symbol,
		Name:      ticker.Name,
		Sector:    ticker.Sector,
		CreatedAt: ticker.CreatedAt,
		UpdatedAt: ticker.UpdatedAt,
	}
}
