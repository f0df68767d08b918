package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"equity-reporter/internal/entity"
	"equity-reporter/internal/scheduler/dto"
	"equity-reporter/internal/scheduler/repository"
	"equity-reporter/pkg/logger"
)

// WatchlistService defines the interface for managing price watchlist entries.
type WatchlistService interface {
	CreateEntry(ctx context.Context, req *dto.CreateWatchlistEntryRequest) (*dto.WatchlistEntryResponse, error)
	GetEntryByID(ctx context.Context, id uint) (*dto.WatchlistEntryResponse, error)
	GetAllEntries(ctx context.Context) ([]*dto.WatchlistEntryResponse, error)
	UpdateEntry(ctx context.Context, id uint, req *dto.UpdateWatchlistEntryRequest) (*dto.WatchlistEntryResponse, error)
	DeleteEntry(ctx context.Context, id uint) error
}

// NewWatchlistService creates a new watchlist service.
func NewWatchlistService(watchlistRepo repository.WatchlistRepository, logger *logger.Logger) WatchlistService {
	return &watchlistService{
		watchlistRepo: watchlistRepo,
		logger:        logger,
	}
}

type watchlistService struct {
	watchlistRepo repository.WatchlistRepository
	logger        *logger.Logger
}

// CreateEntry handles the business logic for adding a symbol to the watchlist.
func (s *watchlistService) CreateEntry(ctx context.Context, req *dto.CreateWatchlistEntryRequest) (*dto.WatchlistEntryResponse, error) {
	symbol := strings.TrimSpace(req.Symbol)
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if req.AlertAbovePrice <= 0 && req.AlertBelowPrice <= 0 {
		return nil, fmt.Errorf("at least one alert threshold is required")
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	entry := &entity.WatchlistEntry{
		Symbol:          symbol,
		ReferencePrice:  req.ReferencePrice,
		AlertAbovePrice: req.AlertAbovePrice,
		AlertBelowPrice: req.AlertBelowPrice,
		AddedDate:       time.Now(),
		IsActive:        isActive,
	}

	if err := s.watchlistRepo.Create(ctx, entry); err != nil {
		s.logger.Error("Failed to create watchlist entry", logger.ErrorField(err), logger.Field("symbol", symbol))
		return nil, err
	}

	s.logger.Info("Watchlist entry created successfully", logger.Field("symbol", entry.Symbol))
	return s.mapToEntryResponse(entry), nil
}

// GetEntryByID retrieves a watchlist entry by its ID.
func (s *watchlistService) GetEntryByID(ctx context.Context, id uint) (*dto.WatchlistEntryResponse, error) {
	entry, err := s.watchlistRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.mapToEntryResponse(entry), nil
}

// GetAllEntries retrieves all watchlist entries.
func (s *watchlistService) GetAllEntries(ctx context.Context) ([]*dto.WatchlistEntryResponse, error) {
	entries, err := s.watchlistRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to get all watchlist entries", logger.ErrorField(err))
		return nil, err
	}

	var entryResponses []*dto.WatchlistEntryResponse
	for _, entry := range entries {
		entryResponses = append(entryResponses, s.mapToEntryResponse(&entry))
	}

	return entryResponses, nil
}

// UpdateEntry handles the business logic for updating a watchlist entry.
// ResetAlert re-arms an entry whose alert already fired.
func (s *watchlistService) UpdateEntry(ctx context.Context, id uint, req *dto.UpdateWatchlistEntryRequest) (*dto.WatchlistEntryResponse, error) {
	entry, err := s.watchlistRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to find watchlist entry for update", logger.ErrorField(err), logger.Field("entry_id", id))
		return nil, err
	}

	entry.ReferencePrice = req.ReferencePrice
	entry.AlertAbovePrice = req.AlertAbovePrice
	entry.AlertBelowPrice = req.AlertBelowPrice
	if req.IsActive != nil {
		entry.IsActive = *req.IsActive
	}
	if req.ResetAlert {
		entry.IsAlertTriggered = false
	}

	if err := s.watchlistRepo.Update(ctx, entry); err != nil {
		s.logger.Error("Failed to update watchlist entry", logger.ErrorField(err), logger.Field("entry_id", id))
		return nil, err
	}

	s.logger.Info("Watchlist entry updated successfully", logger.Field("entry_id", id))
	return s.mapToEntryResponse(entry), nil
}

// DeleteEntry removes a watchlist entry.
func (s *watchlistService) DeleteEntry(ctx context.Context, id uint) error {
	err := s.watchlistRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("Failed to delete watchlist entry", logger.ErrorField(err), logger.Field("entry_id", id))
		return err
	}
	s.logger.Info("Watchlist entry deleted successfully", logger.Field("entry_id", id))
	return nil
}

// mapToEntryResponse maps an entity.WatchlistEntry to a dto.WatchlistEntryResponse.
func (s *watchlistService) mapToEntryResponse(entry *entity.WatchlistEntry) *dto.WatchlistEntryResponse {
	return &dto.WatchlistEntryResponse{
		ID:               entry.ID,
		Symbol:           entry.Symbol,
		ReferencePrice:   entry.ReferencePrice,
		AlertAbovePrice:  entry.AlertAbovePrice,
		AlertBelowPrice:  entry.AlertBelowPrice,
		AddedDate:        entry.AddedDate,
		IsActive:         entry.IsActive,
		IsAlertTriggered: entry.IsAlertTriggered,
		LastAlertedAt:    entry.LastAlertedAt,
		CreatedAt:        entry.CreatedAt,
	}
}
