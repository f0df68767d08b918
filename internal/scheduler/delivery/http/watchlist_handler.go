package http

import (
	"net/http"
	"strconv"

	"equity-reporter/internal/scheduler/dto"
	"equity-reporter/internal/scheduler/service"
	"equity-reporter/pkg/logger"

	"github.com/labstack/echo/v4"
)

// WatchlistHandler handles HTTP requests for price watchlist entries.
type WatchlistHandler struct {
	watchlistService service.WatchlistService
	logger           *logger.Logger
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(watchlistService service.WatchlistService, logger *logger.Logger) *WatchlistHandler {
	return &WatchlistHandler{watchlistService: watchlistService, logger: logger}
}

// RegisterRoutes registers the watchlist routes to the Echo group.
func (h *WatchlistHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateEntry)
	g.GET("", h.GetAllEntries)
	g.GET("/:id", h.GetEntryByID)
	g.PUT("/:id", h.UpdateEntry)
	g.DELETE("/:id", h.DeleteEntry)
}

// CreateEntry godoc
// @Summary Add a watchlist entry
// @Description Add a symbol to the price watchlist with alert thresholds
// @Tags watchlist
// @Accept  json
// @Produce  json
// @Param   entry  body    dto.CreateWatchlistEntryRequest   true    "Entry to add"
// @Success 201 {object} dto.WatchlistEntryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /watchlist [post]
func (h *WatchlistHandler) CreateEntry(c echo.Context) error {
	var req dto.CreateWatchlistEntryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	entryResponse, err := h.watchlistService.CreateEntry(c.Request().Context(), &req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, entryResponse)
}

// GetEntryByID godoc
// @Summary Get a watchlist entry by ID
// @Description Get a single watchlist entry by its ID
// @Tags watchlist
// @Produce  json
// @Param   id  path    int true    "Entry ID"
// @Success 200 {object} dto.WatchlistEntryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /watchlist/{id} [get]
func (h *WatchlistHandler) GetEntryByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid entry ID"})
	}

	entryResponse, err := h.watchlistService.GetEntryByID(c.Request().Context(), uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, entryResponse)
}

// GetAllEntries godoc
// @Summary Get all watchlist entries
// @Description Get all price watchlist entries
// @Tags watchlist
// @Produce  json
// @Success 200 {array} dto.WatchlistEntryResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /watchlist [get]
func (h *WatchlistHandler) GetAllEntries(c echo.Context) error {
	entries, err := h.watchlistService.GetAllEntries(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to get all watchlist entries", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get watchlist entries"})
	}
	return c.JSON(http.StatusOK, entries)
}

// UpdateEntry godoc
// @Summary Update a watchlist entry
// @Description Update thresholds or re-arm the alert of a watchlist entry
// @Tags watchlist
// @Accept  json
// @Produce  json
// @Param   id  path    int true    "Entry ID"
// @Param   entry  body    dto.UpdateWatchlistEntryRequest   true    "Entry fields to update"
// @Success 200 {object} dto.WatchlistEntryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /watchlist/{id} [put]
func (h *WatchlistHandler) UpdateEntry(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid entry ID"})
	}

	var req dto.UpdateWatchlistEntryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	entryResponse, err := h.watchlistService.UpdateEntry(c.Request().Context(), uint(id), &req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, entryResponse)
}

// DeleteEntry godoc
// @Summary Delete a watchlist entry
// @Description Remove an entry from the price watchlist
// @Tags watchlist
// @Produce  json
// @Param   id  path    int true    "Entry ID"
// @Success 204 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /watchlist/{id} [delete]
func (h *WatchlistHandler) DeleteEntry(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid entry ID"})
	}

	if err := h.watchlistService.DeleteEntry(c.Request().Context(), uint(id)); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete watchlist entry"})
	}

	return c.NoContent(http.StatusNoContent)
}
