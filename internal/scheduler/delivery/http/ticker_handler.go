package http

import (
	"net/http"
	"strconv"

	"equity-reporter/internal/scheduler/dto"
	"equity-reporter/internal/scheduler/service"
	"equity-reporter/pkg/logger"

	"github.com/labstack/echo/v4"
)

// TickerHandler handles HTTP requests for the research ticker universe.
type TickerHandler struct {
	tickerService service.TickerService
	logger        *logger.Logger
}

// NewTickerHandler creates a new TickerHandler.
func NewTickerHandler(tickerService service.TickerService, logger *logger.Logger) *TickerHandler {
	return &TickerHandler{tickerService: tickerService, logger: logger}
}

// RegisterRoutes registers the ticker routes to the Echo group.
func (h *TickerHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateTicker)
	g.GET("", h.GetAllTickers)
	g.GET("/:id", h.GetTickerByID)
	g.PUT("/:id", h.UpdateTicker)
	g.DELETE("/:id", h.DeleteTicker)
}

// CreateTicker godoc
// @Summary Register a new ticker
// @Description Register a ticker in the research universe
// @Tags tickers
// @Accept  json
// @Produce  json
// @Param   ticker  body    dto.CreateTickerRequest   true    "Ticker to register"
// @Success 201 {object} dto.TickerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tickers [post]
func (h *TickerHandler) CreateTicker(c echo.Context) error {
	var req dto.CreateTickerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	tickerResponse, err := h.tickerService.CreateTicker(c.Request().Context(), &req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, tickerResponse)
}

// GetTickerByID godoc
// @Summary Get a ticker by ID
// @Description Get a single registered ticker by its ID
// @Tags tickers
// @Produce  json
// @Param   id  path    int true    "Ticker ID"
// @Success 200 {object} dto.TickerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tickers/{id} [get]
func (h *TickerHandler) GetTickerByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid ticker ID"})
	}

	tickerResponse, err := h.tickerService.GetTickerByID(c.Request().Context(), uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, tickerResponse)
}

// GetAllTickers godoc
// @Summary Get all tickers
// @Description Get all tickers registered in the research universe
// @Tags tickers
// @Produce  json
// @Success 200 {array} dto.TickerResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tickers [get]
func (h *TickerHandler) GetAllTickers(c echo.Context) error {
	tickers, err := h.tickerService.GetAllTickers(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to get all tickers", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get tickers"})
	}
	return c.JSON(http.StatusOK, tickers)
}

// UpdateTicker godoc
// @Summary Update a registered ticker
// @Description Update the name or sector of a registered ticker
// @Tags tickers
// @Accept  json
// @Produce  json
// @Param   id  path    int true    "Ticker ID"
// @Param   ticker  body    dto.UpdateTickerRequest   true    "Ticker fields to update"
// @Success 200 {object} dto.TickerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tickers/{id} [put]
func (h *TickerHandler) UpdateTicker(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ticker ID"})
	}

	var req dto.UpdateTickerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	tickerResponse, err := h.tickerService.UpdateTicker(c.Request().Context(), uint(id), &req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, tickerResponse)
}

// DeleteTicker godoc
// @Summary Delete a ticker
// @Description Remove a ticker from the research universe
// @Tags tickers
// @Produce  json
// @Param   id  path    int true    "Ticker ID"
// @Success 204 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tickers/{id} [delete]
func (h *TickerHandler) DeleteTicker(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ticker ID"})
	}

	if err := h.tickerService.DeleteTicker(c.Request().Context(), uint(id)); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete ticker"})
	}

	return c.NoContent(http.StatusNoContent)
}
