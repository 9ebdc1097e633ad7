package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockaigent/internal/logger"
	"github.com/guttosm/stockaigent/internal/middleware"
	"github.com/guttosm/stockaigent/internal/service"
	"github.com/guttosm/stockaigent/internal/upstream"
)

const maxAlertBody = 64 << 10

// Handler provides HTTP handlers for the dashboard endpoints.
//
// Responsibilities:
//   - Validate query and path parameters
//   - Delegate to the MarketService
//   - Map service errors to HTTP status codes
type Handler struct {
	svc service.MarketService
}

// NewHandler constructs a new Handler instance.
func NewHandler(svc service.MarketService) *Handler {
	return &Handler{svc: svc}
}

// GetBrief godoc
// @Summary      Market brief
// @Description  Headline, benchmark metrics, FX fixing and top movers for a market
// @Tags         market
// @Produce      json
// @Param        market  query     string  false  "Market code (US or PL)" default(US)
// @Success      200     {object}  dto.BriefResponse
// @Failure      400     {object}  dto.ErrorResponse  "Unknown market"
// @Failure      503     {object}  dto.ErrorResponse  "Market data source unavailable"
// @Router       /api/brief [get]
func (h *Handler) GetBrief(c *gin.Context) {
	out, err := h.svc.Brief(c.Request.Context(), c.Query("market"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetSignals godoc
// @Summary      Market signals
// @Description  Momentum, risk and macro drift signals derived from the benchmark moves
// @Tags         market
// @Produce      json
// @Param        market   query     string  false  "Market code (US or PL)" default(US)
// @Param        horizon  query     string  false  "Signal horizon" default(1w)
// @Success      200      {object}  dto.SignalsResponse
// @Failure      400      {object}  dto.ErrorResponse  "Unknown market"
// @Failure      503      {object}  dto.ErrorResponse  "Market data source unavailable"
// @Router       /api/signals [get]
func (h *Handler) GetSignals(c *gin.Context) {
	out, err := h.svc.Signals(c.Request.Context(), c.Query("market"), c.Query("horizon"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetStock godoc
// @Summary      Stock dossier
// @Description  Latest close, day change and a rule-based assessment for one ticker. Always fetched fresh.
// @Tags         stocks
// @Produce      json
// @Param        ticker  path      string  true  "Ticker, e.g. spy or spy.us" example(spy.us)
// @Success      200     {object}  dto.DossierResponse
// @Failure      400     {object}  dto.ErrorResponse  "Invalid ticker"
// @Failure      404     {object}  dto.ErrorResponse  "No data for ticker"
// @Failure      503     {object}  dto.ErrorResponse  "Market data source unavailable"
// @Router       /api/stocks/{ticker} [get]
func (h *Handler) GetStock(c *gin.Context) {
	ticker := strings.TrimSpace(c.Param("ticker"))
	if ticker == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, "ticker is required", nil)
		return
	}
	out, err := h.svc.Dossier(c.Request.Context(), ticker)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetPortfolioSummary godoc
// @Summary      Portfolio summary
// @Description  Model allocation weights and scenario probabilities
// @Tags         portfolio
// @Produce      json
// @Success      200  {object}  dto.PortfolioResponse
// @Router       /api/portfolio/summary [get]
func (h *Handler) GetPortfolioSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Portfolio())
}

// CreateAlert godoc
// @Summary      Create alert
// @Description  Acknowledges an alert rule and echoes it back. Rules are not persisted.
// @Tags         alerts
// @Accept       json
// @Produce      json
// @Param        rule  body      object  false  "Alert rule"
// @Success      201   {object}  dto.AlertResponse
// @Router       /api/alerts [post]
func (h *Handler) CreateAlert(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxAlertBody))
	if err != nil {
		logger.L().Warn().Err(err).Msg("alert body read failed")
		body = nil
	}
	c.JSON(http.StatusCreated, h.svc.CreateAlert(c.Request.Context(), json.RawMessage(body)))
}

// GetWeeklyReport godoc
// @Summary      Weekly report
// @Description  Highlights for the current week
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.WeeklyReportResponse
// @Router       /api/reports/weekly [get]
func (h *Handler) GetWeeklyReport(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.WeeklyReport())
}

// GetSources godoc
// @Summary      Data sources
// @Description  Upstream providers used to build the dashboard
// @Tags         market
// @Produce      json
// @Success      200  {object}  dto.SourcesResponse
// @Router       /api/sources [get]
func (h *Handler) GetSources(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Sources())
}

// writeError maps service errors onto status codes. Upstream details stay in
// the logs.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownMarket), errors.Is(err, service.ErrInvalidTicker):
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request", err)
	case errors.Is(err, service.ErrNoData):
		middleware.AbortWithError(c, http.StatusNotFound, "no data found", nil)
	case errors.Is(err, upstream.ErrSourceUnavailable):
		_ = c.Error(err)
		middleware.AbortWithError(c, http.StatusServiceUnavailable, "market data source unavailable", nil)
	default:
		_ = c.Error(err)
		middleware.AbortWithError(c, http.StatusInternalServerError, "internal server error", nil)
	}
}
