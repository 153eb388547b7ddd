package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/travel_allowance_app/internal/core/ports/services"
	"github.com/SscSPs/travel_allowance_app/internal/dto"
	"github.com/SscSPs/travel_allowance_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// calculationHandler serves calculation previews and reference data.
type calculationHandler struct {
	calculationService portssvc.CalculationSvc
}

func newCalculationHandler(cs portssvc.CalculationSvc) *calculationHandler {
	return &calculationHandler{calculationService: cs}
}

// RegisterCalculationRoutes registers the preview and config routes.
// Extra handlers, such as a rate limiter, run before the preview only.
func RegisterCalculationRoutes(rg *gin.RouterGroup, calculationService portssvc.CalculationSvc, previewMiddleware ...gin.HandlerFunc) {
	h := newCalculationHandler(calculationService)

	rg.POST("/calculations/preview", append(previewMiddleware, h.previewCalculation)...)
	rg.GET("/config", h.getConfig)
}

// previewCalculation godoc
// @Summary Preview a calculation
// @Description Computes per-diem and displacement figures for a trip without saving anything.
// @Tags calculations
// @Accept  json
// @Produce  json
// @Param   trip body dto.PreviewCalculationRequest true "Trip details"
// @Success 200 {object} dto.PreviewCalculationResponse
// @Failure 400 {object} map[string]string "Invalid trip details"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 503 {object} map[string]string "System parameters not configured"
// @Security BearerAuth
// @Router /calculations/preview [post]
func (h *calculationHandler) previewCalculation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PreviewCalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "trip details")
		return
	}

	logger.Debug("Received calculation preview", slog.String("destination", req.Destination), slog.String("transport_mode", req.TransportMode))

	result, err := h.calculationService.Preview(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to calculate preview")
		return
	}

	c.JSON(http.StatusOK, result)
}

// getConfig godoc
// @Summary Calculation reference data
// @Description Returns the unit value, city lists and rate tables used by calculations.
// @Tags calculations
// @Produce  json
// @Success 200 {object} dto.ConfigResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to load configuration"
// @Security BearerAuth
// @Router /config [get]
func (h *calculationHandler) getConfig(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	cfg, err := h.calculationService.Config(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to load configuration")
		return
	}

	c.JSON(http.StatusOK, cfg)
}
