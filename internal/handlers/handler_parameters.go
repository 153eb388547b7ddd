package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/travel_allowance_app/internal/core/ports/services"
	"github.com/SscSPs/travel_allowance_app/internal/dto"
	"github.com/SscSPs/travel_allowance_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// parametersHandler handles the system parameters.
type parametersHandler struct {
	parametersService portssvc.ParametersSvcFacade
}

func newParametersHandler(ps portssvc.ParametersSvcFacade) *parametersHandler {
	return &parametersHandler{parametersService: ps}
}

// RegisterParametersRoutes registers routes related to system parameters.
func RegisterParametersRoutes(rg *gin.RouterGroup, parametersService portssvc.ParametersSvcFacade) {
	h := newParametersHandler(parametersService)

	params := rg.Group("/parameters")
	{
		params.GET("", h.getParameters)
		params.PUT("", h.updateParameters) // Admin only
	}
}

// getParameters godoc
// @Summary Current system parameters
// @Tags parameters
// @Produce  json
// @Success 200 {object} domain.SystemParameters
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Parameters not configured"
// @Security BearerAuth
// @Router /parameters [get]
func (h *parametersHandler) getParameters(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params, err := h.parametersService.GetCurrentParameters(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to load parameters")
		return
	}

	c.JSON(http.StatusOK, params)
}

// updateParameters godoc
// @Summary Update system parameters
// @Description Replaces the unit value and the average fuel price. Administrators only.
// @Tags parameters
// @Accept  json
// @Produce  json
// @Param   parameters body dto.UpdateParametersRequest true "New parameters"
// @Success 200 {object} domain.SystemParameters
// @Failure 400 {object} map[string]string "Values must be positive"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to update parameters"
// @Security BearerAuth
// @Router /parameters [put]
func (h *parametersHandler) updateParameters(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateParametersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "parameters")
		return
	}
	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	logger.Info("Received request to update parameters",
		slog.String("unit_value", req.UnitValue.String()),
		slog.String("average_fuel_price", req.AverageFuelPrice.String()))

	params, err := h.parametersService.UpdateParameters(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to update parameters")
		return
	}

	c.JSON(http.StatusOK, params)
}
