package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/travel_allowance_app/internal/core/ports/services"
	"github.com/SscSPs/travel_allowance_app/internal/dto"
	"github.com/SscSPs/travel_allowance_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// holidayHandler handles the holiday calendar.
type holidayHandler struct {
	holidayService portssvc.HolidaySvcFacade
}

func newHolidayHandler(hs portssvc.HolidaySvcFacade) *holidayHandler {
	return &holidayHandler{holidayService: hs}
}

// RegisterHolidayRoutes registers routes related to holidays.
func RegisterHolidayRoutes(rg *gin.RouterGroup, holidayService portssvc.HolidaySvcFacade) {
	h := newHolidayHandler(holidayService)

	holidays := rg.Group("/holidays")
	{
		holidays.GET("", h.listHolidays)
		holidays.POST("", h.createHoliday) // Admin only
	}
}

// listHolidays godoc
// @Summary List holidays
// @Tags holidays
// @Produce  json
// @Param   year query int false "Calendar year, defaults to the current one"
// @Success 200 {array} dto.HolidayResponse
// @Failure 400 {object} map[string]string "Invalid year"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /holidays [get]
func (h *holidayHandler) listHolidays(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListHolidaysParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "query parameters")
		return
	}
	if params.Year == 0 {
		params.Year = time.Now().Year()
	}

	holidays, err := h.holidayService.ListHolidays(c.Request.Context(), params.Year)
	if err != nil {
		respondError(c, logger, err, "Failed to list holidays")
		return
	}

	c.JSON(http.StatusOK, dto.ToHolidayResponses(holidays))
}

// createHoliday godoc
// @Summary Register a holiday
// @Description Adds a non-business day, or renames the one already on that date. Administrators only.
// @Tags holidays
// @Accept  json
// @Produce  json
// @Param   holiday body dto.CreateHolidayRequest true "Holiday"
// @Success 201 {object} dto.HolidayResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /holidays [post]
func (h *holidayHandler) createHoliday(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "holiday")
		return
	}
	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	logger.Info("Received request to create holiday", slog.String("date", req.Date))

	holiday, err := h.holidayService.CreateHoliday(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to create holiday")
		return
	}

	c.JSON(http.StatusCreated, dto.ToHolidayResponse(*holiday))
}
