package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"moodcanvas-server/internal/interfaces/httpserver/responses"
	"moodcanvas-server/internal/utils/platformerrors"
)

// DashboardHandler exposes the mood dashboard.
type DashboardHandler struct {
	diaries DiaryService
	log     zerolog.Logger
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(diaries DiaryService, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{diaries: diaries, log: log.With().Str("handler", "dashboard").Logger()}
}

// Get handles GET /v1/dashboard
// @Summary Mood dashboard
// @Description Heatmap for one year, mood trend, word cloud and summary stats.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param year query int false "Heatmap year, defaults to the current year"
// @Success 200 {object} responses.DashboardResponse
// @Failure 400 {object} platformerrors.HTTPErrorResponse
// @Router /v1/dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	year := 0
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 9999 {
			platformerrors.WriteValidationError(c, "year must be a number")
			return
		}
		year = parsed
	}

	dashboard, err := h.diaries.Dashboard(c.Request.Context(), p.UserID, year)
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, responses.FromDashboard(dashboard))
}
