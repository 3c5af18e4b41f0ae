package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"essaylab_backend/internal/middleware"
	"essaylab_backend/internal/services"
)

type AnalyticsHandler struct {
	*BaseHandler
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(base *BaseHandler, analyticsService services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		BaseHandler:      base,
		analyticsService: analyticsService,
	}
}

// RegisterRoutes mounts the per-essay stats endpoint for writers.
func (h *AnalyticsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	essays := rg.Group("/essays")
	essays.Use(middleware.AuthMiddleware())
	{
		essays.GET("/:id/stats", h.EssayStats)
	}
}

// RegisterAdminRoutes mounts platform stats and CSV exports.
func (h *AnalyticsHandler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	analytics := admin.Group("/analytics")
	{
		analytics.GET("/stats", h.PlatformStats)
		analytics.GET("/export/events", h.ExportEvents)
		analytics.GET("/export/scores", h.ExportScores)
	}
}

func (h *AnalyticsHandler) PlatformStats(c *gin.Context) {
	db := h.GetDB(c)
	stats, err := h.analyticsService.PlatformStats(c.Request.Context(), db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *AnalyticsHandler) EssayStats(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	stats, err := h.analyticsService.EssayStats(c.Request.Context(), db, userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportEvents streams every suggestion event as CSV.
func (h *AnalyticsHandler) ExportEvents(c *gin.Context) {
	h.streamCSV(c, "suggestion_events", h.analyticsService.ExportEventsCSV)
}

// ExportScores streams every score snapshot as CSV.
func (h *AnalyticsHandler) ExportScores(c *gin.Context) {
	h.streamCSV(c, "score_snapshots", h.analyticsService.ExportScoresCSV)
}

func (h *AnalyticsHandler) streamCSV(c *gin.Context, name string, write func(ctx context.Context, db *gorm.DB, w io.Writer) error) {
	db := h.GetDB(c)

	fileName := fmt.Sprintf("%s_%s.csv", name, time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Header("Content-Type", "text/csv")
	c.Status(http.StatusOK)

	if err := write(c.Request.Context(), db, c.Writer); err != nil {
		// Headers are already out; the broken stream is the signal.
		_ = c.Error(err)
	}
}
