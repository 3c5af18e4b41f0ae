package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"essaylab_backend/internal/middleware"
	"essaylab_backend/internal/services"
	"essaylab_backend/internal/services/dto"
)

type AnalysisHandler struct {
	*BaseHandler
	analysisService   services.AnalysisService
	suggestionService services.SuggestionService
}

func NewAnalysisHandler(base *BaseHandler, analysisService services.AnalysisService, suggestionService services.SuggestionService) *AnalysisHandler {
	return &AnalysisHandler{
		BaseHandler:       base,
		analysisService:   analysisService,
		suggestionService: suggestionService,
	}
}

func (h *AnalysisHandler) RegisterRoutes(rg *gin.RouterGroup) {
	essays := rg.Group("/essays")
	essays.Use(middleware.AuthMiddleware())
	{
		essays.POST("/:id/analysis", h.Trigger)
		essays.GET("/:id/analysis", h.GetStatus)
		essays.GET("/:id/analysis/session", h.GetSession)
		essays.POST("/:id/suggestions/apply", h.ApplySuggestion)
		essays.POST("/:id/suggestions/dismiss", h.DismissSuggestion)
	}
}

// Trigger starts an analysis run for the current content. The call
// returns the session state immediately; clients poll GetStatus for
// the result.
func (h *AnalysisHandler) Trigger(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.TriggerAnalysisRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	session, err := h.analysisService.Trigger(c.Request.Context(), db, userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, session)
}

func (h *AnalysisHandler) GetStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	analysis, err := h.analysisService.GetStatus(c.Request.Context(), db, userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

func (h *AnalysisHandler) GetSession(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	session, err := h.analysisService.GetSession(c.Request.Context(), db, userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

func (h *AnalysisHandler) ApplySuggestion(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ApplySuggestionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	result, err := h.suggestionService.Apply(c.Request.Context(), db, userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AnalysisHandler) DismissSuggestion(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.DismissSuggestionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	if err := h.suggestionService.Dismiss(c.Request.Context(), db, userID, c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Suggestion dismissed"})
}
