package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"essaylab_backend/internal/services"
	"essaylab_backend/internal/services/dto"
)

type TrainingHandler struct {
	*BaseHandler
	trainingService services.TrainingService
}

func NewTrainingHandler(base *BaseHandler, trainingService services.TrainingService) *TrainingHandler {
	return &TrainingHandler{
		BaseHandler:     base,
		trainingService: trainingService,
	}
}

// RegisterAdminRoutes mounts the training-data review queue.
func (h *TrainingHandler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	training := admin.Group("/training")
	{
		training.GET("", h.List)
		training.GET("/:id", h.Get)
		training.POST("/:id/approve", h.Approve)
		training.POST("/:id/reject", h.Reject)
	}
}

func (h *TrainingHandler) List(c *gin.Context) {
	var query dto.TrainingListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	db := h.GetDB(c)
	list, err := h.trainingService.List(c.Request.Context(), db, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *TrainingHandler) Get(c *gin.Context) {
	db := h.GetDB(c)
	snapshot, err := h.trainingService.Get(c.Request.Context(), db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// Approve promotes the snapshot's after-content into the reference
// portfolio.
func (h *TrainingHandler) Approve(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ApproveTrainingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	if err := h.trainingService.Approve(c.Request.Context(), db, adminID, c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Training essay approved"})
}

func (h *TrainingHandler) Reject(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RejectTrainingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	if err := h.trainingService.Reject(c.Request.Context(), db, adminID, c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Training essay rejected"})
}
