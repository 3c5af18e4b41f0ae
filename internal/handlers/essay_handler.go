package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"essaylab_backend/internal/middleware"
	"essaylab_backend/internal/services"
	"essaylab_backend/internal/services/dto"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

type EssayHandler struct {
	*BaseHandler
	essayService  services.EssayService
	exportService services.ExportService
}

func NewEssayHandler(base *BaseHandler, essayService services.EssayService, exportService services.ExportService) *EssayHandler {
	return &EssayHandler{
		BaseHandler:   base,
		essayService:  essayService,
		exportService: exportService,
	}
}

func (h *EssayHandler) RegisterRoutes(rg *gin.RouterGroup) {
	essays := rg.Group("/essays")
	essays.Use(middleware.AuthMiddleware())
	{
		essays.POST("", h.CreateEssay)
		essays.GET("", h.ListEssays)
		essays.GET("/:id", h.GetEssay)
		essays.PATCH("/:id", h.UpdateEssay)
		essays.PUT("/:id/content", h.SaveContent)
		essays.DELETE("/:id", h.DeleteEssay)
		essays.GET("/:id/scores", h.ListScores)
		essays.GET("/:id/export", h.ExportDocx)
	}
}

func (h *EssayHandler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/essays", h.ListAllEssays)
}

// CreateEssay godoc
// @Summary      Create an essay
// @Tags         essays
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateEssayRequest true "Essay data"
// @Success      201 {object} dto.EssayResponse
// @Router       /essays [post]
func (h *EssayHandler) CreateEssay(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateEssayRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	essay, err := h.essayService.CreateEssay(c.Request.Context(), db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, essay)
}

func (h *EssayHandler) ListEssays(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.EssayListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	db := h.GetDB(c)
	list, err := h.essayService.ListEssays(c.Request.Context(), db, userID, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *EssayHandler) ListAllEssays(c *gin.Context) {
	var query dto.EssayListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	db := h.GetDB(c)
	list, err := h.essayService.ListAllEssays(c.Request.Context(), db, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *EssayHandler) GetEssay(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	essay, err := h.essayService.GetEssay(c.Request.Context(), db, userID, c.Param("id"), middleware.IsAdminRequest(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, essay)
}

func (h *EssayHandler) UpdateEssay(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateEssayRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	essay, err := h.essayService.UpdateEssay(c.Request.Context(), db, userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, essay)
}

// SaveContent is the auto-save endpoint. It only touches the content
// column, so the editor can call it on every debounce tick.
func (h *EssayHandler) SaveContent(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SaveContentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	essay, err := h.essayService.SaveContent(c.Request.Context(), db, userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, essay)
}

func (h *EssayHandler) DeleteEssay(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	if err := h.essayService.DeleteEssay(c.Request.Context(), db, userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Essay deleted"})
}

func (h *EssayHandler) ListScores(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	scores, err := h.essayService.ListScores(c.Request.Context(), db, userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"scores": scores})
}

// ExportDocx streams the essay as a Word document with outstanding
// suggestions appended as a feedback section.
func (h *EssayHandler) ExportDocx(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	result, err := h.exportService.ExportDocx(c.Request.Context(), db, userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Data(http.StatusOK, docxContentType, result.Data)
}
