package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"essaylab_backend/internal/services"
	"essaylab_backend/internal/services/dto"
	"essaylab_backend/pkg/apperrors"
)

// maxUploadBytes caps DOCX uploads at 5 MiB.
const maxUploadBytes = 5 << 20

type PortfolioHandler struct {
	*BaseHandler
	portfolioService services.PortfolioService
}

func NewPortfolioHandler(base *BaseHandler, portfolioService services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		BaseHandler:      base,
		portfolioService: portfolioService,
	}
}

// RegisterAdminRoutes mounts the reference-essay portfolio. The whole
// surface is admin-only: successful essays feed analysis prompts, not
// end users.
func (h *PortfolioHandler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	portfolio := admin.Group("/portfolio")
	{
		portfolio.POST("", h.Create)
		portfolio.GET("", h.List)
		portfolio.GET("/:id", h.Get)
		portfolio.PATCH("/:id", h.Update)
		portfolio.DELETE("/:id", h.Delete)
		portfolio.POST("/parse-text", h.ParseText)
		portfolio.POST("/parse-docx", h.ParseDocx)
		portfolio.POST("/parse-resume", h.ParseResume)
	}
}

func (h *PortfolioHandler) Create(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReferenceEssayRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	essay, err := h.portfolioService.Create(c.Request.Context(), db, adminID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, essay)
}

func (h *PortfolioHandler) List(c *gin.Context) {
	page, limit := ParsePagination(c)

	db := h.GetDB(c)
	list, err := h.portfolioService.List(c.Request.Context(), db, page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *PortfolioHandler) Get(c *gin.Context) {
	db := h.GetDB(c)
	essay, err := h.portfolioService.Get(c.Request.Context(), db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, essay)
}

func (h *PortfolioHandler) Update(c *gin.Context) {
	var req dto.UpdateReferenceEssayRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	essay, err := h.portfolioService.Update(c.Request.Context(), db, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, essay)
}

func (h *PortfolioHandler) Delete(c *gin.Context) {
	db := h.GetDB(c)
	if err := h.portfolioService.Delete(c.Request.Context(), db, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reference essay deleted"})
}

// ParseText runs AI extraction over pasted essay text and returns a
// pre-filled create request for the admin to review before saving.
func (h *PortfolioHandler) ParseText(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ParseReferenceEssayRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	parsed, err := h.portfolioService.ParseText(c.Request.Context(), db, adminID, req.RawText)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, parsed)
}

func (h *PortfolioHandler) ParseDocx(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.ErrBadRequest("A DOCX file is required", err))
		return
	}
	if fileHeader.Size > maxUploadBytes {
		apperrors.HandleError(c, apperrors.ErrBadRequest("File exceeds the 5 MB upload limit", nil))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apperrors.HandleError(c, apperrors.ErrBadRequest("Could not read the uploaded file", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		apperrors.HandleError(c, apperrors.ErrBadRequest("Could not read the uploaded file", err))
		return
	}

	db := h.GetDB(c)
	parsed, err := h.portfolioService.ParseDocx(c.Request.Context(), db, adminID, data)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, parsed)
}

func (h *PortfolioHandler) ParseResume(c *gin.Context) {
	var req dto.ParseReferenceEssayRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	parsed, err := h.portfolioService.ParseResume(c.Request.Context(), req.RawText)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, parsed)
}
