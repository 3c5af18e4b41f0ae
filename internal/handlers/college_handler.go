package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"essaylab_backend/internal/middleware"
	"essaylab_backend/internal/services"
	"essaylab_backend/internal/services/dto"
)

type CollegeHandler struct {
	*BaseHandler
	collegeService services.CollegeService
}

func NewCollegeHandler(base *BaseHandler, collegeService services.CollegeService) *CollegeHandler {
	return &CollegeHandler{
		BaseHandler:    base,
		collegeService: collegeService,
	}
}

// RegisterRoutes mounts the read-only catalog for authenticated writers.
func (h *CollegeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	colleges := rg.Group("/colleges")
	colleges.Use(middleware.AuthMiddleware())
	{
		colleges.GET("", h.ListColleges)
		colleges.GET("/:id", h.GetCollege)
		colleges.GET("/:id/programmes", h.ListProgrammes)
	}
}

// RegisterAdminRoutes mounts catalog management.
func (h *CollegeHandler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	colleges := admin.Group("/colleges")
	{
		colleges.POST("", h.CreateCollege)
		colleges.PATCH("/:id", h.UpdateCollege)
		colleges.DELETE("/:id", h.DeleteCollege)
		colleges.POST("/:id/programmes", h.CreateProgramme)
	}
	programmes := admin.Group("/programmes")
	{
		programmes.PATCH("/:id", h.UpdateProgramme)
		programmes.DELETE("/:id", h.DeleteProgramme)
	}
}

func (h *CollegeHandler) ListColleges(c *gin.Context) {
	db := h.GetDB(c)
	colleges, err := h.collegeService.ListColleges(c.Request.Context(), db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"colleges": colleges})
}

func (h *CollegeHandler) GetCollege(c *gin.Context) {
	db := h.GetDB(c)
	college, err := h.collegeService.GetCollege(c.Request.Context(), db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, college)
}

func (h *CollegeHandler) ListProgrammes(c *gin.Context) {
	db := h.GetDB(c)
	programmes, err := h.collegeService.ListProgrammes(c.Request.Context(), db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"programmes": programmes})
}

func (h *CollegeHandler) CreateCollege(c *gin.Context) {
	var req dto.CreateCollegeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	college, err := h.collegeService.CreateCollege(c.Request.Context(), db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, college)
}

func (h *CollegeHandler) UpdateCollege(c *gin.Context) {
	var req dto.UpdateCollegeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	college, err := h.collegeService.UpdateCollege(c.Request.Context(), db, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, college)
}

func (h *CollegeHandler) DeleteCollege(c *gin.Context) {
	db := h.GetDB(c)
	if err := h.collegeService.DeleteCollege(c.Request.Context(), db, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "College deleted"})
}

func (h *CollegeHandler) CreateProgramme(c *gin.Context) {
	var req dto.CreateProgrammeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	programme, err := h.collegeService.CreateProgramme(c.Request.Context(), db, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, programme)
}

func (h *CollegeHandler) UpdateProgramme(c *gin.Context) {
	var req dto.UpdateProgrammeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	programme, err := h.collegeService.UpdateProgramme(c.Request.Context(), db, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, programme)
}

func (h *CollegeHandler) DeleteProgramme(c *gin.Context) {
	db := h.GetDB(c)
	if err := h.collegeService.DeleteProgramme(c.Request.Context(), db, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Programme deleted"})
}
