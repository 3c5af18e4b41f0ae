package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"essaylab_backend/internal/middleware"
	"essaylab_backend/internal/services"
	"essaylab_backend/internal/services/dto"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

// RegisterRoutes mounts the self-service profile endpoints.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/me", h.GetCurrentUser)
		users.GET("/me/profile", h.GetProfile)
		users.PATCH("/me/profile", h.UpdateProfile)
	}
}

// RegisterAdminRoutes mounts the admin console user management.
func (h *UserHandler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	users := admin.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.POST("", h.CreateUser)
		users.GET("/:id", h.GetUser)
		users.POST("/:id/approve", h.ApproveUser)
		users.POST("/:id/reject", h.RejectUser)
		users.POST("/:id/suspend", h.SuspendUser)
		users.POST("/:id/reinstate", h.ReinstateUser)
		users.PUT("/:id/role", h.ChangeRole)
		users.DELETE("/:id", h.DeleteUser)
	}
}

func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	user, err := h.userService.GetUser(c.Request.Context(), db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	profile, err := h.userService.GetProfile(c.Request.Context(), db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	profile, err := h.userService.UpdateProfile(c.Request.Context(), db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Admin console

func (h *UserHandler) ListUsers(c *gin.Context) {
	var query dto.UserListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	db := h.GetDB(c)
	resp, err := h.userService.ListUsers(c.Request.Context(), db, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	db := h.GetDB(c)
	user, err := h.userService.GetUser(c.Request.Context(), db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.AdminCreateUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	user, err := h.userService.CreateUser(c.Request.Context(), db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) ApproveUser(c *gin.Context) {
	db := h.GetDB(c)
	if err := h.userService.ApproveUser(c.Request.Context(), db, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User approved"})
}

func (h *UserHandler) RejectUser(c *gin.Context) {
	var req dto.RejectUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	if err := h.userService.RejectUser(c.Request.Context(), db, c.Param("id"), req.Reason); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User rejected"})
}

func (h *UserHandler) SuspendUser(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	if err := h.userService.SuspendUser(c.Request.Context(), db, adminID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User suspended"})
}

func (h *UserHandler) ReinstateUser(c *gin.Context) {
	db := h.GetDB(c)
	if err := h.userService.ReinstateUser(c.Request.Context(), db, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User reinstated"})
}

func (h *UserHandler) ChangeRole(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ChangeRoleRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	if err := h.userService.ChangeRole(c.Request.Context(), db, adminID, c.Param("id"), req.Role); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role updated"})
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	if err := h.userService.DeleteUser(c.Request.Context(), db, adminID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
