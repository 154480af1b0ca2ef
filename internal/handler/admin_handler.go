package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CoolVinz/village-shop-sub001/internal/domain"
	"github.com/CoolVinz/village-shop-sub001/internal/dto"
	"github.com/CoolVinz/village-shop-sub001/internal/service"
)

// AdminHandler handles admin-only user management. The routes are
// mounted behind RequireRoles(ADMIN).
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ListUsers returns all users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// UpdateRole changes a user's role
func (h *AdminHandler) UpdateRole(c *gin.Context) {
	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	if err := h.adminService.SetUserRole(c.Request.Context(), c.Param("id"), domain.Role(req.Role)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Role updated"})
}

// DeleteUser deactivates a user. There is no hard delete on this
// surface; ADMIN accounts in particular can only be deactivated.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.adminService.DeactivateUser(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "User deactivated"})
}
