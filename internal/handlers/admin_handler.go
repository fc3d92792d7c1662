package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jobdesk/backend/internal/dtos"
	"github.com/jobdesk/backend/internal/services"
)

// AdminHandler exposes user administration; routing restricts every
// method to the admin role.
type AdminHandler struct {
	users *services.UserService
	log   *zap.Logger
}

func NewAdminHandler(users *services.UserService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{users: users, log: log}
}

// ListUsers is GET /api/admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers()
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// DeleteUser is DELETE /api/admin/users/:id.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if err := h.users.DeleteUser(id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// UpdateRole is PUT /api/admin/users/:id/role, the only path that may
// change a role.
func (h *AdminHandler) UpdateRole(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	var req dtos.RoleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	user, err := h.users.UpdateRole(id, req.Role)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "role updated", "user": user})
}
