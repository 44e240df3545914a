package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopbill-api/internal/application/service"
	"github.com/sangkips/shopbill-api/internal/presentation/http/dto/response"
)

// AdminHandler handles maintenance HTTP requests
type AdminHandler struct {
	adminService *service.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// CleanupDatabase handles wiping every application table
func (h *AdminHandler) CleanupDatabase(c *gin.Context) {
	result, err := h.adminService.CleanupDatabase(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Database cleaned up successfully", result)
}
