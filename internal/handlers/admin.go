// internal/handlers/admin.go
package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thenielthevis/foodever-backend/internal/services"
	"github.com/thenielthevis/foodever-backend/internal/utils"
)

type AdminHandler struct {
	statsService        *services.StatsService
	userService         *services.UserService
	notificationService *services.NotificationService
}

func NewAdminHandler(statsService *services.StatsService, userService *services.UserService, notificationService *services.NotificationService) *AdminHandler {
	return &AdminHandler{
		statsService:        statsService,
		userService:         userService,
		notificationService: notificationService,
	}
}

// GET /admin/dashboard
func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.statsService.GetDashboardStats()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"stats": stats})
}

// GET /admin/orders/status-counts
func (h *AdminHandler) GetOrderStatusCounts(c *gin.Context) {
	counts, err := h.statsService.CountByStatus()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"counts": counts})
}

// GET /admin/orders/monthly-top-product
func (h *AdminHandler) GetMonthlyTopProduct(c *gin.Context) {
	var start, end *time.Time

	if startStr := c.Query("start"); startStr != "" {
		t, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid start date, expected YYYY-MM-DD", nil)
			return
		}
		start = &t
	}

	if endStr := c.Query("end"); endStr != "" {
		t, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid end date, expected YYYY-MM-DD", nil)
			return
		}
		end = &t
	}

	months, err := h.statsService.MonthlyTopProduct(start, end)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"months": months})
}

// GET /admin/orders/statuses
func (h *AdminHandler) GetOrderStatuses(c *gin.Context) {
	rows, err := h.statsService.StatusesWithProductNames()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"orders": rows})
}

// GET /admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.userService.ListUsers(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(users, total, params)
	utils.PaginatedResponse(c, result)
}

// PUT /admin/users/:id/status
func (h *AdminHandler) UpdateUserStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return
	}

	var req services.AdminUpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	user, err := h.userService.UpdateUserStatus(id, &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"user": user})
}

// DELETE /admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "User deleted"})
}

// GET /admin/notifications
func (h *AdminHandler) GetNotifications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	notifications, err := h.notificationService.ListUnread(limit)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"notifications": notifications})
}

// PUT /admin/notifications/:id/read
func (h *AdminHandler) MarkNotificationRead(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		utils.BadRequestResponse(c, "Invalid notification ID", nil)
		return
	}

	if err := h.notificationService.MarkRead(id); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Notification marked as read"})
}
