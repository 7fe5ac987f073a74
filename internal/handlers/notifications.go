package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"health-bridge-server/internal/models"
	"health-bridge-server/internal/utils"
)

// NotificationHandler serves the broadcast notification feed. The websocket
// fan-out has no replay, so clients that were offline catch up here.
type NotificationHandler struct {
	DB *gorm.DB
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{DB: db}
}

// ListNotifications handles fetching recent broadcast notifications, newest
// first.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	limit, offset := parsePagination(c)

	var notifications []models.Notification
	if err := h.DB.Where("is_broadcast = ?", true).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&notifications).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch notifications: "+err.Error())
		return
	}

	utils.Success(c, "Notifications fetched successfully", gin.H{"notifications": notifications})
}
