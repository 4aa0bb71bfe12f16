// controllers/notification.go - In-app notifications
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"manuscript-review-api/config"
	"manuscript-review-api/models"

	"github.com/gin-gonic/gin"
)

// GetNotifications lists the caller's notifications, newest first.
func GetNotifications(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	unreadOnly := c.Query("unread") == "true"

	var notifications []models.Notification
	query := config.DB.Where("user_id = ?", actor.UserID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	if err := query.Order("create_at DESC").Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"notifications": notifications,
		"total":         len(notifications),
	})
}

// MarkNotificationRead marks one of the caller's notifications as read.
func MarkNotificationRead(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	notificationID, err := strconv.Atoi(c.Param("id"))
	if err != nil || notificationID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	now := time.Now()
	res := config.DB.Model(&models.Notification{}).
		Where("notification_id = ? AND user_id = ?", notificationID, actor.UserID).
		Updates(map[string]interface{}{
			"is_read":   true,
			"update_at": &now,
		})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Notification marked as read",
	})
}
