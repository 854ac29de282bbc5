package handler

import (
	"net/http"

	"sportsvitae/backend/internal/database"
	"sportsvitae/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// MarkNotificationsViewedInput carries the notifications to mark viewed.
type MarkNotificationsViewedInput struct {
	IDs []uint `json:"user_notifications_viewed"`
}

// GetNotifications godoc
// @Summary      List notifications
// @Description  Unviewed notifications first, newest first within each group. ?latest=true caps the list at 3.
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        latest query bool false "Return only the top 3"
// @Success      200  {array}   models.UserNotification
// @Router       /notifications [get]
func GetNotifications(c *gin.Context) {
	var (
		notifications any
		err           error
	)
	if c.Query("latest") == "true" {
		notifications, err = service.LatestNotifications(database.DB, currentUserID(c))
	} else {
		notifications, err = service.ListNotifications(database.DB, currentUserID(c))
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// MarkNotificationsViewed godoc
// @Summary      Mark notifications viewed
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body MarkNotificationsViewedInput true "Notification IDs"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  ErrorResponse
// @Router       /notifications/mark-viewed [post]
func MarkNotificationsViewed(c *gin.Context) {
	var input MarkNotificationsViewedInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := service.MarkNotificationsViewed(database.DB, currentUserID(c), input.IDs); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Marked viewed"})
}
