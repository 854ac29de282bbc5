package models

import (
	"fmt"
	"time"
)

// NotificationType identifies which domain event produced a notification.
type NotificationType int

const (
	NotificationFriendRequestAccepted NotificationType = 1
	NotificationPostComment           NotificationType = 2
	NotificationPostLike              NotificationType = 3
)

var notificationTemplates = map[NotificationType]string{
	NotificationFriendRequestAccepted: "You and <b>%s</b> are now friends.",
	NotificationPostComment:           "%s has commented on Your Post",
	NotificationPostLike:              "%s has Liked Your Post",
}

// RenderNotificationMessage interpolates the counterpart's name into the
// per-type message template.
func RenderNotificationMessage(t NotificationType, friendName string) string {
	tpl, ok := notificationTemplates[t]
	if !ok {
		return friendName
	}
	return fmt.Sprintf(tpl, friendName)
}

// UserNotification is a rendered notification record. Rows are created only
// as a side effect of another domain event and are never mutated afterwards
// except for the Viewed flag.
type UserNotification struct {
	ID               uint             `gorm:"primarykey" json:"id"`
	UserID           uint             `gorm:"not null;index" json:"user_id"`
	Message          string           `gorm:"not null" json:"message"`
	NotificationType NotificationType `gorm:"not null" json:"notification_type"`
	Viewed           bool             `gorm:"not null;default:false" json:"viewed"`
	ClickURL         string           `json:"click_url"`
	DisplayPicture   string           `json:"display_picture,omitempty"`
	CreatedOn        time.Time        `gorm:"autoCreateTime" json:"created_on"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
