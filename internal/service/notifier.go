package service

import (
	"fmt"

	"sportsvitae/backend/internal/mailer"
	"sportsvitae/backend/internal/models"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Notifier is the event listener that turns domain events into
// UserNotification rows plus a best-effort email. A mail failure is logged
// and swallowed; it must never fail the triggering request.
type Notifier struct {
	mail mailer.Sender
	log  zerolog.Logger
}

func NewNotifier(mail mailer.Sender, log zerolog.Logger) *Notifier {
	return &Notifier{mail: mail, log: log}
}

// Register subscribes the notifier to all notification-producing events.
func (n *Notifier) Register(d *Dispatcher) {
	d.Subscribe(EventFriendRequestAccepted, n.onFriendRequestAccepted)
	d.Subscribe(EventPostCommented, n.onPostCommented)
	d.Subscribe(EventPostLiked, n.onPostLiked)
}

func (n *Notifier) onFriendRequestAccepted(db *gorm.DB, e Event) {
	actor, err := GetUser(db, e.ActorID)
	if err != nil {
		n.log.Warn().Err(err).Uint("user_id", e.ActorID).Msg("notification actor lookup failed")
		return
	}
	n.create(db, e.TargetUserID, models.NotificationFriendRequestAccepted, actor.FullName(),
		fmt.Sprintf("/users/%s/", actor.Slug), actor.DisplayPicture)
}

func (n *Notifier) onPostCommented(db *gorm.DB, e Event) {
	actor, err := GetUser(db, e.ActorID)
	if err != nil {
		n.log.Warn().Err(err).Uint("user_id", e.ActorID).Msg("notification actor lookup failed")
		return
	}
	n.create(db, e.TargetUserID, models.NotificationPostComment, actor.FullName(),
		fmt.Sprintf("/user/post/%d/", e.PostID), actor.DisplayPicture)
}

func (n *Notifier) onPostLiked(db *gorm.DB, e Event) {
	actor, err := GetUser(db, e.ActorID)
	if err != nil {
		n.log.Warn().Err(err).Uint("user_id", e.ActorID).Msg("notification actor lookup failed")
		return
	}
	n.create(db, e.TargetUserID, models.NotificationPostLike, actor.FullName(),
		fmt.Sprintf("/user/post/%d/", e.PostID), actor.DisplayPicture)
}

func (n *Notifier) create(db *gorm.DB, userID uint, t models.NotificationType, friendName, clickURL, displayPicture string) {
	notification := models.UserNotification{
		UserID:           userID,
		Message:          models.RenderNotificationMessage(t, friendName),
		NotificationType: t,
		ClickURL:         clickURL,
		DisplayPicture:   displayPicture,
	}
	if err := db.Create(&notification).Error; err != nil {
		n.log.Error().Err(err).Uint("user_id", userID).Msg("failed to create notification")
		return
	}

	recipient, err := GetUser(db, userID)
	if err != nil {
		n.log.Warn().Err(err).Uint("user_id", userID).Msg("notification recipient lookup failed")
		return
	}
	if err := mailer.SendNotificationMail(n.mail, recipient.Email, notification.Message, notification.ClickURL); err != nil {
		// Fire and forget: mail failures never propagate.
		n.log.Warn().Err(err).Str("email", recipient.Email).Msg("notification mail failed")
	}
}

// ListNotifications returns a user's notifications, unviewed first, newest
// first within each group.
func ListNotifications(db *gorm.DB, userID uint) ([]models.UserNotification, error) {
	var notifications []models.UserNotification
	err := db.Where("user_id = ?", userID).
		Order("viewed asc").Order("created_on desc").
		Find(&notifications).Error
	return notifications, err
}

// LatestNotifications returns the top 3 notifications.
func LatestNotifications(db *gorm.DB, userID uint) ([]models.UserNotification, error) {
	notifications, err := ListNotifications(db, userID)
	if err != nil {
		return nil, err
	}
	if len(notifications) > 3 {
		notifications = notifications[:3]
	}
	return notifications, nil
}

// MarkNotificationsViewed bulk-marks a user's notifications viewed.
func MarkNotificationsViewed(db *gorm.DB, userID uint, ids []uint) error {
	if len(ids) == 0 {
		return newValidationError("user_notifications_viewed", "This field is required.")
	}
	return db.Model(&models.UserNotification{}).
		Where("user_id = ? AND id IN ?", userID, ids).
		Update("viewed", true).Error
}
