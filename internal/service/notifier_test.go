package service

import (
	"testing"
	"time"

	"sportsvitae/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationMailFailureIsSwallowed(t *testing.T) {
	db := newTestDB(t)
	mail := setupNotifier(t)
	mail.Fail = true

	alice := newCompleteUser(t, db, "Alice", 1)
	bob := newCompleteUser(t, db, "Bob", 1)

	request, err := SendFriendRequest(db, alice.ID, bob.ID)
	require.NoError(t, err)

	// The accept must succeed even though every mail send errors.
	require.NoError(t, AcceptFriendRequest(db, bob.ID, request.ID))

	notifications, err := ListNotifications(db, alice.ID)
	require.NoError(t, err)
	assert.Len(t, notifications, 1)
	assert.Empty(t, mail.Sent)
}

func TestNotificationClickURLs(t *testing.T) {
	db := newTestDB(t)
	setupNotifier(t)

	alice := newCompleteUser(t, db, "Alice", 1)
	bob := newCompleteUser(t, db, "Bob", 1)
	befriend(t, db, alice, bob)

	post, err := CreatePost(db, alice.ID, PostInput{Text: "century!"})
	require.NoError(t, err)
	require.NoError(t, LikePost(db, bob.ID, post.ID))

	notifications, err := ListNotifications(db, alice.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 2)

	byType := map[models.NotificationType]models.UserNotification{}
	for _, n := range notifications {
		byType[n.NotificationType] = n
	}
	assert.Equal(t, "/users/"+bob.Slug+"/", byType[models.NotificationFriendRequestAccepted].ClickURL)
	assert.Contains(t, byType[models.NotificationPostLike].ClickURL, "/user/post/")
}

func TestListNotificationsOrdering(t *testing.T) {
	db := newTestDB(t)
	alice := newCompleteUser(t, db, "Alice", 1)

	base := time.Now().Add(-time.Hour)
	seed := func(message string, offset time.Duration, viewed bool) models.UserNotification {
		n := models.UserNotification{
			UserID:           alice.ID,
			Message:          message,
			NotificationType: models.NotificationPostLike,
		}
		require.NoError(t, db.Create(&n).Error)
		require.NoError(t, db.Model(&n).
			Updates(map[string]any{"created_on": base.Add(offset), "viewed": viewed}).Error)
		return n
	}

	oldViewed := seed("viewed", time.Minute, true)
	older := seed("older", 2*time.Minute, false)
	newest := seed("newest", 3*time.Minute, false)

	notifications, err := ListNotifications(db, alice.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 3)
	assert.Equal(t, newest.ID, notifications[0].ID)
	assert.Equal(t, older.ID, notifications[1].ID)
	assert.Equal(t, oldViewed.ID, notifications[2].ID)

	seed("fourth", 4*time.Minute, false)
	latest, err := LatestNotifications(db, alice.ID)
	require.NoError(t, err)
	assert.Len(t, latest, 3)
}

func TestMarkNotificationsViewed(t *testing.T) {
	db := newTestDB(t)
	alice := newCompleteUser(t, db, "Alice", 1)

	n := models.UserNotification{
		UserID:           alice.ID,
		Message:          "hello",
		NotificationType: models.NotificationPostComment,
	}
	require.NoError(t, db.Create(&n).Error)

	err := MarkNotificationsViewed(db, alice.ID, nil)
	requireValidationField(t, err, "user_notifications_viewed")

	require.NoError(t, MarkNotificationsViewed(db, alice.ID, []uint{n.ID}))

	var viewed models.UserNotification
	require.NoError(t, db.First(&viewed, n.ID).Error)
	assert.True(t, viewed.Viewed)
}
