package service

import (
	"testing"
	"time"

	"sportsvitae/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostTypes(t *testing.T) {
	db := newTestDB(t)
	alice := newCompleteUser(t, db, "Alice", 1)

	// Missing type defaults to text.
	post, err := CreatePost(db, alice.ID, PostInput{Text: "first innings done"})
	require.NoError(t, err)
	assert.Equal(t, models.PostTypeText, post.PostType)
	require.NotNil(t, post.Text)
	assert.Equal(t, "first innings done", *post.Text)

	_, err = CreatePost(db, alice.ID, PostInput{PostType: models.PostTypeText, Text: "  "})
	requireValidationField(t, err, "text")

	_, err = CreatePost(db, alice.ID, PostInput{PostType: models.PostTypeImage, Text: "caption only"})
	requireValidationField(t, err, "post_image")

	image, err := CreatePost(db, alice.ID, PostInput{
		PostType:  models.PostTypeImage,
		PostImage: "uploads/cover-drive.jpg",
		Text:      "caption",
		Location:  "ignored",
	})
	require.NoError(t, err)
	require.NotNil(t, image.PostImage)
	require.NotNil(t, image.Text)
	assert.Nil(t, image.Location)

	_, err = CreatePost(db, alice.ID, PostInput{PostType: models.PostTypeLocation})
	requireValidationField(t, err, "location")

	location, err := CreatePost(db, alice.ID, PostInput{PostType: models.PostTypeLocation, Location: "Eden Gardens"})
	require.NoError(t, err)
	require.NotNil(t, location.Location)
	assert.Nil(t, location.PostImage)

	_, err = CreatePost(db, alice.ID, PostInput{PostType: 9, Text: "whatever"})
	requireValidationField(t, err, "post_type")

	_, err = CreatePost(db, 9999, PostInput{Text: "ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLikePostIdempotent(t *testing.T) {
	db := newTestDB(t)
	alice := newCompleteUser(t, db, "Alice", 1)
	bob := newCompleteUser(t, db, "Bob", 1)

	post, err := CreatePost(db, alice.ID, PostInput{Text: "century!"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, LikePost(db, bob.ID, post.ID))
	}

	var likes int64
	require.NoError(t, db.Table("user_wall_post_likes").
		Where("user_wall_post_id = ?", post.ID).Count(&likes).Error)
	assert.EqualValues(t, 1, likes)

	require.NoError(t, UnlikePost(db, bob.ID, post.ID))
	require.NoError(t, UnlikePost(db, bob.ID, post.ID))

	require.NoError(t, db.Table("user_wall_post_likes").
		Where("user_wall_post_id = ?", post.ID).Count(&likes).Error)
	assert.EqualValues(t, 0, likes)
}

func TestLikePostNotifiesOwner(t *testing.T) {
	db := newTestDB(t)
	setupNotifier(t)
	alice := newCompleteUser(t, db, "Alice", 1)
	bob := newCompleteUser(t, db, "Bob", 1)

	post, err := CreatePost(db, alice.ID, PostInput{Text: "century!"})
	require.NoError(t, err)

	// Liking your own post notifies nobody.
	require.NoError(t, LikePost(db, alice.ID, post.ID))
	notifications, err := ListNotifications(db, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, notifications)

	require.NoError(t, LikePost(db, bob.ID, post.ID))
	notifications, err = ListNotifications(db, alice.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationPostLike, notifications[0].NotificationType)
	assert.Equal(t, "Bob Tester has Liked Your Post", notifications[0].Message)
}

func TestCreateCommentNotifiesOwner(t *testing.T) {
	db := newTestDB(t)
	setupNotifier(t)
	alice := newCompleteUser(t, db, "Alice", 1)
	bob := newCompleteUser(t, db, "Bob", 1)

	post, err := CreatePost(db, alice.ID, PostInput{Text: "century!"})
	require.NoError(t, err)

	_, err = CreateComment(db, bob.ID, post.ID, " ")
	requireValidationField(t, err, "comment")

	_, err = CreateComment(db, bob.ID, post.ID, "great knock")
	require.NoError(t, err)

	// The owner commenting on their own post notifies nobody.
	_, err = CreateComment(db, alice.ID, post.ID, "thanks!")
	require.NoError(t, err)

	notifications, err := ListNotifications(db, alice.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationPostComment, notifications[0].NotificationType)
	assert.Equal(t, "Bob Tester has commented on Your Post", notifications[0].Message)
}

func TestDeletePostCascades(t *testing.T) {
	db := newTestDB(t)
	alice := newCompleteUser(t, db, "Alice", 1)
	bob := newCompleteUser(t, db, "Bob", 1)

	post, err := CreatePost(db, alice.ID, PostInput{Text: "century!"})
	require.NoError(t, err)
	comment, err := CreateComment(db, bob.ID, post.ID, "great knock")
	require.NoError(t, err)
	require.NoError(t, LikePost(db, bob.ID, post.ID))
	require.NoError(t, LikeComment(db, alice.ID, comment.ID))

	assert.ErrorIs(t, DeletePost(db, bob.ID, post.ID), ErrForbidden)
	require.NoError(t, DeletePost(db, alice.ID, post.ID))

	var count int64
	require.NoError(t, db.Model(&models.UserWallPost{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	require.NoError(t, db.Model(&models.UserWallPostComment{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	require.NoError(t, db.Table("user_wall_post_likes").Count(&count).Error)
	assert.EqualValues(t, 0, count)
	require.NoError(t, db.Table("user_wall_post_comment_likes").Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestDeleteCommentAuthorOnly(t *testing.T) {
	db := newTestDB(t)
	alice := newCompleteUser(t, db, "Alice", 1)
	bob := newCompleteUser(t, db, "Bob", 1)

	post, err := CreatePost(db, alice.ID, PostInput{Text: "century!"})
	require.NoError(t, err)
	comment, err := CreateComment(db, bob.ID, post.ID, "great knock")
	require.NoError(t, err)

	// Not even the post's owner may delete someone else's comment.
	assert.ErrorIs(t, DeleteComment(db, alice.ID, comment.ID), ErrForbidden)
	require.NoError(t, DeleteComment(db, bob.ID, comment.ID))
	assert.ErrorIs(t, DeleteComment(db, bob.ID, comment.ID), ErrNotFound)
}

func TestCommentLikesIdempotent(t *testing.T) {
	db := newTestDB(t)
	alice := newCompleteUser(t, db, "Alice", 1)
	bob := newCompleteUser(t, db, "Bob", 1)

	post, err := CreatePost(db, alice.ID, PostInput{Text: "century!"})
	require.NoError(t, err)
	comment, err := CreateComment(db, bob.ID, post.ID, "great knock")
	require.NoError(t, err)

	require.NoError(t, LikeComment(db, alice.ID, comment.ID))
	require.NoError(t, LikeComment(db, alice.ID, comment.ID))

	var likes int64
	require.NoError(t, db.Table("user_wall_post_comment_likes").
		Where("user_wall_post_comment_id = ?", comment.ID).Count(&likes).Error)
	assert.EqualValues(t, 1, likes)

	require.NoError(t, UnlikeComment(db, alice.ID, comment.ID))
	require.NoError(t, UnlikeComment(db, alice.ID, comment.ID))
}

func TestListCommentsOldestFirst(t *testing.T) {
	db := newTestDB(t)
	alice := newCompleteUser(t, db, "Alice", 1)
	bob := newCompleteUser(t, db, "Bob", 1)

	post, err := CreatePost(db, alice.ID, PostInput{Text: "century!"})
	require.NoError(t, err)

	base := time.Now().Add(-time.Hour)
	first, err := CreateComment(db, bob.ID, post.ID, "great knock")
	require.NoError(t, err)
	second, err := CreateComment(db, alice.ID, post.ID, "thanks!")
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.UserWallPostComment{}).Where("id = ?", first.ID).
		Update("commented_on", base).Error)
	require.NoError(t, db.Model(&models.UserWallPostComment{}).Where("id = ?", second.ID).
		Update("commented_on", base.Add(time.Minute)).Error)

	comments, err := ListComments(db, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, first.ID, comments[0].ID)
	assert.Equal(t, second.ID, comments[1].ID)
	assert.Equal(t, "Bob", comments[0].CommentBy.FirstName)

	_, err = ListComments(db, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWallFeed(t *testing.T) {
	db := newTestDB(t)
	alice := newCompleteUser(t, db, "Alice", 1)
	bob := newCompleteUser(t, db, "Bob", 1)
	stranger := newCompleteUser(t, db, "Carol", 1)
	befriend(t, db, alice, bob)

	base := time.Now().Add(-time.Hour)
	own, err := CreatePost(db, alice.ID, PostInput{Text: "mine"})
	require.NoError(t, err)
	friends, err := CreatePost(db, bob.ID, PostInput{Text: "from a friend"})
	require.NoError(t, err)
	_, err = CreatePost(db, stranger.ID, PostInput{Text: "from a stranger"})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.UserWallPost{}).Where("id = ?", own.ID).
		Update("posted_on", base).Error)
	require.NoError(t, db.Model(&models.UserWallPost{}).Where("id = ?", friends.ID).
		Update("posted_on", base.Add(time.Minute)).Error)

	_, err = CreateComment(db, alice.ID, friends.ID, "nice one")
	require.NoError(t, err)

	query, err := WallFeed(db, alice.ID)
	require.NoError(t, err)
	var feed []models.UserWallPost
	require.NoError(t, query.Find(&feed).Error)
	require.Len(t, feed, 2)
	assert.Equal(t, friends.ID, feed[0].ID)
	assert.Equal(t, own.ID, feed[1].ID)
	assert.Equal(t, "Bob", feed[0].Owner.FirstName)
	require.Len(t, feed[0].Comments, 1)
	assert.Equal(t, "Alice", feed[0].Comments[0].CommentBy.FirstName)
}

func TestMyPostsQuery(t *testing.T) {
	db := newTestDB(t)
	alice := newCompleteUser(t, db, "Alice", 1)
	bob := newCompleteUser(t, db, "Bob", 1)

	_, err := CreatePost(db, alice.ID, PostInput{Text: "mine"})
	require.NoError(t, err)
	_, err = CreatePost(db, bob.ID, PostInput{Text: "not mine"})
	require.NoError(t, err)

	var posts []models.UserWallPost
	require.NoError(t, MyPosts(db, alice.ID).Find(&posts).Error)
	require.Len(t, posts, 1)
	assert.Equal(t, alice.ID, posts[0].OwnerID)
}
