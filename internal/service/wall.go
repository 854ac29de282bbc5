package service

import (
	"errors"
	"strings"

	"sportsvitae/backend/internal/models"

	"gorm.io/gorm"
)

// PostInput carries a wall post's typed payload. Exactly one payload
// variant survives creation; the others are nulled out per PostType.
type PostInput struct {
	Text      string
	PostImage string
	Location  string
	PostType  int
}

// CreatePost validates the payload against its type and creates the post.
// A missing type defaults to a text post.
func CreatePost(db *gorm.DB, ownerID uint, in PostInput) (*models.UserWallPost, error) {
	if _, err := GetUser(db, ownerID); err != nil {
		return nil, err
	}

	if in.PostType == 0 {
		in.PostType = models.PostTypeText
	}

	post := models.UserWallPost{OwnerID: ownerID, PostType: in.PostType}
	switch in.PostType {
	case models.PostTypeText:
		if strings.TrimSpace(in.Text) == "" {
			return nil, newValidationError("text", "Please enter some text.")
		}
		post.Text = &in.Text
	case models.PostTypeImage:
		if in.PostImage == "" {
			return nil, newValidationError("post_image", "Please upload a image.")
		}
		post.PostImage = &in.PostImage
		if in.Text != "" {
			post.Text = &in.Text
		}
	case models.PostTypeLocation:
		if strings.TrimSpace(in.Location) == "" {
			return nil, newValidationError("location", "Please enter a location.")
		}
		post.Location = &in.Location
		if in.Text != "" {
			post.Text = &in.Text
		}
	default:
		return nil, newValidationError("post_type", "Invalid post type.")
	}

	if err := db.Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func getPost(db *gorm.DB, postID uint) (*models.UserWallPost, error) {
	var post models.UserWallPost
	err := db.First(&post, postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func getComment(db *gorm.DB, commentID uint) (*models.UserWallPostComment, error) {
	var comment models.UserWallPostComment
	err := db.First(&comment, commentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeletePost removes a post together with all its comments and like rows.
// Only the owner may delete.
func DeletePost(db *gorm.DB, actorID, postID uint) error {
	post, err := getPost(db, postID)
	if err != nil {
		return err
	}
	if post.OwnerID != actorID {
		return ErrForbidden
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM user_wall_post_comment_likes WHERE user_wall_post_comment_id IN (SELECT id FROM user_wall_post_comments WHERE user_wall_post_id = ?)",
			post.ID,
		).Error; err != nil {
			return err
		}
		if err := tx.Where("user_wall_post_id = ?", post.ID).Delete(&models.UserWallPostComment{}).Error; err != nil {
			return err
		}
		if err := tx.Model(post).Association("Likes").Clear(); err != nil {
			return err
		}
		return tx.Delete(post).Error
	})
}

// LikePost records a like. Liking an already-liked post is a no-op; the
// join table holds at most one row per (post, user).
func LikePost(db *gorm.DB, actorID, postID uint) error {
	post, err := getPost(db, postID)
	if err != nil {
		return err
	}
	if err := db.Model(post).Association("Likes").Append(&models.User{ID: actorID}); err != nil {
		return err
	}

	if post.OwnerID != actorID {
		Events.Publish(db, Event{
			Type:         EventPostLiked,
			ActorID:      actorID,
			TargetUserID: post.OwnerID,
			PostID:       post.ID,
		})
	}
	return nil
}

// UnlikePost removes a like. Unliking a never-liked post succeeds.
func UnlikePost(db *gorm.DB, actorID, postID uint) error {
	post, err := getPost(db, postID)
	if err != nil {
		return err
	}
	return db.Model(post).Association("Likes").Delete(&models.User{ID: actorID})
}

// CreateComment records a comment by any complete user on any wall post.
func CreateComment(db *gorm.DB, actorID, postID uint, text string) (*models.UserWallPostComment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, newValidationError("comment", "This field is required.")
	}

	post, err := getPost(db, postID)
	if err != nil {
		return nil, err
	}

	comment := models.UserWallPostComment{
		CommentByID:    actorID,
		UserWallPostID: post.ID,
		Comment:        text,
	}
	if err := db.Create(&comment).Error; err != nil {
		return nil, err
	}

	if post.OwnerID != actorID {
		Events.Publish(db, Event{
			Type:         EventPostCommented,
			ActorID:      actorID,
			TargetUserID: post.OwnerID,
			PostID:       post.ID,
		})
	}
	return &comment, nil
}

// DeleteComment removes a comment. Only its author may delete it.
func DeleteComment(db *gorm.DB, actorID, commentID uint) error {
	comment, err := getComment(db, commentID)
	if err != nil {
		return err
	}
	if comment.CommentByID != actorID {
		return ErrForbidden
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(comment).Association("Likes").Clear(); err != nil {
			return err
		}
		return tx.Delete(comment).Error
	})
}

// LikeComment records a like on a comment, idempotently.
func LikeComment(db *gorm.DB, actorID, commentID uint) error {
	comment, err := getComment(db, commentID)
	if err != nil {
		return err
	}
	return db.Model(comment).Association("Likes").Append(&models.User{ID: actorID})
}

// UnlikeComment removes a like on a comment; absent likes are a no-op.
func UnlikeComment(db *gorm.DB, actorID, commentID uint) error {
	comment, err := getComment(db, commentID)
	if err != nil {
		return err
	}
	return db.Model(comment).Association("Likes").Delete(&models.User{ID: actorID})
}

// ListComments returns a post's comments, oldest first.
func ListComments(db *gorm.DB, postID uint) ([]models.UserWallPostComment, error) {
	if _, err := getPost(db, postID); err != nil {
		return nil, err
	}
	var comments []models.UserWallPostComment
	err := db.Preload("CommentBy").Preload("Likes").
		Where("user_wall_post_id = ?", postID).
		Order("commented_on asc").
		Find(&comments).Error
	return comments, err
}

// WallFeed returns the query for posts owned by the user or any of their
// friends, newest first, with likes and oldest-first comments attached. The
// caller paginates it.
func WallFeed(db *gorm.DB, userID uint) (*gorm.DB, error) {
	friendIDs, err := FriendIDs(db, userID)
	if err != nil {
		return nil, err
	}
	ownerIDs := append([]uint{userID}, friendIDs...)

	query := db.Model(&models.UserWallPost{}).
		Preload("Owner").Preload("Likes").
		Preload("Comments", func(tx *gorm.DB) *gorm.DB { return tx.Order("commented_on asc") }).
		Preload("Comments.CommentBy").
		Where("owner_id IN ?", ownerIDs).
		Order("posted_on desc")
	return query, nil
}

// MyPosts returns the user's own posts, newest first, as a query for the
// paginated listing endpoint.
func MyPosts(db *gorm.DB, userID uint) *gorm.DB {
	return db.Model(&models.UserWallPost{}).
		Preload("Likes").
		Preload("Comments", func(tx *gorm.DB) *gorm.DB { return tx.Order("commented_on asc") }).
		Where("owner_id = ?", userID).
		Order("posted_on desc")
}
