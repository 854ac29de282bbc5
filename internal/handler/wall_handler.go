package handler

import (
	"net/http"

	"sportsvitae/backend/internal/database"
	"sportsvitae/backend/internal/models"
	"sportsvitae/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// CreatePostInput defines a wall post's typed payload.
type CreatePostInput struct {
	Text      string `json:"text"`
	PostImage string `json:"post_image"`
	Location  string `json:"location"`
	PostType  int    `json:"post_type"`
}

// CreateCommentInput defines a comment on a wall post.
type CreateCommentInput struct {
	Comment string `json:"comment" binding:"required"`
}

// CreateWallPost godoc
// @Summary      Create a wall post
// @Description  post_type 1=text, 2=image, 3=location; missing type defaults to 1. Inactive payload fields are nulled out.
// @Tags         wall
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CreatePostInput true "Post"
// @Success      201  {object}  models.UserWallPost
// @Failure      400  {object}  ErrorResponse
// @Router       /wall/posts [post]
func CreateWallPost(c *gin.Context) {
	var input CreatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := service.CreatePost(database.DB, currentUserID(c), service.PostInput{
		Text:      input.Text,
		PostImage: input.PostImage,
		Location:  input.Location,
		PostType:  input.PostType,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// DeleteWallPost godoc
// @Summary      Delete a wall post
// @Description  Owner only; cascades to the post's comments.
// @Tags         wall
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      204  "No Content"
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /wall/posts/{id} [delete]
func DeleteWallPost(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := service.DeletePost(database.DB, currentUserID(c), postID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// LikeWallPost godoc
// @Summary      Like a wall post
// @Description  Idempotent; liking twice leaves a single like.
// @Tags         wall
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      201  {object}  map[string]string
// @Failure      404  {object}  ErrorResponse
// @Router       /wall/posts/{id}/like [post]
func LikeWallPost(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := service.LikePost(database.DB, currentUserID(c), postID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Liked"})
}

// UnlikeWallPost godoc
// @Summary      Unlike a wall post
// @Description  Idempotent; unliking a never-liked post succeeds.
// @Tags         wall
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      201  {object}  map[string]string
// @Failure      404  {object}  ErrorResponse
// @Router       /wall/posts/{id}/unlike [post]
func UnlikeWallPost(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := service.UnlikePost(database.DB, currentUserID(c), postID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Unliked"})
}

// GetWallPostComments godoc
// @Summary      List a post's comments
// @Description  Oldest first.
// @Tags         wall
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      200  {array}   models.UserWallPostComment
// @Failure      404  {object}  ErrorResponse
// @Router       /wall/posts/{id}/comments [get]
func GetWallPostComments(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	comments, err := service.ListComments(database.DB, postID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// CreateWallPostComment godoc
// @Summary      Comment on a wall post
// @Description  Any authenticated user may comment on any post; the owner is notified.
// @Tags         wall
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Param        input body CreateCommentInput true "Comment"
// @Success      201  {object}  models.UserWallPostComment
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /wall/posts/{id}/comments [post]
func CreateWallPostComment(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input CreateCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := service.CreateComment(database.DB, currentUserID(c), postID, input.Comment)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// DeleteWallPostComment godoc
// @Summary      Delete a comment
// @Description  Author only.
// @Tags         wall
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Comment ID"
// @Success      204  "No Content"
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /wall/comments/{id} [delete]
func DeleteWallPostComment(c *gin.Context) {
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := service.DeleteComment(database.DB, currentUserID(c), commentID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// LikeComment godoc
// @Summary      Like a comment
// @Tags         wall
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Comment ID"
// @Success      201  {object}  map[string]string
// @Failure      404  {object}  ErrorResponse
// @Router       /wall/comments/{id}/like [post]
func LikeComment(c *gin.Context) {
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := service.LikeComment(database.DB, currentUserID(c), commentID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Liked"})
}

// UnlikeComment godoc
// @Summary      Unlike a comment
// @Tags         wall
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Comment ID"
// @Success      201  {object}  map[string]string
// @Failure      404  {object}  ErrorResponse
// @Router       /wall/comments/{id}/unlike [post]
func UnlikeComment(c *gin.Context) {
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := service.UnlikeComment(database.DB, currentUserID(c), commentID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Unliked"})
}

// GetWallFeed godoc
// @Summary      Get the wall feed
// @Description  Posts owned by the caller or any friend, newest first, with likes and oldest-first comments.
// @Tags         wall
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[models.UserWallPost]
// @Router       /wall [get]
func GetWallFeed(c *gin.Context) {
	page, limit := pageParams(c)

	query, err := service.WallFeed(database.DB, currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response, err := Paginate[models.UserWallPost](query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve feed"})
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetMyPosts godoc
// @Summary      List the caller's own posts
// @Tags         wall
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[models.UserWallPost]
// @Router       /wall/my-posts [get]
func GetMyPosts(c *gin.Context) {
	page, limit := pageParams(c)

	response, err := Paginate[models.UserWallPost](service.MyPosts(database.DB, currentUserID(c)), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posts"})
		return
	}
	c.JSON(http.StatusOK, response)
}
