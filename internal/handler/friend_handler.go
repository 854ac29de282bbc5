package handler

import (
	"net/http"

	"sportsvitae/backend/internal/database"
	"sportsvitae/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// SendFriendRequestInput names the request's target.
type SendFriendRequestInput struct {
	ToUserID uint `json:"to_user_id" binding:"required"`
}

// UnfriendInput names the friend to remove.
type UnfriendInput struct {
	FriendID uint `json:"friend_id" binding:"required"`
}

// MarkFriendRequestsViewedInput carries the requests to mark viewed.
type MarkFriendRequestsViewedInput struct {
	IDs []uint `json:"friend_requests_viewed"`
}

// SendFriendRequest godoc
// @Summary      Send friend request
// @Description  Sends a friend request to another user. Repeated sends are a validation error, never a duplicate row.
// @Tags         friendship
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SendFriendRequestInput true "Target"
// @Success      201  {object}  models.FriendRequest
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /friend-requests [post]
func SendFriendRequest(c *gin.Context) {
	var input SendFriendRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := service.SendFriendRequest(database.DB, currentUserID(c), input.ToUserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

// AcceptFriendRequest godoc
// @Summary      Accept a friend request
// @Description  Establishes the symmetric friendship and deletes any reverse pending request.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Friend request ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /friend-requests/{id}/accept [post]
func AcceptFriendRequest(c *gin.Context) {
	requestID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := service.AcceptFriendRequest(database.DB, currentUserID(c), requestID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Request accepted"})
}

// RejectFriendRequest godoc
// @Summary      Reject a friend request
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Friend request ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /friend-requests/{id}/reject [post]
func RejectFriendRequest(c *gin.Context) {
	requestID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := service.RejectFriendRequest(database.DB, currentUserID(c), requestID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Request rejected"})
}

// CancelFriendRequest godoc
// @Summary      Cancel a sent friend request
// @Description  The sender retracts their own request; a reverse request is preserved.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Friend request ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /friend-requests/{id}/cancel [post]
func CancelFriendRequest(c *gin.Context) {
	requestID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := service.CancelFriendRequest(database.DB, currentUserID(c), requestID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Request cancelled"})
}

// UnfriendUser godoc
// @Summary      Unfriend a user
// @Description  Removes the symmetric edge and deletes any request rows in either direction.
// @Tags         friendship
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body UnfriendInput true "Friend"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  ErrorResponse
// @Router       /friends/unfriend [post]
func UnfriendUser(c *gin.Context) {
	var input UnfriendInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := service.Unfriend(database.DB, currentUserID(c), input.FriendID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Unfriended"})
}

// GetFriendRequests godoc
// @Summary      List pending friend requests
// @Description  Not-yet-viewed requests first, most recently sent first within each group. ?latest=true caps the list at 3.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        latest query bool false "Return only the top 3"
// @Success      200  {array}   models.FriendRequest
// @Router       /friend-requests [get]
func GetFriendRequests(c *gin.Context) {
	var (
		requests any
		err      error
	)
	if c.Query("latest") == "true" {
		requests, err = service.LatestFriendRequests(database.DB, currentUserID(c))
	} else {
		requests, err = service.ListFriendRequests(database.DB, currentUserID(c))
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// MarkFriendRequestsViewed godoc
// @Summary      Mark friend requests viewed
// @Tags         friendship
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body MarkFriendRequestsViewedInput true "Request IDs"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  ErrorResponse
// @Router       /friend-requests/mark-viewed [post]
func MarkFriendRequestsViewed(c *gin.Context) {
	var input MarkFriendRequestsViewedInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := service.MarkFriendRequestsViewed(database.DB, currentUserID(c), input.IDs); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Marked viewed"})
}
