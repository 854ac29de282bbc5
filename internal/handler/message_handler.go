package handler

import (
	"net/http"

	"sportsvitae/backend/internal/database"
	"sportsvitae/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// SendMessageInput defines a direct message.
type SendMessageInput struct {
	RecipientID uint   `json:"recipient_id" binding:"required"`
	Text        string `json:"text" binding:"required"`
}

// MarkMessagesReadInput carries the senders whose messages to mark read.
type MarkMessagesReadInput struct {
	SenderIDs []uint `json:"message_sender_ids"`
}

// SendMessage godoc
// @Summary      Send a direct message
// @Description  Friendship is not required to message a user.
// @Tags         messaging
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SendMessageInput true "Message"
// @Success      201  {object}  models.Message
// @Failure      400  {object}  ErrorResponse
// @Router       /messages [post]
func SendMessage(c *gin.Context) {
	var input SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := service.SendMessage(database.DB, currentUserID(c), input.RecipientID, input.Text)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, message)
}

// GetChat godoc
// @Summary      Get the chat with a friend
// @Description  Messages between the two users from the caller's perspective, oldest first. Rows hidden by the caller's own chat deletion are excluded.
// @Tags         messaging
// @Produce      json
// @Security     BearerAuth
// @Param        friend_id query int true "Counterpart user ID"
// @Success      200  {array}   models.Message
// @Failure      400  {object}  ErrorResponse
// @Router       /messages [get]
func GetChat(c *gin.Context) {
	friendID, ok := queryID(c, "friend_id")
	if !ok {
		return
	}

	messages, err := service.ChatBetween(database.DB, currentUserID(c), friendID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// GetLatestReceivedMessages godoc
// @Summary      Latest received messages
// @Description  The single most recent message from each of the last 3 counterparts, unread senders first.
// @Tags         messaging
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.Message
// @Router       /messages/latest [get]
func GetLatestReceivedMessages(c *gin.Context) {
	messages, err := service.LatestReceivedMessages(database.DB, currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// MarkMessagesRead godoc
// @Summary      Mark messages read
// @Description  Bulk-clears the unread flag on all messages from the given senders.
// @Tags         messaging
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body MarkMessagesReadInput true "Sender IDs"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  ErrorResponse
// @Router       /messages/mark-read [post]
func MarkMessagesRead(c *gin.Context) {
	var input MarkMessagesReadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := service.MarkMessagesRead(database.DB, currentUserID(c), input.SenderIDs); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Marked read"})
}

// DeleteChatHistory godoc
// @Summary      Delete the chat history with a friend
// @Description  Hides the conversation from the caller's view only; the other party's view is unaffected.
// @Tags         messaging
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Friend user ID"
// @Success      204  "No Content"
// @Failure      404  {object}  ErrorResponse
// @Router       /messages/chat/{id} [delete]
func DeleteChatHistory(c *gin.Context) {
	friendID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := service.DeleteChatHistory(database.DB, currentUserID(c), friendID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
