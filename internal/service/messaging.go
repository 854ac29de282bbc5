package service

import (
	"strings"

	"sportsvitae/backend/internal/models"

	"gorm.io/gorm"
)

// SendMessage sends a direct message. Friendship is not required, but both
// parties must be complete users.
func SendMessage(db *gorm.DB, senderID, recipientID uint, text string) (*models.Message, error) {
	if senderID == recipientID {
		return nil, newValidationError("recipient", "Cannot send message to ourselves.")
	}
	if strings.TrimSpace(text) == "" {
		return nil, newValidationError("text", "This field is required.")
	}

	sender, err := GetUser(db, senderID)
	if err != nil {
		return nil, err
	}
	recipient, err := GetUser(db, recipientID)
	if err != nil {
		return nil, err
	}

	if !sender.IsComplete() {
		return nil, newValidationError("sender", "Only fully registered users can send messages.")
	}
	if !recipient.IsComplete() {
		return nil, newValidationError("recipient", "Only fully registered users can receive messages.")
	}

	message := models.Message{SenderID: senderID, RecipientID: recipientID, Text: text}
	if err := db.Create(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// ChatBetween returns the conversation between two users from userID's
// perspective, oldest first. Each side's deletion flag only hides the rows
// of that side's view; the other party's view is unaffected.
func ChatBetween(db *gorm.DB, userID, friendID uint) ([]models.Message, error) {
	var messages []models.Message
	err := db.Where(
		"(sender_id = ? AND recipient_id = ? AND deleted_by_sender = ?) OR (sender_id = ? AND recipient_id = ? AND deleted_by_recipient = ?)",
		userID, friendID, false, friendID, userID, false,
	).Order("sent_on asc").Find(&messages).Error
	return messages, err
}

// DeleteChatHistory hides the whole conversation with a friend from the
// caller's view. Rows are kept for the other party.
func DeleteChatHistory(db *gorm.DB, userID, friendID uint) error {
	friends, err := AreFriends(db, userID, friendID)
	if err != nil {
		return err
	}
	if !friends {
		return ErrNotFound
	}

	if err := db.Model(&models.Message{}).
		Where("sender_id = ? AND recipient_id = ?", userID, friendID).
		Update("deleted_by_sender", true).Error; err != nil {
		return err
	}
	return db.Model(&models.Message{}).
		Where("sender_id = ? AND recipient_id = ?", friendID, userID).
		Update("deleted_by_recipient", true).Error
}

// LatestReceivedMessages returns, for each of the last counterparts who
// messaged the user, that counterpart's single most recent message.
// Groups with unread messages sort first, then by recency; capped at 3.
func LatestReceivedMessages(db *gorm.DB, userID uint) ([]models.Message, error) {
	var received []models.Message
	err := db.Preload("Sender").
		Where("recipient_id = ? AND deleted_by_recipient = ?", userID, false).
		Order("unread desc").Order("sent_on desc").
		Find(&received).Error
	if err != nil {
		return nil, err
	}

	latest := make([]models.Message, 0, 3)
	seen := make(map[uint]bool)
	for _, message := range received {
		if seen[message.SenderID] {
			continue
		}
		seen[message.SenderID] = true
		latest = append(latest, message)
		if len(latest) == 3 {
			break
		}
	}
	return latest, nil
}

// MarkMessagesRead bulk-clears the unread flag on all messages from the
// given senders to the user.
func MarkMessagesRead(db *gorm.DB, userID uint, senderIDs []uint) error {
	if len(senderIDs) == 0 {
		return newValidationError("message_sender_ids", "This field is required.")
	}
	return db.Model(&models.Message{}).
		Where("recipient_id = ? AND sender_id IN ?", userID, senderIDs).
		Update("unread", false).Error
}
