package models

import "time"

// Message represents a direct message between two users.
//
// Messages are never destroyed by users. Deleting a chat history only sets
// the flag for that party's side, so the row stays visible to the other
// party: DeletedBySender hides messages this user sent, DeletedByRecipient
// hides messages they received.
type Message struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	SenderID    uint      `gorm:"not null;index" json:"sender_id"`
	RecipientID uint      `gorm:"not null;index" json:"recipient_id"`
	Text        string    `gorm:"not null" json:"text"`
	SentOn      time.Time `gorm:"autoCreateTime" json:"sent_on"`
	Unread      bool      `gorm:"not null;default:true" json:"unread"`

	DeletedBySender    bool `gorm:"not null;default:false" json:"-"`
	DeletedByRecipient bool `gorm:"not null;default:false" json:"-"`

	Sender    User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Recipient User `gorm:"foreignKey:RecipientID" json:"-"`
}
