package models

import "time"

// FriendRequest represents a directed connect request between two users.
// At most one row may exist per ordered (from, to) pair; the reverse
// direction is a separate row. Accepting promotes the pair to a friends
// edge, rejecting or cancelling deletes the row.
type FriendRequest struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	FromUserID uint      `gorm:"not null;uniqueIndex:idx_friend_request_pair" json:"from_user_id"`
	ToUserID   uint      `gorm:"not null;uniqueIndex:idx_friend_request_pair" json:"to_user_id"`
	Accepted   bool      `gorm:"not null;default:false" json:"accepted"`
	Viewed     bool      `gorm:"not null;default:false" json:"viewed"`
	SentOn     time.Time `gorm:"autoCreateTime" json:"sent_on"`

	FromUser User `gorm:"foreignKey:FromUserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"from_user,omitempty"`
	ToUser   User `gorm:"foreignKey:ToUserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
