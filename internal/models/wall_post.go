package models

import "time"

// Wall post payload types. Exactly one payload variant is active per post;
// the inactive fields are nulled out on creation.
const (
	PostTypeText     = 1
	PostTypeImage    = 2
	PostTypeLocation = 3
)

// UserWallPost represents a post on a user's wall.
type UserWallPost struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	OwnerID   uint      `gorm:"not null;index" json:"owner_id"`
	Text      *string   `json:"text"`
	PostImage *string   `json:"post_image"`
	Location  *string   `json:"location"`
	PostType  int       `gorm:"not null;default:1" json:"post_type"`
	PostedOn  time.Time `gorm:"autoCreateTime" json:"posted_on"`

	Owner    User                  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Likes    []*User               `gorm:"many2many:user_wall_post_likes" json:"likes,omitempty"`
	Comments []UserWallPostComment `gorm:"foreignKey:UserWallPostID" json:"comments,omitempty"`
}

// UserWallPostComment represents a comment on a wall post. Comments are
// listed oldest first and are destroyed together with their post.
type UserWallPostComment struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	CommentByID    uint      `gorm:"not null" json:"comment_by_id"`
	UserWallPostID uint      `gorm:"not null;index" json:"user_wall_post_id"`
	Comment        string    `gorm:"not null" json:"comment"`
	CommentedOn    time.Time `gorm:"autoCreateTime" json:"commented_on"`

	CommentBy User    `gorm:"foreignKey:CommentByID" json:"comment_by,omitempty"`
	Likes     []*User `gorm:"many2many:user_wall_post_comment_likes" json:"likes,omitempty"`
}
