package models

import "time"

// DomesticCountry is the country code whose users are located by numeric
// city lookup IDs; everyone else carries free-text city names.
const DomesticCountry = "IN"

// User represents a user in the system.
//
// Registration is a two-step state machine: a freshly registered user is
// "midout" (signup done, profile details missing); completing the profile
// clears RegistrationMidout; creating a sports profile finishes it.
type User struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FirstName    string `gorm:"size:30;not null" json:"first_name"`
	LastName     string `gorm:"size:30;not null" json:"last_name"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	Gender      string     `gorm:"size:1;not null;default:'M'" json:"gender"`
	Mobile      string     `gorm:"size:10" json:"mobile,omitempty"`
	Country     string     `gorm:"size:2;not null;default:'IN'" json:"country"`
	State       *int       `json:"state,omitempty"`
	StateText   string     `gorm:"size:30" json:"state_text,omitempty"`
	City        *int       `gorm:"index" json:"city,omitempty"`
	CityText    string     `gorm:"size:30;index" json:"city_text,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`

	DisplayPicture string `json:"display_picture,omitempty"`
	CoverPicture   string `json:"cover_picture,omitempty"`
	Slug           string `gorm:"size:70;uniqueIndex" json:"slug"`

	IsActive           bool `gorm:"not null;default:true" json:"-"`
	IsStaff            bool `gorm:"not null;default:false" json:"-"`
	IsEmailVerified    bool `gorm:"not null;default:false" json:"is_email_verified"`
	RegistrationMidout bool `gorm:"not null;default:true" json:"registration_midout"`
	TourCompleted      bool `gorm:"not null;default:true" json:"tour_completed"`

	LastProfileReminderAt  time.Time `json:"-"`
	LastActivityReminderAt time.Time `json:"-"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"-"`

	// Symmetric friendship edge set: both join rows are always written
	// together, so the relation is visible from either side.
	Friends []*User `gorm:"many2many:user_friends" json:"-"`

	SportsProfile *SportsProfile `json:"sports_profile,omitempty"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsDomestic reports whether the user is located by city lookup ID
// rather than free text.
func (u *User) IsDomestic() bool {
	return u.Country == DomesticCountry
}

// IsComplete reports whether the user finished both registration steps and
// verified their email. SportsProfile must be preloaded.
func (u *User) IsComplete() bool {
	return u.IsEmailVerified && !u.RegistrationMidout && u.SportsProfile != nil
}

// SportsProfile is the second registration step: the user's sporting
// identity. One per user.
type SportsProfile struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	UserID       uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Sport        string    `gorm:"size:30;not null;default:'cricket'" json:"sport"`
	PlayingRole  string    `gorm:"size:30" json:"playing_role,omitempty"`
	BattingStyle string    `gorm:"size:30" json:"batting_style,omitempty"`
	BowlingStyle string    `gorm:"size:30" json:"bowling_style,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
