package service

import (
	"errors"
	"strings"
	"time"

	"sportsvitae/backend/internal/models"
	"sportsvitae/backend/pkg/slugify"

	"gorm.io/gorm"
)

// NormalizeEmail case-normalizes an email address for lookups and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterUser creates a midout user and assigns its name+id slug.
func RegisterUser(db *gorm.DB, email, firstName, lastName, passwordHash string) (*models.User, error) {
	email = NormalizeEmail(email)

	// Reminder clocks start at signup so the cron jobs leave new users
	// alone for their first grace period.
	now := time.Now()
	user := models.User{
		Email:                  email,
		FirstName:              strings.TrimSpace(firstName),
		LastName:               strings.TrimSpace(lastName),
		PasswordHash:           passwordHash,
		LastProfileReminderAt:  now,
		LastActivityReminderAt: now,
	}
	if err := db.Create(&user).Error; err != nil {
		// The email uniqueness constraint does the duplicate check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, newValidationError("email", "This email is already registered.")
		}
		return nil, err
	}

	// The slug embeds the ID, so it can only be derived after the insert.
	user.Slug = slugify.NameAndID(user.FullName(), user.ID)
	if err := db.Model(&user).Update("slug", user.Slug).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser loads a user with their sports profile.
func GetUser(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	err := db.Preload("SportsProfile").First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail loads a user by case-normalized email.
func GetUserByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.Preload("SportsProfile").Where("email = ?", NormalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserBySlug loads a user by their wall slug.
func GetUserBySlug(db *gorm.DB, slug string) (*models.User, error) {
	var user models.User
	err := db.Preload("SportsProfile").Where("slug = ?", slug).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ProfileInput carries the second registration step's fields.
type ProfileInput struct {
	Gender      string
	Mobile      string
	Country     string
	State       *int
	StateText   string
	City        *int
	CityText    string
	DateOfBirth *time.Time
}

// CompleteProfile records profile details and clears the midout flag.
func CompleteProfile(db *gorm.DB, userID uint, in ProfileInput) (*models.User, error) {
	user, err := GetUser(db, userID)
	if err != nil {
		return nil, err
	}

	if in.Gender != "M" && in.Gender != "F" {
		return nil, newValidationError("gender", "Please select a valid gender.")
	}
	if in.Country == "" {
		in.Country = models.DomesticCountry
	}
	if in.Country == models.DomesticCountry && in.City == nil {
		return nil, newValidationError("city", "Please select a city.")
	}
	if in.Country != models.DomesticCountry && in.CityText == "" {
		return nil, newValidationError("city_text", "Please enter a city.")
	}

	updates := map[string]any{
		"gender":              in.Gender,
		"mobile":              in.Mobile,
		"country":             in.Country,
		"state":               in.State,
		"state_text":          in.StateText,
		"city":                in.City,
		"city_text":           in.CityText,
		"date_of_birth":       in.DateOfBirth,
		"registration_midout": false,
	}
	if err := db.Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}
	return GetUser(db, userID)
}

// SportsProfileInput carries the sports profile fields.
type SportsProfileInput struct {
	Sport        string
	PlayingRole  string
	BattingStyle string
	BowlingStyle string
}

// CreateSportsProfile finishes the registration state machine.
func CreateSportsProfile(db *gorm.DB, userID uint, in SportsProfileInput) (*models.SportsProfile, error) {
	if _, err := GetUser(db, userID); err != nil {
		return nil, err
	}

	var count int64
	if err := db.Model(&models.SportsProfile{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, newValidationError("sports_profile", "Sports profile already exists.")
	}

	if in.Sport == "" {
		in.Sport = "cricket"
	}
	profile := models.SportsProfile{
		UserID:       userID,
		Sport:        in.Sport,
		PlayingRole:  in.PlayingRole,
		BattingStyle: in.BattingStyle,
		BowlingStyle: in.BowlingStyle,
	}
	if err := db.Create(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// MarkEmailVerified flips the verification flag.
func MarkEmailVerified(db *gorm.DB, userID uint) error {
	return db.Model(&models.User{}).Where("id = ?", userID).Update("is_email_verified", true).Error
}

// SetPassword stores a new password hash.
func SetPassword(db *gorm.DB, userID uint, passwordHash string) error {
	return db.Model(&models.User{}).Where("id = ?", userID).Update("password_hash", passwordHash).Error
}

// ToggleTourCompleted flips the front-end tour flag. Only the owner may
// toggle their own flag.
func ToggleTourCompleted(db *gorm.DB, actorID, targetID uint) (bool, error) {
	if actorID != targetID {
		return false, ErrForbidden
	}
	user, err := GetUser(db, targetID)
	if err != nil {
		return false, err
	}
	next := !user.TourCompleted
	if err := db.Model(user).Update("tour_completed", next).Error; err != nil {
		return false, err
	}
	return next, nil
}
