package handler

import (
	"net/http"
	"time"

	"sportsvitae/backend/internal/database"
	"sportsvitae/backend/internal/mailer"
	"sportsvitae/backend/internal/service"
	"sportsvitae/backend/pkg/jwt"
	"sportsvitae/backend/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// region --- DTOs ---

// RegisterInput defines the structure for user registration.
type RegisterInput struct {
	Email     string `json:"email" binding:"required,email" example:"test@example.com"`
	FirstName string `json:"first_name" binding:"required" example:"Test"`
	LastName  string `json:"last_name" binding:"required" example:"User"`
	Password  string `json:"password" binding:"required,min=8" example:"password123"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email" example:"test@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// ProfileInput defines the profile-completion step.
type ProfileInput struct {
	Gender      string     `json:"gender" binding:"required" example:"M"`
	Mobile      string     `json:"mobile"`
	Country     string     `json:"country" example:"IN"`
	State       *int       `json:"state"`
	StateText   string     `json:"state_text"`
	City        *int       `json:"city"`
	CityText    string     `json:"city_text"`
	DateOfBirth *time.Time `json:"date_of_birth"`
}

// SportsProfileInput defines the sports-profile step.
type SportsProfileInput struct {
	Sport        string `json:"sport" example:"cricket"`
	PlayingRole  string `json:"playing_role" example:"batsman"`
	BattingStyle string `json:"batting_style"`
	BowlingStyle string `json:"bowling_style"`
}

// ForgotPasswordInput carries the email to send a reset link to.
type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordInput carries an emailed token and the new password.
type ResetPasswordInput struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// endregion

// region --- Auth Handlers ---

// RegisterUser godoc
// @Summary      Register a new user
// @Description  Creates a midout user, mails a verification link and returns an authentication token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RegisterInput true "Registration Info"
// @Success      201  {object}  map[string]string "{"token": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/register [post]
func RegisterUser(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user, err := service.RegisterUser(database.DB, input.Email, input.FirstName, input.LastName, string(hashedPassword))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if verifyToken, err := token.Encode(user.Email, token.PurposeVerifyEmail, token.DefaultTTL); err == nil {
		if err := mailer.SendVerificationMail(Mail, user.Email, verifyToken); err != nil {
			log.Warn().Err(err).Str("email", user.Email).Msg("verification mail failed")
		}
	}

	authToken, err := jwt.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": authToken})
}

// LoginUser godoc
// @Summary      Log in a user
// @Description  Authenticates a user with email and password, and returns a new token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  map[string]string "{"token": "..."}"
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Failure      404  {object}  ErrorResponse "User not found"
// @Router       /auth/login [post]
func LoginUser(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := service.GetUserByEmail(database.DB, input.Email)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	authToken, err := jwt.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": authToken})
}

// VerifyEmail godoc
// @Summary      Verify an email address
// @Description  Consumes an emailed verification token.
// @Tags         auth
// @Produce      json
// @Param        token query string true "Emailed token"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  ErrorResponse "Invalid or expired token"
// @Router       /auth/verify-email [get]
func VerifyEmail(c *gin.Context) {
	user, purpose, err := token.Decode(database.DB, c.Query("token"))
	if err != nil || purpose != token.PurposeVerifyEmail {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		return
	}

	if err := service.MarkEmailVerified(database.DB, user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify email"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email verified"})
}

// ResendVerificationMail godoc
// @Summary      Resend the verification mail
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Router       /auth/resend-verification [post]
func ResendVerificationMail(c *gin.Context) {
	user, err := service.GetUser(database.DB, currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if !user.IsEmailVerified {
		if verifyToken, err := token.Encode(user.Email, token.PurposeVerifyEmail, token.DefaultTTL); err == nil {
			if err := mailer.SendVerificationMail(Mail, user.Email, verifyToken); err != nil {
				log.Warn().Err(err).Str("email", user.Email).Msg("verification mail failed")
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "OK"})
}

// ForgotPassword godoc
// @Summary      Request a password reset mail
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body ForgotPasswordInput true "Email"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  ErrorResponse
// @Router       /auth/forgot-password [post]
func ForgotPassword(c *gin.Context) {
	var input ForgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := service.GetUserByEmail(database.DB, input.Email)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"email": "This email is not registered with us."}})
		return
	}

	if resetToken, err := token.Encode(user.Email, token.PurposePasswordReset, token.DefaultTTL); err == nil {
		if err := mailer.SendForgotPasswordMail(Mail, user.Email, resetToken); err != nil {
			log.Warn().Err(err).Str("email", user.Email).Msg("forgot password mail failed")
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reset mail sent"})
}

// ResetPassword godoc
// @Summary      Reset a password with an emailed token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body ResetPasswordInput true "Token and new password"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  ErrorResponse "Invalid or expired token"
// @Router       /auth/reset-password [post]
func ResetPassword(c *gin.Context) {
	var input ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, purpose, err := token.Decode(database.DB, input.Token)
	if err != nil || purpose != token.PurposePasswordReset {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	if err := service.SetPassword(database.DB, user.ID, string(hashedPassword)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// endregion

// region --- User Handlers ---

// GetMe godoc
// @Summary      Get current user's info
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.User
// @Failure      401  {object}  ErrorResponse
// @Router       /users/me [get]
func GetMe(c *gin.Context) {
	user, err := service.GetUser(database.DB, currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetUserBySlug godoc
// @Summary      Get a user by wall slug
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        slug path string true "User slug"
// @Success      200  {object}  models.User
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{slug} [get]
func GetUserBySlug(c *gin.Context) {
	user, err := service.GetUserBySlug(database.DB, c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// CompleteProfile godoc
// @Summary      Complete the registration profile
// @Description  Records the profile details and clears the midout flag.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body ProfileInput true "Profile"
// @Success      200  {object}  models.User
// @Failure      400  {object}  ErrorResponse
// @Router       /users/me/profile [put]
func CompleteProfile(c *gin.Context) {
	var input ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := service.CompleteProfile(database.DB, currentUserID(c), service.ProfileInput{
		Gender:      input.Gender,
		Mobile:      input.Mobile,
		Country:     input.Country,
		State:       input.State,
		StateText:   input.StateText,
		City:        input.City,
		CityText:    input.CityText,
		DateOfBirth: input.DateOfBirth,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateSportsProfile godoc
// @Summary      Create the sports profile
// @Description  Finishes the registration state machine.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SportsProfileInput true "Sports profile"
// @Success      201  {object}  models.SportsProfile
// @Failure      400  {object}  ErrorResponse
// @Router       /users/me/sports-profile [post]
func CreateSportsProfile(c *gin.Context) {
	var input SportsProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := service.CreateSportsProfile(database.DB, currentUserID(c), service.SportsProfileInput{
		Sport:        input.Sport,
		PlayingRole:  input.PlayingRole,
		BattingStyle: input.BattingStyle,
		BowlingStyle: input.BowlingStyle,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// ToggleTourCompleted godoc
// @Summary      Toggle the front-end tour flag
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        slug path string true "User slug"
// @Success      200  {object}  map[string]bool "{"status": true}"
// @Failure      403  {object}  ErrorResponse
// @Router       /users/{slug}/tour-completed [post]
func ToggleTourCompleted(c *gin.Context) {
	target, err := service.GetUserBySlug(database.DB, c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	status, err := service.ToggleTourCompleted(database.DB, currentUserID(c), target.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

// GetFriendSuggestions godoc
// @Summary      Get friend suggestions
// @Description  Candidates share the user's city, excluding self, friends and already-requested users.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.User
// @Router       /users/me/friend-suggestions [get]
func GetFriendSuggestions(c *gin.Context) {
	suggestions, err := service.FriendSuggestions(database.DB, currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, suggestions)
}

// endregion
