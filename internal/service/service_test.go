package service

import (
	"fmt"
	"strings"
	"testing"

	"sportsvitae/backend/internal/database"
	"sportsvitae/backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

// recordingSender captures outgoing mail; Fail makes every send error.
type recordingSender struct {
	Sent []sentMail
	Fail bool
}

func (s *recordingSender) Send(to, subject, htmlBody string) error {
	if s.Fail {
		return fmt.Errorf("smtp unavailable")
	}
	s.Sent = append(s.Sent, sentMail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

// setupNotifier swaps in a fresh dispatcher with the notification listener
// attached and restores the previous one when the test ends.
func setupNotifier(t *testing.T) *recordingSender {
	t.Helper()
	sender := &recordingSender{}
	prev := Events
	Events = NewDispatcher()
	NewNotifier(sender, zerolog.Nop()).Register(Events)
	t.Cleanup(func() { Events = prev })
	return sender
}

var userSeq int

// newMidoutUser registers a user who has not completed their profile.
func newMidoutUser(t *testing.T, db *gorm.DB, firstName string) *models.User {
	t.Helper()
	userSeq++
	email := fmt.Sprintf("%s%d@example.com", strings.ToLower(firstName), userSeq)
	user, err := RegisterUser(db, email, firstName, "Tester", "hash")
	require.NoError(t, err)
	return user
}

// newCompleteUser walks a fresh user through the whole registration state
// machine: register, verify email, complete profile, create sports profile.
func newCompleteUser(t *testing.T, db *gorm.DB, firstName string, city int) *models.User {
	t.Helper()
	user := newMidoutUser(t, db, firstName)
	require.NoError(t, MarkEmailVerified(db, user.ID))

	_, err := CompleteProfile(db, user.ID, ProfileInput{Gender: "M", City: &city})
	require.NoError(t, err)
	_, err = CreateSportsProfile(db, user.ID, SportsProfileInput{PlayingRole: "batsman"})
	require.NoError(t, err)

	user, err = GetUser(db, user.ID)
	require.NoError(t, err)
	return user
}

// befriend runs the full request/accept handshake between two users.
func befriend(t *testing.T, db *gorm.DB, a, b *models.User) {
	t.Helper()
	request, err := SendFriendRequest(db, a.ID, b.ID)
	require.NoError(t, err)
	require.NoError(t, AcceptFriendRequest(db, b.ID, request.ID))
}

func requireValidationField(t *testing.T, err error, field string) {
	t.Helper()
	v, ok := AsValidation(err)
	require.True(t, ok, "expected a validation error, got %v", err)
	require.Contains(t, v.Fields, field)
}
