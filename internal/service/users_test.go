package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUser(t *testing.T) {
	db := newTestDB(t)

	user, err := RegisterUser(db, "  Virat.Kohli@Example.COM ", "Virat", "Kohli", "hash")
	require.NoError(t, err)
	assert.Equal(t, "virat.kohli@example.com", user.Email)
	assert.Equal(t, fmt.Sprintf("virat-kohli-%d", user.ID), user.Slug)

	loaded, err := GetUserBySlug(db, user.Slug)
	require.NoError(t, err)
	assert.Equal(t, user.ID, loaded.ID)
	assert.True(t, loaded.RegistrationMidout)
	assert.False(t, loaded.IsEmailVerified)

	// The duplicate check is case-insensitive.
	_, err = RegisterUser(db, "VIRAT.KOHLI@example.com", "Virat", "Kohli", "hash")
	requireValidationField(t, err, "email")
}

func TestRegistrationStateMachine(t *testing.T) {
	db := newTestDB(t)
	user := newMidoutUser(t, db, "Alice")

	loaded, err := GetUser(db, user.ID)
	require.NoError(t, err)
	assert.False(t, loaded.IsComplete())

	require.NoError(t, MarkEmailVerified(db, user.ID))
	city := 7
	loaded, err = CompleteProfile(db, user.ID, ProfileInput{Gender: "F", City: &city})
	require.NoError(t, err)
	assert.False(t, loaded.RegistrationMidout)
	assert.False(t, loaded.IsComplete(), "still missing the sports profile")

	profile, err := CreateSportsProfile(db, user.ID, SportsProfileInput{})
	require.NoError(t, err)
	assert.Equal(t, "cricket", profile.Sport)

	loaded, err = GetUser(db, user.ID)
	require.NoError(t, err)
	assert.True(t, loaded.IsComplete())
}

func TestCompleteProfileValidations(t *testing.T) {
	db := newTestDB(t)
	user := newMidoutUser(t, db, "Alice")
	city := 7

	_, err := CompleteProfile(db, user.ID, ProfileInput{Gender: "X", City: &city})
	requireValidationField(t, err, "gender")

	// Domestic users pick a city by lookup ID.
	_, err = CompleteProfile(db, user.ID, ProfileInput{Gender: "F"})
	requireValidationField(t, err, "city")

	// Everyone else types one in.
	_, err = CompleteProfile(db, user.ID, ProfileInput{Gender: "F", Country: "AU"})
	requireValidationField(t, err, "city_text")

	_, err = CompleteProfile(db, 9999, ProfileInput{Gender: "F", City: &city})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateSportsProfileDuplicate(t *testing.T) {
	db := newTestDB(t)
	user := newCompleteUser(t, db, "Alice", 1)

	_, err := CreateSportsProfile(db, user.ID, SportsProfileInput{})
	requireValidationField(t, err, "sports_profile")
}

func TestToggleTourCompleted(t *testing.T) {
	db := newTestDB(t)
	alice := newCompleteUser(t, db, "Alice", 1)
	bob := newCompleteUser(t, db, "Bob", 1)

	_, err := ToggleTourCompleted(db, alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	before, err := GetUser(db, alice.ID)
	require.NoError(t, err)

	next, err := ToggleTourCompleted(db, alice.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, !before.TourCompleted, next)

	next, err = ToggleTourCompleted(db, alice.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, before.TourCompleted, next)
}
