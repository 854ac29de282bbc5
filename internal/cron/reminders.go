// Package cron schedules the reminder batch jobs that run outside the
// request path.
package cron

import (
	"time"

	"sportsvitae/backend/internal/mailer"
	"sportsvitae/backend/internal/models"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const (
	profileReminderInactivityDays = 30
	matchStatsInactivityDays      = 10
)

// Start registers the reminder jobs and starts the scheduler.
func Start(db *gorm.DB, mail mailer.Sender, log zerolog.Logger) *cron.Cron {
	c := cron.New()
	c.AddFunc("0 17 * * *", func() { ProfileCompletionReminder(db, mail, log) })
	c.AddFunc("30 17 * * *", func() { MatchStatsReminder(db, mail, log) })
	c.Start()
	return c
}

// ProfileCompletionReminder mails users stuck in midout registration for
// 30 days or more since their last reminder. Mail failures are ignored.
func ProfileCompletionReminder(db *gorm.DB, mail mailer.Sender, log zerolog.Logger) {
	cutoff := time.Now().AddDate(0, 0, -profileReminderInactivityDays)

	var users []models.User
	if err := db.Where("registration_midout = ? AND last_profile_reminder_at <= ?", true, cutoff).Find(&users).Error; err != nil {
		log.Error().Err(err).Msg("profile reminder query failed")
		return
	}

	body := "<p>Your Sportsvitae profile is still incomplete. Complete it to connect with players near you.</p>"
	for _, user := range users {
		if err := mail.Send(user.Email, "[Important] Inactivity Notice", body); err != nil {
			log.Warn().Err(err).Str("email", user.Email).Msg("profile reminder mail failed")
		}
	}

	if len(users) > 0 {
		ids := make([]uint, len(users))
		for i, user := range users {
			ids[i] = user.ID
		}
		if err := db.Model(&models.User{}).Where("id IN ?", ids).
			Update("last_profile_reminder_at", time.Now()).Error; err != nil {
			log.Error().Err(err).Msg("profile reminder timestamp update failed")
		}
	}

	log.Info().Int("users", len(users)).Msg("profile completion reminder run")
}

// MatchStatsReminder mails users with a sports profile and no wall
// activity for 10 days, at most once per 10 days.
func MatchStatsReminder(db *gorm.DB, mail mailer.Sender, log zerolog.Logger) {
	cutoff := time.Now().AddDate(0, 0, -matchStatsInactivityDays)

	var users []models.User
	err := db.Joins("JOIN sports_profiles ON sports_profiles.user_id = users.id").
		Where("users.last_activity_reminder_at <= ?", cutoff).
		Where("users.id NOT IN (?)", db.Model(&models.UserWallPost{}).
			Select("owner_id").Where("posted_on > ?", cutoff)).
		Find(&users).Error
	if err != nil {
		log.Error().Err(err).Msg("match stats reminder query failed")
		return
	}

	body := "<p>You haven't recorded any match stats lately. Add your latest performances on Sportsvitae.</p>"
	for _, user := range users {
		if err := mail.Send(user.Email, "[Important] Inactivity Notice", body); err != nil {
			log.Warn().Err(err).Str("email", user.Email).Msg("match stats reminder mail failed")
		}
	}

	if len(users) > 0 {
		ids := make([]uint, len(users))
		for i, user := range users {
			ids[i] = user.ID
		}
		if err := db.Model(&models.User{}).Where("id IN ?", ids).
			Update("last_activity_reminder_at", time.Now()).Error; err != nil {
			log.Error().Err(err).Msg("match stats reminder timestamp update failed")
		}
	}

	log.Info().Int("users", len(users)).Msg("match stats reminder run")
}
