package service

import (
	"time"

	"github.com/lshigami/Editorly/internal/model"
)

func utcDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// recordActivity credits points and advances the daily streak: same UTC day
// keeps it, the next day extends it, any longer gap restarts it at 1.
func recordActivity(user *model.User, points int, now time.Time) {
	today := utcDay(now)
	switch {
	case user.LastActiveAt == nil:
		user.Streak = 1
	default:
		gap := int(today.Sub(utcDay(*user.LastActiveAt)) / (24 * time.Hour))
		switch {
		case gap <= 0:
			if user.Streak == 0 {
				user.Streak = 1
			}
		case gap == 1:
			user.Streak++
		default:
			user.Streak = 1
		}
	}
	user.Points += points
	ts := now.UTC()
	user.LastActiveAt = &ts
}
