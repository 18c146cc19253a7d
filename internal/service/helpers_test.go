package service

import (
	"testing"
	"time"

	"github.com/lshigami/Editorly/internal/apperr"
	"github.com/lshigami/Editorly/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	_, err := ParseID("not-a-uuid", "user")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	assert.Equal(t, "Invalid user ID format", apperr.From(err).Message)

	_, err = ParseID("00000000-0000-0000-0000-000000000000", "editorial")
	assert.Error(t, err)

	id, err := ParseID(" 6f1c2a52-8f43-4a4e-9d7e-0f6d1f3c9b11 ", "article")
	require.NoError(t, err)
	assert.Equal(t, "6f1c2a52-8f43-4a4e-9d7e-0f6d1f3c9b11", id.String())
}

func TestAccuracyPercentage(t *testing.T) {
	assert.Equal(t, 33.33, accuracyPercentage(1, 3))
	assert.Equal(t, 66.67, accuracyPercentage(2, 3))
	assert.Equal(t, 100.0, accuracyPercentage(5, 5))
	assert.Equal(t, 0.0, accuracyPercentage(0, 0))
	assert.Equal(t, 0, percentage(3, 0))
	assert.Equal(t, 60, percentage(3, 5))
}

func TestPagination(t *testing.T) {
	p := pagination(23, 3, 10, 3)
	assert.Equal(t, 3, p.CurrentPage)
	assert.Equal(t, 3, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrev)

	p = pagination(23, 1, 10, 10)
	assert.True(t, p.HasNext)
	assert.False(t, p.HasPrev)

	p = pagination(0, 1, 10, 0)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNext)
}

func TestNormalizePage(t *testing.T) {
	page, limit := normalizePage(0, 0, 50, 500)
	assert.Equal(t, 1, page)
	assert.Equal(t, 50, limit)

	_, limit = normalizePage(2, 10000, 50, 500)
	assert.Equal(t, 500, limit)
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "héllo", truncateRunes("héllo wörld", 5))
	assert.Equal(t, "short", truncateRunes("short", 200))
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{0, "Just now"},
		{45 * time.Second, "Just now"},
		{time.Minute, "1 minute ago"},
		{30 * time.Minute, "30 minutes ago"},
		{90 * time.Minute, "1 hour ago"},
		{5 * time.Hour, "5 hours ago"},
		{25 * time.Hour, "1 day ago"},
		{72 * time.Hour, "3 days ago"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatRelativeTime(now, now.Add(-tc.ago)), tc.ago.String())
	}
	assert.Equal(t, "Just now", FormatRelativeTime(now, now.Add(time.Hour)))
}

func TestRecordActivity(t *testing.T) {
	day := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

	u := &model.User{}
	recordActivity(u, 3, day)
	assert.Equal(t, 1, u.Streak)
	assert.Equal(t, 3, u.Points)

	recordActivity(u, 2, day.Add(5*time.Hour))
	assert.Equal(t, 1, u.Streak, "same day keeps the streak")
	assert.Equal(t, 5, u.Points)

	recordActivity(u, 0, day.Add(24*time.Hour))
	assert.Equal(t, 2, u.Streak, "next day extends it")

	recordActivity(u, 1, day.Add(4*24*time.Hour))
	assert.Equal(t, 1, u.Streak, "a gap restarts it")
	require.NotNil(t, u.LastActiveAt)
	assert.Equal(t, day.Add(4*24*time.Hour), *u.LastActiveAt)
}
