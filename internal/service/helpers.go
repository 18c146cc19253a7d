package service

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/lshigami/Editorly/internal/apperr"
	"github.com/lshigami/Editorly/internal/dto"
)

// ParseID validates a path or body identifier before it reaches storage.
func ParseID(raw, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, apperr.Validation(fmt.Sprintf("Invalid %s ID format", label))
	}
	return id, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// accuracyPercentage is 0 when there were no questions to answer.
func accuracyPercentage(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round2(100 * float64(score) / float64(total))
}

func percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(score) / float64(total)))
}

func averageOf(sum, count int) float64 {
	if count == 0 {
		return 0
	}
	return round2(float64(sum) / float64(count))
}

func totalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func offsetFor(page, limit int) int {
	return (page - 1) * limit
}

func pagination(total int64, page, limit, returned int) dto.PaginationDTO {
	return dto.PaginationDTO{
		CurrentPage: page,
		TotalPages:  totalPages(total, limit),
		HasNext:     int64(offsetFor(page, limit)+returned) < total,
		HasPrev:     page > 1,
	}
}

// normalizePage clamps page and limit to sane positive values.
func normalizePage(page, limit, defaultLimit, maxLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
