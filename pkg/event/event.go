package event

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNotFound         = errors.New("event not found")
	ErrConflict         = errors.New("event was modified concurrently")
	ErrEmptyTitle       = errors.New("event title must not be empty")
	ErrInvalidTimeRange = errors.New("event start must not be after end")
)

// Event is a calendar record owned by a single user.
type Event struct {
	UID       string
	Title     string
	Notes     string
	AllDay    bool
	StartTime time.Time
	EndTime   time.Time
	// Revision is compared on update so concurrent editors fail with
	// ErrConflict instead of silently overwriting each other.
	Revision int
	// SourceUid identifies the upstream record for imported events
	// (e.g. a Google Calendar event id). Empty for native events.
	SourceUid string
	CreatedAt time.Time
}

// Two generations of writers populated the start/end columns: an older path
// wrote local ISO-8601 strings without a zone, a newer one epoch milliseconds.
// All new writes are canonical epoch millis; reads must keep accepting both.
const legacyLocalLayout = "2006-01-02T15:04:05"

// EncodeStoredTime renders t in the canonical storage encoding.
func EncodeStoredTime(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// DecodeStoredTime is the single discriminated decoder for stored start/end
// values. Read sites must not special-case encodings themselves.
func DecodeStoredTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty stored time")
	}

	if isDecimal(value) {
		millis, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid epoch millis %q: %w", value, err)
		}
		return time.UnixMilli(millis).UTC(), nil
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(legacyLocalLayout, value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized stored time encoding: %q", value)
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '-' && i == 0 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Normalize repairs an event coming out of storage: legacy rows can hold an
// inverted start/end pair, which would break every consumer assuming
// start <= end.
func Normalize(e Event) Event {
	if e.StartTime.After(e.EndTime) {
		e.StartTime, e.EndTime = e.EndTime, e.StartTime
	}
	return e
}

// Validate checks the invariants enforced on create and update.
func Validate(e Event) error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if e.StartTime.After(e.EndTime) {
		return ErrInvalidTimeRange
	}
	return nil
}
