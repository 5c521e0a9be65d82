package journal

import (
	"errors"
	"time"
)

var (
	ErrMoodRequired = errors.New("mood is required")
	ErrUnknownMood  = errors.New("unknown mood")
)

// Entry is a single mood check-in.
type Entry struct {
	UID       string
	Mood      string
	MoodText  string
	CreatedAt time.Time
}

var knownMoods = map[string]bool{
	"great":    true,
	"good":     true,
	"okay":     true,
	"low":      true,
	"stressed": true,
}

func ValidateMood(mood string) error {
	if mood == "" {
		return ErrMoodRequired
	}
	if !knownMoods[mood] {
		return ErrUnknownMood
	}
	return nil
}
