package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeStoredTime(t *testing.T) {
	testCases := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "epoch milliseconds",
			value: "1762682400000",
			want:  time.UnixMilli(1762682400000).UTC(),
		},
		{
			name:  "negative epoch milliseconds",
			value: "-86400000",
			want:  time.UnixMilli(-86400000).UTC(),
		},
		{
			name:  "RFC3339",
			value: "2025-11-09T10:00:00Z",
			want:  time.Date(2025, 11, 9, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "legacy local date-time without zone",
			value: "2025-11-09T10:00:00",
			want:  time.Date(2025, 11, 9, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "surrounding whitespace",
			value: "  1762682400000 ",
			want:  time.UnixMilli(1762682400000).UTC(),
		},
		{
			name:    "empty",
			value:   "",
			wantErr: true,
		},
		{
			name:    "garbage",
			value:   "next tuesday",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeStoredTime(tc.value)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "want %v, got %v", tc.want, got)
		})
	}
}

func TestEncodeStoredTime_RoundTrip(t *testing.T) {
	original := time.Date(2025, 11, 9, 10, 30, 0, 0, time.UTC)

	decoded, err := DecodeStoredTime(EncodeStoredTime(original))

	require.NoError(t, err)
	assert.True(t, original.Equal(decoded))
}

func TestNormalize_SwapsInvertedRange(t *testing.T) {
	start := time.Date(2025, 11, 9, 14, 0, 0, 0, time.UTC)
	end := time.Date(2025, 11, 9, 10, 0, 0, 0, time.UTC)

	normalized := Normalize(Event{StartTime: start, EndTime: end})

	assert.True(t, normalized.StartTime.Equal(end))
	assert.True(t, normalized.EndTime.Equal(start))
	assert.False(t, normalized.StartTime.After(normalized.EndTime))
}

func TestNormalize_KeepsOrderedRange(t *testing.T) {
	start := time.Date(2025, 11, 9, 10, 0, 0, 0, time.UTC)
	end := time.Date(2025, 11, 9, 14, 0, 0, 0, time.UTC)

	normalized := Normalize(Event{StartTime: start, EndTime: end})

	assert.True(t, normalized.StartTime.Equal(start))
	assert.True(t, normalized.EndTime.Equal(end))
}

func TestValidate(t *testing.T) {
	start := time.Date(2025, 11, 9, 10, 0, 0, 0, time.UTC)

	testCases := []struct {
		name    string
		event   Event
		wantErr error
	}{
		{
			name:  "valid event",
			event: Event{Title: "Physics Exam", StartTime: start, EndTime: start.Add(time.Hour)},
		},
		{
			name:    "empty title",
			event:   Event{Title: "", StartTime: start, EndTime: start.Add(time.Hour)},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "whitespace title",
			event:   Event{Title: "   ", StartTime: start, EndTime: start.Add(time.Hour)},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "start after end",
			event:   Event{Title: "Physics Exam", StartTime: start.Add(time.Hour), EndTime: start},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name:  "zero duration is allowed",
			event: Event{Title: "Reminder", StartTime: start, EndTime: start},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.event)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
