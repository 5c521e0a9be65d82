package event_bus

import "time"

const (
	CalendarEventCreatedType EventType = "calendar.event.created"
	CalendarEventDeletedType EventType = "calendar.event.deleted"
	JournalEntryCreatedType  EventType = "journal.entry.created"
	ChallengeCompletedType   EventType = "board.challenge.completed"
)

type CalendarEventCreated struct {
	UID       string
	UserUid   string
	Title     string
	StartTime time.Time
	EndTime   time.Time
}

type CalendarEventDeleted struct {
	UID     string
	UserUid string
}

type JournalEntryCreated struct {
	UID     string
	UserUid string
	Mood    string
}

type ChallengeCompleted struct {
	UserUid     string
	ChallengeId int
	Year        int
	Week        int
	XpAwarded   int
}
