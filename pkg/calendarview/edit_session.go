package calendarview

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/unimind/unimind/pkg/event"
)

// Action is what an edit session asks its owner to do. The session itself
// never touches the event store; it only reports intent.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Intent is the outcome of a completed edit session.
type Intent struct {
	Action Action
	Event  event.Event
}

// State of an edit session. Each open/close cycle is an independent instance;
// no state survives across sessions.
type State string

const (
	StateOpen   State = "open"
	StateClosed State = "closed"
)

var (
	ErrSessionClosed      = errors.New("edit session is closed")
	ErrDeleteNotConfirmed = errors.New("delete requires confirmation")
	ErrDeleteNewEvent     = errors.New("a not-yet-created event cannot be deleted")
)

// TimeOfDay is an hour/minute pair edited independently of the calendar date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var tod TimeOfDay
	if _, err := fmt.Sscanf(s, "%d:%d", &tod.Hour, &tod.Minute); err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	if tod.Hour < 0 || tod.Hour > 23 || tod.Minute < 0 || tod.Minute > 59 {
		return TimeOfDay{}, fmt.Errorf("time of day out of range: %q", s)
	}
	return tod, nil
}

func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// composeOnDate keeps base's calendar date and location and applies the given
// time of day. Editing a time can therefore never move an event to another day.
func composeOnDate(base time.Time, tod TimeOfDay) time.Time {
	return time.Date(base.Year(), base.Month(), base.Day(), tod.Hour, tod.Minute, 0, 0, base.Location())
}

// EditSession drives a single create/update/delete interaction for one event.
type EditSession struct {
	owner           *ViewState
	target          event.Event
	isNew           bool
	state           State
	deleteConfirmed bool
}

func newEditSession(owner *ViewState, target EditTarget) *EditSession {
	return &EditSession{
		owner:  owner,
		target: target.Event,
		isNew:  target.IsNew,
		state:  StateOpen,
	}
}

func (s *EditSession) State() State { return s.state }
func (s *EditSession) IsNew() bool  { return s.isNew }

// Save validates the edited fields and dispatches a create intent for a new
// target or an update intent for an existing one. An empty trimmed title is
// rejected locally and nothing is dispatched.
func (s *EditSession) Save(title string, start, end TimeOfDay) (Intent, error) {
	if s.state != StateOpen {
		return Intent{}, ErrSessionClosed
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return Intent{}, event.ErrEmptyTitle
	}

	edited := s.target
	edited.Title = title
	edited.StartTime = composeOnDate(s.target.StartTime, start)
	edited.EndTime = composeOnDate(s.target.EndTime, end)

	if edited.StartTime.After(edited.EndTime) {
		return Intent{}, event.ErrInvalidTimeRange
	}

	action := ActionUpdate
	if s.isNew {
		action = ActionCreate
	}

	s.close()
	return Intent{Action: action, Event: edited}, nil
}

// ConfirmDelete records the explicit confirmation step required before Delete.
func (s *EditSession) ConfirmDelete() error {
	if s.state != StateOpen {
		return ErrSessionClosed
	}
	if s.isNew {
		return ErrDeleteNewEvent
	}
	s.deleteConfirmed = true
	return nil
}

// Delete dispatches a delete intent. It is unreachable for new events and
// requires a prior ConfirmDelete.
func (s *EditSession) Delete() (Intent, error) {
	if s.state != StateOpen {
		return Intent{}, ErrSessionClosed
	}
	if s.isNew {
		return Intent{}, ErrDeleteNewEvent
	}
	if !s.deleteConfirmed {
		return Intent{}, ErrDeleteNotConfirmed
	}

	s.close()
	return Intent{Action: ActionDelete, Event: s.target}, nil
}

// Cancel discards the session without dispatching anything.
func (s *EditSession) Cancel() {
	if s.state == StateOpen {
		s.close()
	}
}

func (s *EditSession) close() {
	s.state = StateClosed
	if s.owner != nil {
		s.owner.Edit = nil
	}
}
