package calendarview

import (
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/unimind/unimind/internal/utils"
	"github.com/unimind/unimind/pkg/event"
)

// Granularity is the active calendar display range.
type Granularity string

const (
	GranularityMonth Granularity = "month"
	GranularityWeek  Granularity = "week"
	GranularityDay   Granularity = "day"
)

func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case GranularityMonth, GranularityWeek, GranularityDay:
		return Granularity(s), nil
	}
	return "", fmt.Errorf("unknown granularity: %q", s)
}

// Direction is a navigation intent coming from the toolbar.
type Direction string

const (
	DirectionToday    Direction = "today"
	DirectionPrevious Direction = "previous"
	DirectionNext     Direction = "next"
)

func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionToday, DirectionPrevious, DirectionNext:
		return Direction(s), nil
	}
	return "", fmt.Errorf("unknown direction: %q", s)
}

var ErrEditInProgress = errors.New("an event is already being edited")

// EditTarget is the at-most-one event currently selected for editing. It is
// owned by the ViewState and passed down explicitly, never held globally.
type EditTarget struct {
	Event event.Event
	IsNew bool
}

// ViewState holds everything the calendar surface renders from: the visible
// date, the active granularity, the normalized event list, and the optional
// edit target. The display toolkit's own navigation buttons are not trusted;
// navigation intents are applied here and the new date pushed back out.
type ViewState struct {
	Visible     time.Time
	Granularity Granularity
	Events      []event.Event
	Edit        *EditTarget
}

func NewViewState(clock utils.Clock) *ViewState {
	return &ViewState{
		Visible:     clock.Now(),
		Granularity: GranularityMonth,
	}
}

// Navigate advances the visible date by one period of the active granularity.
// DirectionToday resets to the clock's current date.
func (v *ViewState) Navigate(direction Direction, clock utils.Clock) {
	switch direction {
	case DirectionToday:
		v.Visible = clock.Now()
	case DirectionPrevious:
		v.Visible = v.Visible.AddDate(periodDelta(v.Granularity, -1))
	case DirectionNext:
		v.Visible = v.Visible.AddDate(periodDelta(v.Granularity, 1))
	}
}

// periodDelta returns AddDate arguments for one period step of the granularity.
func periodDelta(g Granularity, sign int) (years int, months int, days int) {
	switch g {
	case GranularityMonth:
		return 0, sign, 0
	case GranularityWeek:
		return 0, 0, 7 * sign
	default:
		return 0, 0, sign
	}
}

// ChangeView switches granularity without changing the visible date.
func (v *ViewState) ChangeView(g Granularity) {
	v.Granularity = g
}

// SetEvents replaces the in-memory event list with a freshly loaded one.
func (v *ViewState) SetEvents(events []event.Event) {
	v.Events = events
}

// SelectSlot creates a placeholder event bounded by the clicked slot and opens
// an edit session for it. Nothing is written to the store until the session
// dispatches a create intent.
func (v *ViewState) SelectSlot(start, end time.Time) (*EditSession, error) {
	if v.Edit != nil {
		return nil, ErrEditInProgress
	}
	target := EditTarget{
		Event: event.Event{StartTime: start, EndTime: end},
		IsNew: true,
	}
	v.Edit = &target
	return newEditSession(v, target), nil
}

// SelectEvent opens an edit session pre-populated with an existing event.
func (v *ViewState) SelectEvent(e event.Event) (*EditSession, error) {
	if v.Edit != nil {
		return nil, ErrEditInProgress
	}
	target := EditTarget{Event: e}
	v.Edit = &target
	return newEditSession(v, target), nil
}

// RenderKey derives a key from the (date, granularity, event list) triple.
// Any change to the triple changes the key, forcing the display to recompute
// instead of silently keeping a superseded range on screen.
func (v *ViewState) RenderKey() string {
	h := fnv.New64a()
	for _, e := range v.Events {
		fmt.Fprintf(h, "%s/%d/%d/%d;", e.UID, e.Revision, e.StartTime.Unix(), e.EndTime.Unix())
	}
	y, m, d := v.Visible.Date()
	return fmt.Sprintf("%04d-%02d-%02d|%s|%x", y, int(m), d, v.Granularity, h.Sum64())
}
