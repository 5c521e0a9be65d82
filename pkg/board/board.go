package board

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnknownChallenge = errors.New("unknown challenge id")
	ErrAwardFailed      = errors.New("xp award failed")
)

// WeekNumber scopes weekly state to a (year, ISO week) pair.
type WeekNumber struct {
	Week int
	Year int
}

// WeekNumberFromDate returns the ISO week number that corresponds to the week
// containing the provided date, taking the desired week start day into
// account. The week start day can shift the ISO week into the previous
// calendar week when it is earlier than Monday.
func WeekNumberFromDate(date time.Time, weekStartDay time.Weekday) WeekNumber {
	if weekStartDay < time.Sunday || weekStartDay > time.Saturday {
		weekStartDay = time.Monday
	}

	delta := (int(date.Weekday()) - int(weekStartDay) + 7) % 7
	startOfWeek := date.AddDate(0, 0, -delta)

	year, week := startOfWeek.ISOWeek()
	return WeekNumber{Year: year, Week: week}
}

// String returns the ISO week format ISO 8601 e.g. "2025-W03"
func (w WeekNumber) String() string {
	return fmt.Sprintf("%04d-W%02d", w.Year, w.Week)
}

// Equal returns true when both the year and week match.
func (w WeekNumber) Equal(other WeekNumber) bool {
	return w.Year == other.Year && w.Week == other.Week
}

// ChallengePrompt is one entry of the static weekly challenge pool.
// Keep this list stable and append-only: the shown set is derived from
// positions in it.
type ChallengePrompt struct {
	Title       string
	Description string
}

var challengePrompts = []ChallengePrompt{
	{"Morning walk", "Take a 20 minute walk before your first class."},
	{"Gratitude note", "Write down three things you are grateful for."},
	{"Screen-free hour", "Spend one hour without any screens."},
	{"Reach out", "Message a friend you have not talked to in a while."},
	{"Deep work block", "Study for 50 minutes without interruptions."},
	{"Hydration check", "Drink eight glasses of water today."},
	{"Early night", "Be in bed before midnight."},
	{"Declutter", "Tidy your desk or one shelf."},
	{"New recipe", "Cook something you have never made before."},
	{"Stretch break", "Do ten minutes of stretching between study sessions."},
}

// ChallengeSlots is how many challenges are shown per week. Completion state
// is stored per slot id (0..ChallengeSlots-1) under the week key.
const ChallengeSlots = 3

// Challenge is a prompt assigned to one of the week's slots.
type Challenge struct {
	Slot        int
	Title       string
	Description string
}

// ChallengesForWeek deterministically selects the week's prompts: for week W
// and pool length N the slots map to prompts W mod N, (W+3) mod N and
// (W+6) mod N. Every client computes the same set for the same calendar week
// without any server coordination.
func ChallengesForWeek(week WeekNumber) []Challenge {
	n := len(challengePrompts)
	challenges := make([]Challenge, 0, ChallengeSlots)
	for slot := 0; slot < ChallengeSlots; slot++ {
		prompt := challengePrompts[(week.Week+3*slot)%n]
		challenges = append(challenges, Challenge{
			Slot:        slot,
			Title:       prompt.Title,
			Description: prompt.Description,
		})
	}
	return challenges
}

var moveMessages = []string{
	"Take a mindful pause between classes today.",
	"One small step on the board is still a step.",
	"Check in with yourself before checking your inbox.",
	"Celebrate something you finished this week.",
	"Balance looks different every week, and that is fine.",
	"A short walk counts as progress too.",
	"Ask someone how their week is going.",
}

// MoveMessageFor rotates the daily motivational message deterministically.
func MoveMessageFor(date time.Time) string {
	return moveMessages[date.YearDay()%len(moveMessages)]
}

// Xp is an experience total/goal pair.
type Xp struct {
	Total int
	Goal  int
}

// Snapshot is the aggregate the UniBoard page renders. The progress map
// carries 0..5 scores per category.
type Snapshot struct {
	MoveMessage string
	Progress    map[string]int
	Xp          Xp
	Badges      int
	BoardPos    int
}

// CompletionResult reports the outcome of a challenge completion attempt.
// Awarded is false when the challenge was already completed this week; the
// ledger guarantees at most one award per (user, week, slot).
type CompletionResult struct {
	Awarded bool
	Amount  int
	XpTotal int
}

// State is the per-user persisted board row: the experience counter plus the
// activity counters progress scores derive from.
type State struct {
	UserUid        string
	XpTotal        int
	XpGoal         int
	JournalEntries int
	CalendarEvents int
	ChallengesDone int
}

var badgeThresholds = []int{100, 250, 500, 1000}

// BadgesForXp returns how many badge tiers the given total has unlocked.
func BadgesForXp(total int) int {
	badges := 0
	for _, threshold := range badgeThresholds {
		if total >= threshold {
			badges++
		}
	}
	return badges
}
