package board

import (
	"context"
	"fmt"
	"slices"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/unimind/unimind/internal/event_bus"
	"github.com/unimind/unimind/internal/utils"
	"github.com/unimind/unimind/pkg/user"
)

// XpAwarder grants experience points. The default implementation writes to the
// board repository; the indirection exists so completion can surface (and roll
// back on) award failures.
type XpAwarder interface {
	Award(ctx context.Context, userUid string, amount int) (int, error)
}

type RepoXpAwarder struct {
	repo Repository
}

func NewRepoXpAwarder(repo Repository) *RepoXpAwarder {
	return &RepoXpAwarder{repo: repo}
}

func (a *RepoXpAwarder) Award(ctx context.Context, userUid string, amount int) (int, error) {
	return a.repo.AddXp(ctx, userUid, amount)
}

type Service struct {
	repo        Repository
	awarder     XpAwarder
	bus         *event_bus.EventBus
	clock       utils.Clock
	challengeXp int
	boardTiles  int
}

func NewService(repo Repository, awarder XpAwarder, bus *event_bus.EventBus, clock utils.Clock, challengeXp int, boardTiles int) *Service {
	s := &Service{
		repo:        repo,
		awarder:     awarder,
		bus:         bus,
		clock:       clock,
		challengeXp: challengeXp,
		boardTiles:  boardTiles,
	}

	if bus != nil {
		event_bus.SubscribeTyped[event_bus.JournalEntryCreated](
			bus, event_bus.JournalEntryCreatedType,
			func(e event_bus.EventT[event_bus.JournalEntryCreated]) error {
				return s.repo.IncrementJournalEntries(e.Context(), e.Data.UserUid)
			},
		)
		event_bus.SubscribeTyped[event_bus.CalendarEventCreated](
			bus, event_bus.CalendarEventCreatedType,
			func(e event_bus.EventT[event_bus.CalendarEventCreated]) error {
				return s.repo.IncrementCalendarEvents(e.Context(), e.Data.UserUid)
			},
		)
	}

	return s
}

// GetSnapshot builds the read-only aggregate the UniBoard page renders.
func (s *Service) GetSnapshot(ctx context.Context) (Snapshot, error) {
	userUid, err := user.CurrentUid(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to get current user: %w", err)
	}

	state, err := s.repo.GetState(ctx, userUid)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load board state: %w", err)
	}

	now := s.clock.Now()
	return Snapshot{
		MoveMessage: MoveMessageFor(now),
		Progress: map[string]int{
			"academics":     clampScore(state.CalendarEvents),
			"mental_health": clampScore(state.JournalEntries),
			"life_balance":  clampScore((state.CalendarEvents + state.JournalEntries) / 2),
			"connection":    clampScore(state.ChallengesDone),
			"creativity":    clampScore(state.XpTotal / 100),
		},
		Xp:       Xp{Total: state.XpTotal, Goal: state.XpGoal},
		Badges:   BadgesForXp(state.XpTotal),
		BoardPos: (state.XpTotal / 50) % s.boardTiles,
	}, nil
}

func clampScore(v int) int {
	if v > 5 {
		return 5
	}
	if v < 0 {
		return 0
	}
	return v
}

// ChallengeStatus pairs a weekly challenge with its completion flag.
type ChallengeStatus struct {
	Challenge
	Completed bool
}

func (s *Service) currentWeek(ctx context.Context) WeekNumber {
	weekFirstDay := time.Monday
	if currentUser, err := user.CurrentUser(ctx); err == nil {
		weekFirstDay = currentUser.Settings.WeekFirstDay
	}
	return WeekNumberFromDate(s.clock.Now(), weekFirstDay)
}

// WeeklyChallenges returns the current week's deterministic prompt set with
// per-user completion flags.
func (s *Service) WeeklyChallenges(ctx context.Context) ([]ChallengeStatus, error) {
	userUid, err := user.CurrentUid(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	week := s.currentWeek(ctx)
	completed, err := s.repo.CompletedChallenges(ctx, userUid, week)
	if err != nil {
		return nil, fmt.Errorf("failed to load challenge ledger: %w", err)
	}

	challenges := ChallengesForWeek(week)
	statuses := make([]ChallengeStatus, 0, len(challenges))
	for _, c := range challenges {
		statuses = append(statuses, ChallengeStatus{
			Challenge: c,
			Completed: slices.Contains(completed, c.Slot),
		})
	}
	return statuses, nil
}

// CompleteChallenge marks a weekly challenge done and awards XP. The ledger is
// idempotent per week key: a second completion awards nothing and leaves it
// unchanged. When the award fails, the ledger entry is removed again so client
// and server never diverge permanently.
func (s *Service) CompleteChallenge(ctx context.Context, slot int) (CompletionResult, error) {
	userUid, err := user.CurrentUid(ctx)
	if err != nil {
		return CompletionResult{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if slot < 0 || slot >= ChallengeSlots {
		return CompletionResult{}, ErrUnknownChallenge
	}

	week := s.currentWeek(ctx)
	completed, err := s.repo.CompletedChallenges(ctx, userUid, week)
	if err != nil {
		return CompletionResult{}, fmt.Errorf("failed to load challenge ledger: %w", err)
	}
	if slices.Contains(completed, slot) {
		state, err := s.repo.GetState(ctx, userUid)
		if err != nil {
			return CompletionResult{}, err
		}
		return CompletionResult{Awarded: false, XpTotal: state.XpTotal}, nil
	}

	if err := s.repo.MarkChallengeCompleted(ctx, userUid, week, slot); err != nil {
		return CompletionResult{}, fmt.Errorf("failed to update challenge ledger: %w", err)
	}

	total, err := s.awarder.Award(ctx, userUid, s.challengeXp)
	if err != nil {
		// Roll the optimistic completion back instead of leaving the ledger
		// and the XP total permanently out of sync.
		if unmarkErr := s.repo.UnmarkChallengeCompleted(ctx, userUid, week, slot); unmarkErr != nil {
			log.Errorf("failed to roll back challenge completion for %s %s/%d: %v", userUid, week, slot, unmarkErr)
		}
		return CompletionResult{}, fmt.Errorf("%w: %v", ErrAwardFailed, err)
	}

	if err := s.repo.IncrementChallengesDone(ctx, userUid); err != nil {
		log.Warnf("failed to increment challenge counter for %s: %v", userUid, err)
	}

	if s.bus != nil {
		publishErr := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.ChallengeCompletedType, event_bus.ChallengeCompleted{
			UserUid:     userUid,
			ChallengeId: slot,
			Year:        week.Year,
			Week:        week.Week,
			XpAwarded:   s.challengeXp,
		}))
		if publishErr != nil {
			log.Warnf("failed to publish challenge completion: %v", publishErr)
		}
	}

	return CompletionResult{Awarded: true, Amount: s.challengeXp, XpTotal: total}, nil
}

// AwardXp adds experience points for the given user.
func (s *Service) AwardXp(ctx context.Context, userUid string, amount int) (int, error) {
	if userUid == "" {
		current, err := user.CurrentUid(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to get current user: %w", err)
		}
		userUid = current
	}
	if amount <= 0 {
		return 0, fmt.Errorf("xp amount must be positive")
	}
	return s.awarder.Award(ctx, userUid, amount)
}
