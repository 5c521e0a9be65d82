package board

import (
	"context"
	"sync"
)

type ledgerKey struct {
	userUid string
	week    WeekNumber
	slot    int
}

type RepositoryStub struct {
	mu            sync.RWMutex
	states        map[string]State
	ledger        map[ledgerKey]bool
	defaultXpGoal int
}

func NewRepositoryStub(defaultXpGoal int) *RepositoryStub {
	return &RepositoryStub{
		states:        make(map[string]State),
		ledger:        make(map[ledgerKey]bool),
		defaultXpGoal: defaultXpGoal,
	}
}

func (r *RepositoryStub) GetState(ctx context.Context, userUid string) (State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stateLocked(userUid), nil
}

func (r *RepositoryStub) stateLocked(userUid string) State {
	state, ok := r.states[userUid]
	if !ok {
		state = State{UserUid: userUid, XpGoal: r.defaultXpGoal}
		r.states[userUid] = state
	}
	return state
}

func (r *RepositoryStub) AddXp(ctx context.Context, userUid string, amount int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state := r.stateLocked(userUid)
	state.XpTotal += amount
	r.states[userUid] = state
	return state.XpTotal, nil
}

func (r *RepositoryStub) IncrementJournalEntries(ctx context.Context, userUid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	state := r.stateLocked(userUid)
	state.JournalEntries++
	r.states[userUid] = state
	return nil
}

func (r *RepositoryStub) IncrementCalendarEvents(ctx context.Context, userUid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	state := r.stateLocked(userUid)
	state.CalendarEvents++
	r.states[userUid] = state
	return nil
}

func (r *RepositoryStub) IncrementChallengesDone(ctx context.Context, userUid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	state := r.stateLocked(userUid)
	state.ChallengesDone++
	r.states[userUid] = state
	return nil
}

func (r *RepositoryStub) CompletedChallenges(ctx context.Context, userUid string, week WeekNumber) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var completed []int
	for key := range r.ledger {
		if key.userUid == userUid && key.week.Equal(week) {
			completed = append(completed, key.slot)
		}
	}
	return completed, nil
}

func (r *RepositoryStub) MarkChallengeCompleted(ctx context.Context, userUid string, week WeekNumber, slot int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ledger[ledgerKey{userUid, week, slot}] = true
	return nil
}

func (r *RepositoryStub) UnmarkChallengeCompleted(ctx context.Context, userUid string, week WeekNumber, slot int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.ledger, ledgerKey{userUid, week, slot})
	return nil
}
