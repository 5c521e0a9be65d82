package board

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	GetState(ctx context.Context, userUid string) (State, error)
	AddXp(ctx context.Context, userUid string, amount int) (int, error)
	IncrementJournalEntries(ctx context.Context, userUid string) error
	IncrementCalendarEvents(ctx context.Context, userUid string) error
	IncrementChallengesDone(ctx context.Context, userUid string) error
	CompletedChallenges(ctx context.Context, userUid string, week WeekNumber) ([]int, error)
	MarkChallengeCompleted(ctx context.Context, userUid string, week WeekNumber, slot int) error
	UnmarkChallengeCompleted(ctx context.Context, userUid string, week WeekNumber, slot int) error
}

type RepositoryImpl struct {
	db            *sql.DB
	defaultXpGoal int
}

func NewRepository(db *sql.DB, defaultXpGoal int) *RepositoryImpl {
	return &RepositoryImpl{db: db, defaultXpGoal: defaultXpGoal}
}

// GetState loads the user's board row, creating a default one on first use.
func (r *RepositoryImpl) GetState(ctx context.Context, userUid string) (State, error) {
	query := `SELECT user_id, xp_total, xp_goal, journal_entries, calendar_events, challenges_done
              FROM board_state WHERE user_id = ?`

	var state State
	err := r.db.QueryRowContext(ctx, query, userUid).Scan(
		&state.UserUid,
		&state.XpTotal,
		&state.XpGoal,
		&state.JournalEntries,
		&state.CalendarEvents,
		&state.ChallengesDone,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return r.createState(ctx, userUid)
	} else if err != nil {
		err := fmt.Errorf("could not load board state: %w", err)
		log.Error(err)
		return State{}, err
	}
	return state, nil
}

func (r *RepositoryImpl) createState(ctx context.Context, userUid string) (State, error) {
	state := State{UserUid: userUid, XpGoal: r.defaultXpGoal}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO board_state (user_id, xp_total, xp_goal, journal_entries, calendar_events, challenges_done)
         VALUES (?, 0, ?, 0, 0, 0)`, userUid, r.defaultXpGoal)
	if err != nil {
		err := fmt.Errorf("could not create board state: %w", err)
		log.Error(err)
		return State{}, err
	}
	return state, nil
}

func (r *RepositoryImpl) AddXp(ctx context.Context, userUid string, amount int) (int, error) {
	if _, err := r.GetState(ctx, userUid); err != nil {
		return 0, err
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE board_state SET xp_total = xp_total + ? WHERE user_id = ?`, amount, userUid)
	if err != nil {
		err := fmt.Errorf("could not add xp: %w", err)
		log.Error(err)
		return 0, err
	}
	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT xp_total FROM board_state WHERE user_id = ?`, userUid).Scan(&total); err != nil {
		return 0, fmt.Errorf("could not read xp total: %w", err)
	}
	return total, nil
}

func (r *RepositoryImpl) IncrementJournalEntries(ctx context.Context, userUid string) error {
	return r.incrementCounter(ctx, userUid, "journal_entries")
}

func (r *RepositoryImpl) IncrementCalendarEvents(ctx context.Context, userUid string) error {
	return r.incrementCounter(ctx, userUid, "calendar_events")
}

func (r *RepositoryImpl) IncrementChallengesDone(ctx context.Context, userUid string) error {
	return r.incrementCounter(ctx, userUid, "challenges_done")
}

func (r *RepositoryImpl) incrementCounter(ctx context.Context, userUid string, column string) error {
	if _, err := r.GetState(ctx, userUid); err != nil {
		return err
	}
	// column comes from the fixed call sites above, never from input
	query := fmt.Sprintf(`UPDATE board_state SET %s = %s + 1 WHERE user_id = ?`, column, column)
	if _, err := r.db.ExecContext(ctx, query, userUid); err != nil {
		err := fmt.Errorf("could not increment %s: %w", column, err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) CompletedChallenges(ctx context.Context, userUid string, week WeekNumber) ([]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT challenge_id FROM challenge_ledger WHERE user_id = ? AND year = ? AND week = ?`,
		userUid, week.Year, week.Week)
	if err != nil {
		err := fmt.Errorf("could not query challenge ledger: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var completed []int
	for rows.Next() {
		var slot int
		if err := rows.Scan(&slot); err != nil {
			return nil, fmt.Errorf("could not scan ledger row: %w", err)
		}
		completed = append(completed, slot)
	}
	return completed, rows.Err()
}

func (r *RepositoryImpl) MarkChallengeCompleted(ctx context.Context, userUid string, week WeekNumber, slot int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO challenge_ledger (user_id, year, week, challenge_id, completed_at) VALUES (?, ?, ?, ?, ?)`,
		userUid, week.Year, week.Week, slot, time.Now().UnixMilli())
	if err != nil {
		err := fmt.Errorf("could not mark challenge completed: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) UnmarkChallengeCompleted(ctx context.Context, userUid string, week WeekNumber, slot int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM challenge_ledger WHERE user_id = ? AND year = ? AND week = ? AND challenge_id = ?`,
		userUid, week.Year, week.Week, slot)
	if err != nil {
		err := fmt.Errorf("could not unmark challenge: %w", err)
		log.Error(err)
		return err
	}
	return nil
}
