package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	StoreEvent(ctx context.Context, userUid string, event Event) (Event, error)
	GetEvents(ctx context.Context, userUid string) ([]Event, error)
	GetEvent(ctx context.Context, userUid string, eventUid string) (Event, error)
	// UpdateEvent persists the event only when the stored revision still
	// matches event.Revision. ErrConflict reports a lost race.
	UpdateEvent(ctx context.Context, userUid string, event Event) (Event, error)
	DeleteEvent(ctx context.Context, userUid string, eventUid string) error
	HasEventFromSource(ctx context.Context, userUid string, sourceUid string) (bool, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) StoreEvent(ctx context.Context, userUid string, event Event) (Event, error) {
	query := `INSERT INTO events (
                            uid,
                            user_id,
                            title,
                            notes,
                            all_day,
                            start_time,
                            end_time,
                            revision,
                            source_uid,
                            created_at
						) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if event.UID == "" {
		event.UID = uuid.New().String()
	}
	event.Revision = 1
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, query,
		event.UID,
		userUid,
		event.Title,
		event.Notes,
		event.AllDay,
		EncodeStoredTime(event.StartTime),
		EncodeStoredTime(event.EndTime),
		event.Revision,
		event.SourceUid,
		event.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		err := fmt.Errorf("could not store event: %w", err)
		log.Error(err)
		return Event{}, err
	}

	return event, nil
}

func (r *RepositoryImpl) GetEvents(ctx context.Context, userUid string) ([]Event, error) {
	// Ordering happens in memory after decoding: the start_time column holds
	// two encodings that do not sort together lexically.
	query := `SELECT uid, title, notes, all_day, start_time, end_time, revision, source_uid, created_at
              FROM events
              WHERE user_id = ?`

	rows, err := r.db.QueryContext(ctx, query, userUid)
	if err != nil {
		err := fmt.Errorf("could not query events: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	events := make([]Event, 0, 10)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *RepositoryImpl) GetEvent(ctx context.Context, userUid string, eventUid string) (Event, error) {
	query := `SELECT uid, title, notes, all_day, start_time, end_time, revision, source_uid, created_at
              FROM events
              WHERE user_id = ? AND uid = ?`

	row := r.db.QueryRowContext(ctx, query, userUid, eventUid)
	event, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Event{}, ErrNotFound
	} else if err != nil {
		log.Error(err)
		return Event{}, err
	}
	return event, nil
}

func (r *RepositoryImpl) UpdateEvent(ctx context.Context, userUid string, event Event) (Event, error) {
	query := `UPDATE events
              SET title = ?, notes = ?, all_day = ?, start_time = ?, end_time = ?, revision = revision + 1
              WHERE uid = ? AND user_id = ? AND revision = ?`

	result, err := r.db.ExecContext(ctx, query,
		event.Title,
		event.Notes,
		event.AllDay,
		EncodeStoredTime(event.StartTime),
		EncodeStoredTime(event.EndTime),
		event.UID,
		userUid,
		event.Revision,
	)
	if err != nil {
		err := fmt.Errorf("could not update event: %w", err)
		log.Error(err)
		return Event{}, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return Event{}, fmt.Errorf("could not check affected rows: %w", err)
	}
	if affected == 0 {
		// Either the event is gone or another writer bumped the revision.
		if _, err := r.GetEvent(ctx, userUid, event.UID); errors.Is(err, ErrNotFound) {
			return Event{}, ErrNotFound
		}
		return Event{}, ErrConflict
	}

	event.Revision++
	return event, nil
}

func (r *RepositoryImpl) DeleteEvent(ctx context.Context, userUid string, eventUid string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE uid = ? AND user_id = ?`, eventUid, userUid)
	if err != nil {
		err := fmt.Errorf("could not delete event: %w", err)
		log.Error(err)
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not check affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RepositoryImpl) HasEventFromSource(ctx context.Context, userUid string, sourceUid string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM events WHERE user_id = ? AND source_uid = ?`, userUid, sourceUid).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("could not check source uid: %w", err)
	}
	return count > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (Event, error) {
	var event Event
	var startRaw, endRaw, createdAtRaw string
	var sourceUid sql.NullString
	if err := row.Scan(
		&event.UID,
		&event.Title,
		&event.Notes,
		&event.AllDay,
		&startRaw,
		&endRaw,
		&event.Revision,
		&sourceUid,
		&createdAtRaw,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Event{}, err
		}
		return Event{}, fmt.Errorf("could not scan event row: %w", err)
	}

	start, err := DecodeStoredTime(startRaw)
	if err != nil {
		return Event{}, fmt.Errorf("event %s: %w", event.UID, err)
	}
	end, err := DecodeStoredTime(endRaw)
	if err != nil {
		return Event{}, fmt.Errorf("event %s: %w", event.UID, err)
	}
	event.StartTime = start
	event.EndTime = end
	if sourceUid.Valid {
		event.SourceUid = sourceUid.String
	}
	if createdAt, err := time.Parse(time.RFC3339, createdAtRaw); err == nil {
		event.CreatedAt = createdAt
	}

	return Normalize(event), nil
}
