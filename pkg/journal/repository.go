package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	StoreEntry(ctx context.Context, userUid string, entry Entry) (Entry, error)
	GetEntriesSince(ctx context.Context, userUid string, since time.Time) ([]Entry, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) StoreEntry(ctx context.Context, userUid string, entry Entry) (Entry, error) {
	if entry.UID == "" {
		entry.UID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO journal_entries (uid, user_id, mood, mood_text, created_at) VALUES (?, ?, ?, ?, ?)`,
		entry.UID, userUid, entry.Mood, entry.MoodText, entry.CreatedAt.UnixMilli())
	if err != nil {
		err := fmt.Errorf("could not store journal entry: %w", err)
		log.Error(err)
		return Entry{}, err
	}
	return entry, nil
}

func (r *RepositoryImpl) GetEntriesSince(ctx context.Context, userUid string, since time.Time) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT uid, mood, mood_text, created_at FROM journal_entries
         WHERE user_id = ? AND created_at > ?
         ORDER BY created_at DESC`,
		userUid, since.UnixMilli())
	if err != nil {
		err := fmt.Errorf("could not query journal entries: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	entries := make([]Entry, 0, 10)
	for rows.Next() {
		var entry Entry
		var createdAtMillis int64
		if err := rows.Scan(&entry.UID, &entry.Mood, &entry.MoodText, &createdAtMillis); err != nil {
			return nil, fmt.Errorf("could not scan journal row: %w", err)
		}
		entry.CreatedAt = time.UnixMilli(createdAtMillis).UTC()
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
