package chat

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	StoreMessage(ctx context.Context, userUid string, message Message) (Message, error)
	GetRecentMessages(ctx context.Context, userUid string, limit int) ([]Message, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) StoreMessage(ctx context.Context, userUid string, message Message) (Message, error) {
	if message.UID == "" {
		message.UID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}

	emotionJson, err := json.Marshal(message.Emotion)
	if err != nil {
		return Message{}, fmt.Errorf("could not encode emotion: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO chat_messages (uid, user_id, user_message, ai_response, emotion, created_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		message.UID, userUid, message.UserMessage, message.AiResponse, string(emotionJson), message.CreatedAt.UnixMilli())
	if err != nil {
		err := fmt.Errorf("could not store chat message: %w", err)
		log.Error(err)
		return Message{}, err
	}
	return message, nil
}

func (r *RepositoryImpl) GetRecentMessages(ctx context.Context, userUid string, limit int) ([]Message, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT uid, user_message, ai_response, emotion, created_at FROM chat_messages
         WHERE user_id = ?
         ORDER BY created_at DESC
         LIMIT ?`,
		userUid, limit)
	if err != nil {
		err := fmt.Errorf("could not query chat messages: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	messages := make([]Message, 0, limit)
	for rows.Next() {
		var message Message
		var emotionJson string
		var createdAtMillis int64
		if err := rows.Scan(&message.UID, &message.UserMessage, &message.AiResponse, &emotionJson, &createdAtMillis); err != nil {
			return nil, fmt.Errorf("could not scan chat message row: %w", err)
		}
		if err := json.Unmarshal([]byte(emotionJson), &message.Emotion); err != nil {
			return nil, fmt.Errorf("could not decode emotion: %w", err)
		}
		message.CreatedAt = time.UnixMilli(createdAtMillis).UTC()
		messages = append(messages, message)
	}
	return messages, rows.Err()
}
