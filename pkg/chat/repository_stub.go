package chat

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type RepositoryStub struct {
	mu       sync.RWMutex
	messages map[string][]Message // userUid -> messages, oldest first
	nextId   int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{messages: make(map[string][]Message), nextId: 1}
}

func (r *RepositoryStub) StoreMessage(ctx context.Context, userUid string, message Message) (Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if message.UID == "" {
		message.UID = fmt.Sprintf("message-%d", r.nextId)
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}
	r.messages[userUid] = append(r.messages[userUid], message)
	r.nextId++
	return message, nil
}

func (r *RepositoryStub) GetRecentMessages(ctx context.Context, userUid string, limit int) ([]Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.messages[userUid]
	result := make([]Message, 0, limit)
	for i := len(stored) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, stored[i])
	}
	return result, nil
}
