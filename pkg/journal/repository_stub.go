package journal

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

type RepositoryStub struct {
	mu      sync.RWMutex
	entries map[string][]Entry // userUid -> entries
	nextId  int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{entries: make(map[string][]Entry), nextId: 1}
}

func (r *RepositoryStub) StoreEntry(ctx context.Context, userUid string, entry Entry) (Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.UID == "" {
		entry.UID = fmt.Sprintf("entry-%d", r.nextId)
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	r.entries[userUid] = append(r.entries[userUid], entry)
	r.nextId++
	return entry, nil
}

func (r *RepositoryStub) GetEntriesSince(ctx context.Context, userUid string, since time.Time) ([]Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Entry
	for _, entry := range r.entries[userUid] {
		if entry.CreatedAt.After(since) {
			result = append(result, entry)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}
