package event

import (
	"context"
	"fmt"
	"sync"
)

type RepositoryStub struct {
	mu       sync.RWMutex
	items    map[string]Event  // uid -> event
	userUids map[string]string // uid -> owner
	nextId   int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		items:    make(map[string]Event),
		userUids: make(map[string]string),
		nextId:   1,
	}
}

func (r *RepositoryStub) StoreEvent(ctx context.Context, userUid string, event Event) (Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.UID == "" {
		event.UID = fmt.Sprintf("event-%d", r.nextId)
	}
	event.Revision = 1

	r.items[event.UID] = event
	r.userUids[event.UID] = userUid
	r.nextId++

	return event, nil
}

func (r *RepositoryStub) GetEvents(ctx context.Context, userUid string) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Event, 0, len(r.items))
	for uid, event := range r.items {
		if r.userUids[uid] == userUid {
			result = append(result, Normalize(event))
		}
	}
	return result, nil
}

func (r *RepositoryStub) GetEvent(ctx context.Context, userUid string, eventUid string) (Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	event, exists := r.items[eventUid]
	if !exists || r.userUids[eventUid] != userUid {
		return Event{}, ErrNotFound
	}
	return Normalize(event), nil
}

func (r *RepositoryStub) UpdateEvent(ctx context.Context, userUid string, event Event) (Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.items[event.UID]
	if !exists || r.userUids[event.UID] != userUid {
		return Event{}, ErrNotFound
	}
	if stored.Revision != event.Revision {
		return Event{}, ErrConflict
	}

	event.Revision++
	r.items[event.UID] = event

	return event, nil
}

func (r *RepositoryStub) DeleteEvent(ctx context.Context, userUid string, eventUid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.items[eventUid]
	if !exists || r.userUids[eventUid] != userUid {
		return ErrNotFound
	}

	delete(r.items, eventUid)
	delete(r.userUids, eventUid)

	return nil
}

func (r *RepositoryStub) HasEventFromSource(ctx context.Context, userUid string, sourceUid string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for uid, event := range r.items {
		if r.userUids[uid] == userUid && event.SourceUid == sourceUid {
			return true, nil
		}
	}
	return false, nil
}

// Reset clears the stub between tests.
func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = make(map[string]Event)
	r.userUids = make(map[string]string)
	r.nextId = 1
}
