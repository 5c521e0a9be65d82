package journal

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/unimind/unimind/internal/event_bus"
	"github.com/unimind/unimind/internal/utils"
	"github.com/unimind/unimind/pkg/user"
)

type Service struct {
	repo  Repository
	bus   *event_bus.EventBus
	clock utils.Clock
}

func NewService(repo Repository, bus *event_bus.EventBus, clock utils.Clock) *Service {
	return &Service{repo: repo, bus: bus, clock: clock}
}

func (s *Service) AddEntry(ctx context.Context, entry Entry) (*Entry, error) {
	userUid, err := user.CurrentUid(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	if err := ValidateMood(entry.Mood); err != nil {
		return nil, err
	}
	entry.CreatedAt = s.clock.Now().UTC()

	stored, err := s.repo.StoreEntry(ctx, userUid, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to store journal entry: %w", err)
	}

	if s.bus != nil {
		publishErr := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.JournalEntryCreatedType, event_bus.JournalEntryCreated{
			UID:     stored.UID,
			UserUid: userUid,
			Mood:    stored.Mood,
		}))
		if publishErr != nil {
			log.Warnf("failed to publish journal entry creation: %v", publishErr)
		}
	}

	return &stored, nil
}

// GetRecentEntries returns the user's entries newer than the given number of
// days, newest first.
func (s *Service) GetRecentEntries(ctx context.Context, days int) ([]Entry, error) {
	userUid, err := user.CurrentUid(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if days <= 0 {
		days = 30
	}

	cutoff := s.clock.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour)
	return s.repo.GetEntriesSince(ctx, userUid, cutoff)
}
