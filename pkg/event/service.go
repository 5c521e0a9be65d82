package event

import (
	"context"
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"
	"github.com/unimind/unimind/internal/event_bus"
	"github.com/unimind/unimind/pkg/user"
)

type Service struct {
	repo Repository
	bus  *event_bus.EventBus
}

func NewService(repo Repository, bus *event_bus.EventBus) *Service {
	return &Service{repo: repo, bus: bus}
}

// List returns all events of the current user ordered by start time ascending.
func (s *Service) List(ctx context.Context) ([]Event, error) {
	userUid, err := user.CurrentUid(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	events, err := s.repo.GetEvents(ctx, userUid)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartTime.Before(events[j].StartTime)
	})
	return events, nil
}

func (s *Service) Create(ctx context.Context, event Event) (*Event, error) {
	userUid, err := user.CurrentUid(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	if err := Validate(event); err != nil {
		return nil, err
	}

	stored, err := s.repo.StoreEvent(ctx, userUid, event)
	if err != nil {
		return nil, fmt.Errorf("failed to store event: %w", err)
	}

	s.publish(ctx, event_bus.CalendarEventCreatedType, event_bus.CalendarEventCreated{
		UID:       stored.UID,
		UserUid:   userUid,
		Title:     stored.Title,
		StartTime: stored.StartTime,
		EndTime:   stored.EndTime,
	})

	return &stored, nil
}

func (s *Service) Update(ctx context.Context, event Event) (*Event, error) {
	userUid, err := user.CurrentUid(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	if err := Validate(event); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateEvent(ctx, userUid, event)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) Delete(ctx context.Context, eventUid string) error {
	userUid, err := user.CurrentUid(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}

	if err := s.repo.DeleteEvent(ctx, userUid, eventUid); err != nil {
		return err
	}

	s.publish(ctx, event_bus.CalendarEventDeletedType, event_bus.CalendarEventDeleted{
		UID:     eventUid,
		UserUid: userUid,
	})
	return nil
}

// HasImported reports whether an event from the given upstream source id
// already exists for the current user.
func (s *Service) HasImported(ctx context.Context, sourceUid string) (bool, error) {
	userUid, err := user.CurrentUid(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.HasEventFromSource(ctx, userUid, sourceUid)
}

func (s *Service) publish(ctx context.Context, eventType event_bus.EventType, payload any) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(event_bus.NewEvent(ctx, eventType, payload)); err != nil {
		log.Warnf("failed to publish %s: %v", eventType, err)
	}
}
