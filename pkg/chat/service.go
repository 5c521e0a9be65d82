package chat

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/unimind/unimind/internal/utils"
	"github.com/unimind/unimind/pkg/event"
	"github.com/unimind/unimind/pkg/user"
)

type Service struct {
	repo      Repository
	analyzer  EmotionAnalyzer
	responder Responder
	events    *event.Service
	clock     utils.Clock
}

func NewService(repo Repository, analyzer EmotionAnalyzer, responder Responder, events *event.Service, clock utils.Clock) *Service {
	return &Service{
		repo:      repo,
		analyzer:  analyzer,
		responder: responder,
		events:    events,
		clock:     clock,
	}
}

// Send runs one chat turn: analyze the message, generate a reply with the
// student's upcoming calendar as context, and record the exchange.
func (s *Service) Send(ctx context.Context, userMessage string) (*Message, error) {
	userUid, err := user.CurrentUid(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if strings.TrimSpace(userMessage) == "" {
		return nil, ErrEmptyMessage
	}

	emotion := s.analyzer.Analyze(ctx, userMessage)
	response := s.responder.Respond(ctx, userMessage, emotion, s.upcomingEvents(ctx))

	message := Message{
		UserMessage: userMessage,
		AiResponse:  response,
		Emotion:     emotion,
		CreatedAt:   s.clock.Now().UTC(),
	}
	stored, err := s.repo.StoreMessage(ctx, userUid, message)
	if err != nil {
		return nil, fmt.Errorf("failed to store chat message: %w", err)
	}
	return &stored, nil
}

func (s *Service) History(ctx context.Context, limit int) ([]Message, error) {
	userUid, err := user.CurrentUid(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if limit <= 0 {
		limit = 20
	}
	return s.repo.GetRecentMessages(ctx, userUid, limit)
}

// upcomingEvents returns the next few calendar events. Failures only cost
// the context, not the chat turn.
func (s *Service) upcomingEvents(ctx context.Context) []event.Event {
	if s.events == nil {
		return nil
	}
	all, err := s.events.List(ctx)
	if err != nil {
		log.Warnf("failed to load calendar context for chat: %v", err)
		return nil
	}

	now := s.clock.Now()
	upcoming := make([]event.Event, 0, 3)
	for _, e := range all {
		if e.EndTime.Before(now) {
			continue
		}
		upcoming = append(upcoming, e)
		if len(upcoming) == 3 {
			break
		}
	}
	return upcoming
}
