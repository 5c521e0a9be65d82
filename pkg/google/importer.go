package google

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/unimind/unimind/pkg/event"
	"github.com/unimind/unimind/pkg/user"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

var ErrUnauthenticated = errors.New("user is unauthenticated, authentication is required")

// Importer copies upcoming Google Calendar events into the local
// calendar. Events already imported once are skipped, keyed by their
// Google event id.
type Importer struct {
	auth   *GoogleAuth
	events *event.Service
}

func NewImporter(auth *GoogleAuth, events *event.Service) *Importer {
	return &Importer{auth: auth, events: events}
}

type ImportResult struct {
	Imported int
	Skipped  int
}

// Import pulls events from the user's primary calendar between from and to.
func (i *Importer) Import(ctx context.Context, from time.Time, to time.Time) (*ImportResult, error) {
	userUid, err := user.CurrentUid(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	client, err := i.auth.getClient(ctx, userUid)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Google auth client: %w", err)
	}
	if client == nil {
		log.Debug("user is unauthenticated, authentication is required")
		return nil, ErrUnauthenticated
	}

	service, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Google Calendar service: %w", err)
	}

	googleEvents, err := service.Events.List("primary").
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Do()
	if err != nil {
		err := fmt.Errorf("unable to retrieve events from Google Calendar: %v", err)
		log.Error(err)
		return nil, err
	}

	result := &ImportResult{}
	for _, item := range googleEvents.Items {
		imported, err := i.importOne(ctx, item)
		if err != nil {
			return nil, err
		}
		if imported {
			result.Imported++
		} else {
			result.Skipped++
		}
	}
	return result, nil
}

func (i *Importer) importOne(ctx context.Context, item *gcal.Event) (bool, error) {
	alreadyImported, err := i.events.HasImported(ctx, item.Id)
	if err != nil {
		return false, err
	}
	if alreadyImported {
		return false, nil
	}

	converted, err := googleEventToEvent(item)
	if err != nil {
		log.Warnf("skipping Google event %s: %v", item.Id, err)
		return false, nil
	}

	if _, err := i.events.Create(ctx, *converted); err != nil {
		return false, fmt.Errorf("unable to store imported event: %w", err)
	}
	return true, nil
}

func googleEventToEvent(item *gcal.Event) (*event.Event, error) {
	title := item.Summary
	if title == "" {
		title = "(untitled)"
	}
	converted := event.Event{
		Title:     title,
		Notes:     item.Description,
		SourceUid: item.Id,
	}

	// All-day events carry a Date instead of a DateTime.
	if item.Start.DateTime == "" {
		startTime, err := time.Parse("2006-01-02", item.Start.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid all-day start date: %w", err)
		}
		endTime, err := time.Parse("2006-01-02", item.End.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid all-day end date: %w", err)
		}
		converted.AllDay = true
		converted.StartTime = startTime
		converted.EndTime = endTime
		return &converted, nil
	}

	startTime, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time: %w", err)
	}
	endTime, err := time.Parse(time.RFC3339, item.End.DateTime)
	if err != nil {
		return nil, fmt.Errorf("invalid end time: %w", err)
	}
	converted.StartTime = startTime
	converted.EndTime = endTime
	return &converted, nil
}
