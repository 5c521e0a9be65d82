package resources

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

type Service struct {
	client LocationClient
}

func NewService(client LocationClient) *Service {
	return &Service{client: client}
}

// FindForSchool looks up wellness resources near the named campus. The
// national list is always included; the local list degrades to a hint
// entry when the school cannot be located or nothing is nearby.
func (s *Service) FindForSchool(ctx context.Context, school string) (Overview, error) {
	school = strings.TrimSpace(school)
	if school == "" {
		return Overview{}, ErrMissingSchool
	}

	location, err := s.client.Geocode(ctx, school+" university campus")
	if err != nil {
		return Overview{}, fmt.Errorf("failed to geocode school: %w", err)
	}
	if location == nil {
		return Overview{
			Global: GlobalResources,
			SchoolSpecific: []Resource{{
				Name:        school,
				Description: "Not found. Try typing the full college or university name.",
			}},
		}, nil
	}

	local, err := s.client.SearchNearby(ctx, *location)
	if err != nil {
		log.Warnf("nearby search failed for %q: %v", school, err)
	}
	if len(local) == 0 {
		local, err = s.client.SearchText(ctx, *location, "mental health OR counseling OR wellness center OR therapy")
		if err != nil {
			log.Warnf("text search failed for %q: %v", school, err)
		}
	}
	if len(local) == 0 {
		local = []Resource{{
			Name:        school,
			Description: "No nearby resources found within ~20 miles.",
		}}
	}

	return Overview{Global: GlobalResources, SchoolSpecific: local}, nil
}
