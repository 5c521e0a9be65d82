package resources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unimind/unimind/internal/config"
)

type fakeMapsBackend struct {
	geocodeResults bool
	nearbyPlaces   []map[string]any
	textPlaces     []map[string]any

	nearbyCalled bool
	textCalled   bool
}

func (f *fakeMapsBackend) server(t *testing.T) (*httptest.Server, config.Places) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/geocode":
			response := map[string]any{"status": "ZERO_RESULTS", "results": []any{}}
			if f.geocodeResults {
				response = map[string]any{
					"status": "OK",
					"results": []any{map[string]any{
						"geometry": map[string]any{"location": map[string]any{"lat": 42.35, "lng": -71.06}},
					}},
				}
			}
			_ = json.NewEncoder(w).Encode(response)
		case "/places:searchNearby":
			f.nearbyCalled = true
			assert.NotEmpty(t, r.Header.Get("X-Goog-Api-Key"))
			assert.NotEmpty(t, r.Header.Get("X-Goog-FieldMask"))
			_ = json.NewEncoder(w).Encode(map[string]any{"places": f.nearbyPlaces})
		case "/places:searchText":
			f.textCalled = true
			_ = json.NewEncoder(w).Encode(map[string]any{"places": f.textPlaces})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	return server, config.Places{
		GeocodeUrl: server.URL + "/geocode",
		PlacesUrl:  server.URL,
	}
}

func placeJSON(name, address string) map[string]any {
	return map[string]any{
		"displayName":      map[string]any{"text": name},
		"formattedAddress": address,
		"googleMapsUri":    "https://maps.google.com/?q=" + name,
	}
}

func TestService_FindForSchool_missingSchool(t *testing.T) {
	service := NewService(NewLocationClient(config.Places{}, "key"))

	_, err := service.FindForSchool(context.Background(), "   ")

	assert.ErrorIs(t, err, ErrMissingSchool)
}

func TestService_FindForSchool_nearbyResults(t *testing.T) {
	backend := &fakeMapsBackend{
		geocodeResults: true,
		nearbyPlaces: []map[string]any{
			placeJSON("Campus Counseling Center", "12 College Ave"),
			placeJSON("Northside Clinic", "9 Main St"),
		},
	}
	_, places := backend.server(t)
	service := NewService(NewLocationClient(places, "test-key"))

	overview, err := service.FindForSchool(context.Background(), "Boston University")

	require.NoError(t, err)
	assert.Equal(t, GlobalResources, overview.Global)
	require.Len(t, overview.SchoolSpecific, 2)
	assert.Equal(t, "Campus Counseling Center", overview.SchoolSpecific[0].Name)
	assert.Equal(t, "12 College Ave", overview.SchoolSpecific[0].Description)
	assert.False(t, backend.textCalled, "text search only runs when nearby finds nothing")
}

func TestService_FindForSchool_fallsBackToTextSearch(t *testing.T) {
	backend := &fakeMapsBackend{
		geocodeResults: true,
		nearbyPlaces:   nil,
		textPlaces: []map[string]any{
			placeJSON("Wellness Hub", "1 Therapy Rd"),
		},
	}
	_, places := backend.server(t)
	service := NewService(NewLocationClient(places, "test-key"))

	overview, err := service.FindForSchool(context.Background(), "Boston University")

	require.NoError(t, err)
	assert.True(t, backend.nearbyCalled)
	assert.True(t, backend.textCalled)
	require.Len(t, overview.SchoolSpecific, 1)
	assert.Equal(t, "Wellness Hub", overview.SchoolSpecific[0].Name)
}

func TestService_FindForSchool_unknownSchool(t *testing.T) {
	backend := &fakeMapsBackend{geocodeResults: false}
	_, places := backend.server(t)
	service := NewService(NewLocationClient(places, "test-key"))

	overview, err := service.FindForSchool(context.Background(), "Atlantis Tech")

	require.NoError(t, err)
	assert.Equal(t, GlobalResources, overview.Global)
	require.Len(t, overview.SchoolSpecific, 1)
	assert.Equal(t, "Atlantis Tech", overview.SchoolSpecific[0].Name)
	assert.Contains(t, overview.SchoolSpecific[0].Description, "Not found")
	assert.False(t, backend.nearbyCalled)
}

func TestService_FindForSchool_noNearbyResultsAtAll(t *testing.T) {
	backend := &fakeMapsBackend{geocodeResults: true}
	_, places := backend.server(t)
	service := NewService(NewLocationClient(places, "test-key"))

	overview, err := service.FindForSchool(context.Background(), "Remote College")

	require.NoError(t, err)
	require.Len(t, overview.SchoolSpecific, 1)
	assert.Contains(t, overview.SchoolSpecific[0].Description, "No nearby resources")
}
