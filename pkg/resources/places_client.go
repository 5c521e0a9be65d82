package resources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/unimind/unimind/internal/config"
)

// searchRadiusMeters is roughly 20 miles around the campus.
const searchRadiusMeters = 32187

type LatLng struct {
	Lat float64 `json:"latitude"`
	Lng float64 `json:"longitude"`
}

// LocationClient resolves a school name to coordinates and finds
// wellness-related places around them.
type LocationClient interface {
	Geocode(ctx context.Context, query string) (*LatLng, error)
	SearchNearby(ctx context.Context, location LatLng) ([]Resource, error)
	SearchText(ctx context.Context, location LatLng, query string) ([]Resource, error)
}

type LocationClientImpl struct {
	apiKey     string
	geocodeUrl string
	placesUrl  string
	httpClient *http.Client
}

func NewLocationClient(cfg config.Places, apiKey string) *LocationClientImpl {
	return &LocationClientImpl{
		apiKey:     apiKey,
		geocodeUrl: cfg.GeocodeUrl,
		placesUrl:  cfg.PlacesUrl,
		httpClient: &http.Client{
			Timeout: 12 * time.Second,
		},
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves a free-form school name. A nil location with a nil
// error means the address was simply not found.
func (c *LocationClientImpl) Geocode(ctx context.Context, query string) (*LatLng, error) {
	params := url.Values{}
	params.Set("address", query)
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, "GET", c.geocodeUrl+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("could not create geocode request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("could not decode geocode response: %w", err)
	}
	log.Debugf("geocode status for %q: %s", query, decoded.Status)

	if len(decoded.Results) == 0 {
		return nil, nil
	}
	location := decoded.Results[0].Geometry.Location
	return &LatLng{Lat: location.Lat, Lng: location.Lng}, nil
}

type place struct {
	DisplayName struct {
		Text string `json:"text"`
	} `json:"displayName"`
	FormattedAddress string `json:"formattedAddress"`
	GoogleMapsUri    string `json:"googleMapsUri"`
}

type placesResponse struct {
	Places []place `json:"places"`
}

func (c *LocationClientImpl) SearchNearby(ctx context.Context, location LatLng) ([]Resource, error) {
	payload := map[string]any{
		"includedTypes": []string{
			"doctor", "psychologist", "psychiatrist", "hospital", "clinic",
			"university", "school",
		},
		"maxResultCount": 20,
		"rankPreference": "DISTANCE",
		"locationRestriction": map[string]any{
			"circle": map[string]any{
				"center": location,
				"radius": searchRadiusMeters,
			},
		},
	}
	return c.searchPlaces(ctx, "/places:searchNearby", payload)
}

func (c *LocationClientImpl) SearchText(ctx context.Context, location LatLng, query string) ([]Resource, error) {
	payload := map[string]any{
		"textQuery":      query,
		"maxResultCount": 20,
		"locationBias": map[string]any{
			"circle": map[string]any{
				"center": location,
				"radius": searchRadiusMeters,
			},
		},
	}
	return c.searchPlaces(ctx, "/places:searchText", payload)
}

func (c *LocationClientImpl) searchPlaces(ctx context.Context, path string, payload map[string]any) ([]Resource, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("could not encode places request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.placesUrl+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not create places request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	// FieldMask limits the response to the fields we render.
	req.Header.Set("X-Goog-FieldMask", "places.displayName,places.formattedAddress,places.googleMapsUri")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places request returned status %d", resp.StatusCode)
	}

	var decoded placesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("could not decode places response: %w", err)
	}

	result := make([]Resource, 0, len(decoded.Places))
	for _, p := range decoded.Places {
		if p.DisplayName.Text == "" {
			continue
		}
		description := p.FormattedAddress
		if description == "" {
			description = "Address not available"
		}
		mapsUrl := p.GoogleMapsUri
		if mapsUrl == "" {
			mapsUrl = "#"
		}
		result = append(result, Resource{Name: p.DisplayName.Text, Description: description, Url: mapsUrl})
	}
	return result, nil
}
