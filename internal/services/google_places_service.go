package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"navigo/pkg/cache"
	"navigo/pkg/config"
)

const providerCacheTTL = 24 * time.Hour

// GooglePlace is one text-search result, kept rich enough for the hotel and
// restaurant finders to filter on rating and review counts.
type GooglePlace struct {
	PlaceID          string  `json:"place_id"`
	Name             string  `json:"name"`
	FormattedAddress string  `json:"formatted_address"`
	Rating           float64 `json:"rating"`
	UserRatingsTotal int     `json:"user_ratings_total"`
	PriceLevel       int     `json:"price_level"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	Photos []struct {
		PhotoReference string `json:"photo_reference"`
	} `json:"photos"`
}

func (g GooglePlace) ToPlace() Place {
	return Place{
		ID:        g.PlaceID,
		Name:      g.Name,
		Address:   g.FormattedAddress,
		Latitude:  g.Geometry.Location.Lat,
		Longitude: g.Geometry.Location.Lng,
		HasCoords: g.Geometry.Location.Lat != 0 || g.Geometry.Location.Lng != 0,
	}
}

type GooglePlacesInterface interface {
	SearchPlaces(ctx context.Context, query, region string) ([]GooglePlace, error)
	GetCoordinates(ctx context.Context, query, region string) (lat, lng float64, err error)
	GetPlaceImages(ctx context.Context, placeID string) ([]string, error)
}

type GooglePlacesClient struct {
	http    *http.Client
	apiKey  string
	baseURL string
	cache   cache.Cache
}

func NewGooglePlacesClient(cfg *config.Config, responseCache cache.Cache) GooglePlacesInterface {
	return &GooglePlacesClient{
		http:    &http.Client{Timeout: 15 * time.Second},
		apiKey:  cfg.GooglePlacesAPIKey,
		baseURL: cfg.GooglePlacesBaseURL,
		cache:   responseCache,
	}
}

// SearchPlaces runs a text search. Results are cached for a day; Google
// rate-limits text search hard enough that cold lookups are the exception.
func (c *GooglePlacesClient) SearchPlaces(ctx context.Context, query, region string) ([]GooglePlace, error) {
	cacheKey := fmt.Sprintf("google_places:%s:%s", query, region)

	var cached []GooglePlace
	if found, _ := c.cache.Get(ctx, cacheKey, &cached); found {
		return cached, nil
	}

	q := url.Values{}
	q.Set("query", fmt.Sprintf("%s in %s", query, region))
	q.Set("key", c.apiKey)
	q.Set("language", "ko")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/textsearch/json?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google places http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google places bad status: %s", resp.Status)
	}

	var payload struct {
		Results []GooglePlace `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("google places decode: %w", err)
	}

	if err := c.cache.Set(ctx, cacheKey, payload.Results, providerCacheTTL); err != nil {
		log.Printf("Failed to cache %s: %v", cacheKey, err)
	}
	return payload.Results, nil
}

func (c *GooglePlacesClient) GetCoordinates(ctx context.Context, query, region string) (float64, float64, error) {
	results, err := c.SearchPlaces(ctx, query, region)
	if err != nil {
		return 0, 0, err
	}
	for _, r := range results {
		loc := r.Geometry.Location
		if loc.Lat != 0 || loc.Lng != 0 {
			return loc.Lat, loc.Lng, nil
		}
	}
	return 0, 0, fmt.Errorf("no coordinates for %q", query)
}

// GetPlaceImages resolves up to three photo URLs through the place details
// endpoint.
func (c *GooglePlacesClient) GetPlaceImages(ctx context.Context, placeID string) ([]string, error) {
	cacheKey := "google_place_images:" + placeID

	var cached []string
	if found, _ := c.cache.Get(ctx, cacheKey, &cached); found {
		return cached, nil
	}

	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/details/json?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google place details http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google place details bad status: %s", resp.Status)
	}

	var payload struct {
		Result struct {
			Photos []struct {
				PhotoReference string `json:"photo_reference"`
			} `json:"photos"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("google place details decode: %w", err)
	}

	var photoURLs []string
	for i, photo := range payload.Result.Photos {
		if i == 3 {
			break
		}
		if photo.PhotoReference == "" {
			continue
		}
		photoURLs = append(photoURLs,
			fmt.Sprintf("%s/photo?maxwidth=400&photoreference=%s&key=%s", c.baseURL, photo.PhotoReference, c.apiKey))
	}

	if len(photoURLs) > 0 {
		if err := c.cache.Set(ctx, cacheKey, photoURLs, providerCacheTTL); err != nil {
			log.Printf("Failed to cache %s: %v", cacheKey, err)
		}
	}
	return photoURLs, nil
}
