package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"navigo/pkg/cache"
	"navigo/pkg/config"
)

type KakaoMapInterface interface {
	TravelTimeProvider
	SearchPlaces(ctx context.Context, query, region string) ([]Place, error)
	GetCoordinates(ctx context.Context, query, region string) (lat, lng float64, err error)
}

/// KakaoMapClient wraps two Kakao APIs: local keyword search for places and
// coordinates, and Kakao Mobility directions for leg travel times. When
// Kakao cannot geocode a place it falls through to Google, then Naver.
type KakaoMapClient struct {
	http         *http.Client
	apiKey       string
	localBaseURL string
	naviBaseURL  string
	cache        cache.Cache

	googlePlaces GooglePlacesInterface
	naverSearch  NaverSearchInterface
}

func NewKakaoMapClient(
	cfg *config.Config,
	responseCache cache.Cache,
	googlePlaces GooglePlacesInterface,
	naverSearch NaverSearchInterface,
) KakaoMapInterface {
	return &KakaoMapClient{
		http:         &http.Client{Timeout: 15 * time.Second},
		apiKey:       cfg.KakaoRESTAPIKey,
		localBaseURL: cfg.KakaoLocalBaseURL,
		naviBaseURL:  cfg.KakaoNaviBaseURL,
		cache:        responseCache,
		googlePlaces: googlePlaces,
		naverSearch:  naverSearch,
	}
}

func (c *KakaoMapClient) get(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "KakaoAK "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("kakao http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("kakao bad status: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("kakao decode: %w", err)
	}
	return nil
}

type kakaoDocument struct {
	PlaceName    string `json:"place_name"`
	AddressName  string `json:"address_name"`
	RoadAddress  string `json:"road_address_name"`
	CategoryName string `json:"category_group_name"`
	X            string `json:"x"` // longitude
	Y            string `json:"y"` // latitude
}

func (d kakaoDocument) toPlace() Place {
	lng, errX := strconv.ParseFloat(d.X, 64)
	lat, errY := strconv.ParseFloat(d.Y, 64)

	address := d.RoadAddress
	if address == "" {
		address = d.AddressName
	}

	return Place{
		Name:      d.PlaceName,
		Address:   address,
		Category:  d.CategoryName,
		Latitude:  lat,
		Longitude: lng,
		HasCoords: errX == nil && errY == nil && (lat != 0 || lng != 0),
	}
}

func (c *KakaoMapClient) SearchPlaces(ctx context.Context, query, region string) ([]Place, error) {
	cacheKey := fmt.Sprintf("kakao_places:%s:%s", query, region)

	var cached []Place
	if found, _ := c.cache.Get(ctx, cacheKey, &cached); found {
		return cached, nil
	}

	q := url.Values{}
	q.Set("query", region+" "+query)

	var payload struct {
		Documents []kakaoDocument `json:"documents"`
	}
	if err := c.get(ctx, c.localBaseURL+"/search/keyword.json?"+q.Encode(), &payload); err != nil {
		return nil, err
	}

	places := make([]Place, 0, len(payload.Documents))
	for _, doc := range payload.Documents {
		places = append(places, doc.toPlace())
	}

	if err := c.cache.Set(ctx, cacheKey, places, providerCacheTTL); err != nil {
		log.Printf("Failed to cache %s: %v", cacheKey, err)
	}
	return places, nil
}

// GetCoordinates resolves a place name to coordinates, trying Kakao first
// and falling back to Google, then Naver.
func (c *KakaoMapClient) GetCoordinates(ctx context.Context, query, region string) (float64, float64, error) {
	if query == "" {
		return 0, 0, fmt.Errorf("empty place name")
	}

	if lat, lng, err := c.kakaoCoordinates(ctx, query); err == nil {
		return lat, lng, nil
	}

	log.Printf("Kakao has no coordinates for %q, trying Google", query)
	if lat, lng, err := c.googlePlaces.GetCoordinates(ctx, query, region); err == nil {
		return lat, lng, nil
	}

	log.Printf("Google has no coordinates for %q, trying Naver", query)
	return c.naverSearch.GetCoordinates(ctx, query, region)
}

func (c *KakaoMapClient) kakaoCoordinates(ctx context.Context, query string) (float64, float64, error) {
	cacheKey := "kakao_coords:" + query

	var cached [2]float64
	if found, _ := c.cache.Get(ctx, cacheKey, &cached); found {
		return cached[0], cached[1], nil
	}

	q := url.Values{}
	q.Set("query", query)

	var payload struct {
		Documents []kakaoDocument `json:"documents"`
	}
	if err := c.get(ctx, c.localBaseURL+"/search/keyword.json?"+q.Encode(), &payload); err != nil {
		return 0, 0, err
	}

	for _, doc := range payload.Documents {
		p := doc.toPlace()
		if p.ValidCoordinates() {
			if err := c.cache.Set(ctx, cacheKey, [2]float64{p.Latitude, p.Longitude}, providerCacheTTL); err != nil {
				log.Printf("Failed to cache %s: %v", cacheKey, err)
			}
			return p.Latitude, p.Longitude, nil
		}
	}
	return 0, 0, fmt.Errorf("no coordinates for %q", query)
}

// GetTravelTime asks Kakao Mobility for the driving duration between two
// places and reports it in minutes.
func (c *KakaoMapClient) GetTravelTime(ctx context.Context, origin, destination Place) (float64, error) {
	q := url.Values{}
	q.Set("origin", fmt.Sprintf("%f,%f", origin.Longitude, origin.Latitude))
	q.Set("destination", fmt.Sprintf("%f,%f", destination.Longitude, destination.Latitude))

	var payload struct {
		Routes []struct {
			Summary struct {
				Duration float64 `json:"duration"` // seconds
			} `json:"summary"`
		} `json:"routes"`
	}
	if err := c.get(ctx, c.naviBaseURL+"/directions?"+q.Encode(), &payload); err != nil {
		return 0, err
	}

	if len(payload.Routes) == 0 {
		return 0, fmt.Errorf("no route between %q and %q", origin.Name, destination.Name)
	}
	return payload.Routes[0].Summary.Duration / 60, nil
}
