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

type TourAPIInterface interface {
	GetPlaces(ctx context.Context, areaCode, sigunguCode int, contentTypeIDs []string) ([]Place, error)
}

// TourAPIClient queries the Korea Tourism Organization area-based list.
// The API allows one request per second, so every page is cached for a day.
type TourAPIClient struct {
	http    *http.Client
	apiKey  string
	baseURL string
	cache   cache.Cache
}

func NewTourAPIClient(cfg *config.Config, responseCache cache.Cache) TourAPIInterface {
	return &TourAPIClient{
		http:    &http.Client{Timeout: 15 * time.Second},
		apiKey:  cfg.TourAPIKey,
		baseURL: cfg.TourAPIBaseURL,
		cache:   responseCache,
	}
}

// tourAPIItem mirrors the relevant fields of an areaBasedList item. The API
// returns coordinates as strings.
type tourAPIItem struct {
	ContentID  string `json:"contentid"`
	Title      string `json:"title"`
	Addr1      string `json:"addr1"`
	FirstImage string `json:"firstimage"`
	MapX       string `json:"mapx"` // longitude
	MapY       string `json:"mapy"` // latitude
}

func (i tourAPIItem) toPlace() Place {
	lng, errX := strconv.ParseFloat(i.MapX, 64)
	lat, errY := strconv.ParseFloat(i.MapY, 64)

	return Place{
		ID:        i.ContentID,
		Name:      i.Title,
		Address:   i.Addr1,
		Category:  "attraction",
		Image:     i.FirstImage,
		Latitude:  lat,
		Longitude: lng,
		HasCoords: errX == nil && errY == nil && (lat != 0 || lng != 0),
	}
}

// GetPlaces fetches attractions for an area, one request per contentTypeId,
// merged in request order. A failing content type is skipped rather than
// failing the whole candidate set.
func (c *TourAPIClient) GetPlaces(ctx context.Context, areaCode, sigunguCode int, contentTypeIDs []string) ([]Place, error) {
	var all []Place
	for _, contentTypeID := range contentTypeIDs {
		places, err := c.getPlacesByContentType(ctx, areaCode, sigunguCode, contentTypeID)
		if err != nil {
			log.Printf("TourAPI lookup failed for contentTypeId=%s: %v", contentTypeID, err)
			continue
		}
		all = append(all, places...)
	}

	if len(all) == 0 && len(contentTypeIDs) > 0 {
		return nil, fmt.Errorf("tour api returned no places for area=%d", areaCode)
	}
	return all, nil
}

func (c *TourAPIClient) getPlacesByContentType(ctx context.Context, areaCode, sigunguCode int, contentTypeID string) ([]Place, error) {
	cacheKey := fmt.Sprintf("tour_api:%d:%d:%s", areaCode, sigunguCode, contentTypeID)

	var cached []Place
	if found, _ := c.cache.Get(ctx, cacheKey, &cached); found {
		return cached, nil
	}

	q := url.Values{}
	q.Set("serviceKey", c.apiKey)
	q.Set("numOfRows", "100")
	q.Set("pageNo", "1")
	q.Set("MobileOS", "ETC")
	q.Set("MobileApp", "Navigo")
	q.Set("arrange", "P")
	q.Set("_type", "json")
	q.Set("areaCode", strconv.Itoa(areaCode))
	q.Set("contentTypeId", contentTypeID)
	if sigunguCode > 0 {
		q.Set("sigunguCode", strconv.Itoa(sigunguCode))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/areaBasedList1?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tour api http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tour api bad status: %s", resp.Status)
	}

	var payload struct {
		Response struct {
			Body struct {
				Items struct {
					Item []tourAPIItem `json:"item"`
				} `json:"items"`
			} `json:"body"`
		} `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("tour api decode: %w", err)
	}

	places := make([]Place, 0, len(payload.Response.Body.Items.Item))
	for _, item := range payload.Response.Body.Items.Item {
		places = append(places, item.toPlace())
	}

	if err := c.cache.Set(ctx, cacheKey, places, providerCacheTTL); err != nil {
		log.Printf("Failed to cache %s: %v", cacheKey, err)
	}
	return places, nil
}
