package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"navigo/pkg/cache"
	"navigo/pkg/config"
)

type NaverReview struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	PostDate    string `json:"postdate"`
}

type NaverSearchInterface interface {
	SearchPlaces(ctx context.Context, query, region string) ([]Place, error)
	GetCoordinates(ctx context.Context, query, region string) (lat, lng float64, err error)
	GetReviews(ctx context.Context, placeName string) ([]NaverReview, error)
}

type NaverSearchClient struct {
	http         *http.Client
	clientID     string
	clientSecret string
	baseURL      string
	cache        cache.Cache
}

func NewNaverSearchClient(cfg *config.Config, responseCache cache.Cache) NaverSearchInterface {
	return &NaverSearchClient{
		http:         &http.Client{Timeout: 15 * time.Second},
		clientID:     cfg.NaverClientID,
		clientSecret: cfg.NaverClientSecret,
		baseURL:      cfg.NaverSearchBaseURL,
		cache:        responseCache,
	}
}

func (c *NaverSearchClient) newRequest(ctx context.Context, endpoint string, q url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Naver-Client-Id", c.clientID)
	req.Header.Set("X-Naver-Client-Secret", c.clientSecret)
	return req, nil
}

var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// stripHTMLTags removes the <b> markers Naver wraps around search matches.
func stripHTMLTags(s string) string {
	return htmlTagRe.ReplaceAllString(s, "")
}

type naverLocalItem struct {
	Title    string `json:"title"`
	Address  string `json:"address"`
	RoadAddr string `json:"roadAddress"`
	Category string `json:"category"`
	MapX     string `json:"mapx"`
	MapY     string `json:"mapy"`
}

func (i naverLocalItem) toPlace() Place {
	// Naver local search returns WGS84 coordinates multiplied by 1e7.
	lng, errX := strconv.ParseFloat(i.MapX, 64)
	lat, errY := strconv.ParseFloat(i.MapY, 64)
	lng /= 1e7
	lat /= 1e7

	address := i.RoadAddr
	if address == "" {
		address = i.Address
	}

	return Place{
		Name:      stripHTMLTags(i.Title),
		Address:   address,
		Category:  i.Category,
		Latitude:  lat,
		Longitude: lng,
		HasCoords: errX == nil && errY == nil && (lat != 0 || lng != 0),
	}
}

// SearchPlaces queries Naver local search. Naver allows 10 requests/second,
// so results are cached for a day like the other providers.
func (c *NaverSearchClient) SearchPlaces(ctx context.Context, query, region string) ([]Place, error) {
	cacheKey := fmt.Sprintf("naver_places:%s:%s", query, region)

	var cached []Place
	if found, _ := c.cache.Get(ctx, cacheKey, &cached); found {
		return cached, nil
	}

	q := url.Values{}
	q.Set("query", region+" "+query)
	q.Set("display", "5")
	q.Set("sort", "random")

	req, err := c.newRequest(ctx, "/local.json", q)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("naver local http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("naver local bad status: %s", resp.Status)
	}

	var payload struct {
		Items []naverLocalItem `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("naver local decode: %w", err)
	}

	places := make([]Place, 0, len(payload.Items))
	for _, item := range payload.Items {
		places = append(places, item.toPlace())
	}

	if err := c.cache.Set(ctx, cacheKey, places, providerCacheTTL); err != nil {
		log.Printf("Failed to cache %s: %v", cacheKey, err)
	}
	return places, nil
}

func (c *NaverSearchClient) GetCoordinates(ctx context.Context, query, region string) (float64, float64, error) {
	places, err := c.SearchPlaces(ctx, query, region)
	if err != nil {
		return 0, 0, err
	}
	for _, p := range places {
		if p.ValidCoordinates() {
			return p.Latitude, p.Longitude, nil
		}
	}
	return 0, 0, fmt.Errorf("no coordinates for %q", query)
}

// GetReviews pulls recent blog posts mentioning the place, used to enrich
// recommendations.
func (c *NaverSearchClient) GetReviews(ctx context.Context, placeName string) ([]NaverReview, error) {
	cacheKey := "naver_reviews:" + placeName

	var cached []NaverReview
	if found, _ := c.cache.Get(ctx, cacheKey, &cached); found {
		return cached, nil
	}

	q := url.Values{}
	q.Set("query", placeName+" 리뷰")
	q.Set("display", "5")
	q.Set("sort", "date")

	req, err := c.newRequest(ctx, "/blog.json", q)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("naver blog http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("naver blog bad status: %s", resp.Status)
	}

	var payload struct {
		Items []NaverReview `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("naver blog decode: %w", err)
	}

	for i := range payload.Items {
		payload.Items[i].Title = stripHTMLTags(payload.Items[i].Title)
		payload.Items[i].Description = stripHTMLTags(payload.Items[i].Description)
	}

	if err := c.cache.Set(ctx, cacheKey, payload.Items, providerCacheTTL); err != nil {
		log.Printf("Failed to cache %s: %v", cacheKey, err)
	}
	return payload.Items, nil
}
