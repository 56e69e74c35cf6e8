package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navigo/internal/models/db_models"
	"navigo/internal/models/request_models"
	"navigo/internal/models/response_models"
	"navigo/pkg/utils"
)

type fakeTourAPI struct {
	places []Place
	err    error
	calls  int
}

func (f *fakeTourAPI) GetPlaces(ctx context.Context, areaCode, sigunguCode int, contentTypeIDs []string) ([]Place, error) {
	f.calls++
	return f.places, f.err
}

type fakeGooglePlaces struct {
	results []GooglePlace
	err     error
}

func (f *fakeGooglePlaces) SearchPlaces(ctx context.Context, query, region string) ([]GooglePlace, error) {
	return f.results, f.err
}

func (f *fakeGooglePlaces) GetCoordinates(ctx context.Context, query, region string) (float64, float64, error) {
	return 0, 0, errors.New("not geocodable")
}

func (f *fakeGooglePlaces) GetPlaceImages(ctx context.Context, placeID string) ([]string, error) {
	return nil, nil
}

type fakeNaverSearch struct {
	results []Place
	err     error
}

func (f *fakeNaverSearch) SearchPlaces(ctx context.Context, query, region string) ([]Place, error) {
	return f.results, f.err
}

func (f *fakeNaverSearch) GetCoordinates(ctx context.Context, query, region string) (float64, float64, error) {
	return 0, 0, errors.New("not geocodable")
}

func (f *fakeNaverSearch) GetReviews(ctx context.Context, placeName string) ([]NaverReview, error) {
	return nil, nil
}

type fakeKakaoMap struct {
	coords map[string][2]float64
}

func (f *fakeKakaoMap) GetTravelTime(ctx context.Context, origin, destination Place) (float64, error) {
	return 10, nil
}

func (f *fakeKakaoMap) SearchPlaces(ctx context.Context, query, region string) ([]Place, error) {
	return nil, nil
}

func (f *fakeKakaoMap) GetCoordinates(ctx context.Context, query, region string) (float64, float64, error) {
	if c, ok := f.coords[query]; ok {
		return c[0], c[1], nil
	}
	return 0, 0, errors.New("no match")
}

// fakeRouteOptimizer records what it was asked to order and reverses it so
// tests can tell the optimized order apart from the input order.
type fakeRouteOptimizer struct {
	received []Place
}

func (f *fakeRouteOptimizer) OptimizeRoute(ctx context.Context, places []Place) []Place {
	f.received = places
	reversed := make([]Place, len(places))
	for i, p := range places {
		reversed[len(places)-1-i] = p
	}
	return reversed
}

type fakeHotelFinder struct {
	hotels []response_models.Hotel
	err    error
}

func (f *fakeHotelFinder) GetHotels(ctx context.Context, region, district string) ([]response_models.Hotel, error) {
	return f.hotels, f.err
}

type fakeRestaurantFinder struct {
	restaurants []response_models.Restaurant
	err         error
}

func (f *fakeRestaurantFinder) GetRestaurants(ctx context.Context, region, district string) ([]response_models.Restaurant, error) {
	return f.restaurants, f.err
}

type fakeComposer struct {
	plan  *response_models.TravelPlan
	err   error
	input utils.ComposeInput
	calls int
}

func (f *fakeComposer) ComposeItinerary(ctx context.Context, input utils.ComposeInput) (*response_models.TravelPlan, error) {
	f.calls++
	f.input = input
	return f.plan, f.err
}

type fakePlanRepo struct {
	mu      sync.Mutex
	saved   []*db_models.TravelPlanRecord
	byID    map[string]*db_models.TravelPlanRecord
	listed  []db_models.TravelPlanRecord
	saveErr error
	listErr error
}

func (f *fakePlanRepo) SavePlan(ctx context.Context, record *db_models.TravelPlanRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, record)
	return nil
}

func (f *fakePlanRepo) GetPlanByID(ctx context.Context, planID string) (*db_models.TravelPlanRecord, error) {
	return f.byID[planID], nil
}

func (f *fakePlanRepo) ListPlans(ctx context.Context, page, pageSize int) ([]db_models.TravelPlanRecord, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listed, nil
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	payload, ok := f.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(payload, dest)
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = payload
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, key)
	return nil
}

type plannerFixture struct {
	tourAPI     *fakeTourAPI
	google      *fakeGooglePlaces
	naver       *fakeNaverSearch
	kakao       *fakeKakaoMap
	route       *fakeRouteOptimizer
	hotels      *fakeHotelFinder
	restaurants *fakeRestaurantFinder
	composer    *fakeComposer
	repo        *fakePlanRepo
	cache       *fakeCache
	service     PlannerServiceInterface
}

func newPlannerFixture() *plannerFixture {
	f := &plannerFixture{
		tourAPI: &fakeTourAPI{places: []Place{
			place("경복궁", 37.5796, 126.9770),
			place("남산타워", 37.5512, 126.9882),
			place("동대문", 37.5714, 127.0098),
		}},
		google:      &fakeGooglePlaces{},
		naver:       &fakeNaverSearch{},
		kakao:       &fakeKakaoMap{coords: map[string][2]float64{}},
		route:       &fakeRouteOptimizer{},
		hotels:      &fakeHotelFinder{hotels: []response_models.Hotel{{Name: "테스트호텔", Rating: 4.5}}},
		restaurants: &fakeRestaurantFinder{restaurants: []response_models.Restaurant{{Name: "테스트식당", Rating: 4.2}}},
		composer: &fakeComposer{plan: &response_models.TravelPlan{Days: []response_models.PlanDay{
			{Date: "2026-09-01", Places: []response_models.ScheduledPlace{{Type: "관광지", Name: "경복궁"}}},
			{Date: "2026-09-02", Places: []response_models.ScheduledPlace{{Type: "관광지", Name: "남산타워"}}},
		}}},
		repo:  &fakePlanRepo{byID: map[string]*db_models.TravelPlanRecord{}},
		cache: newFakeCache(),
	}
	f.service = NewPlannerService(
		f.tourAPI, f.google, f.naver, f.kakao,
		f.route, f.hotels, f.restaurants,
		f.composer, f.repo, f.cache,
	)
	return f
}

func planRequest() request_models.PlanRequest {
	return request_models.PlanRequest{
		Region:    "서울",
		StartDate: "2026-09-01",
		EndDate:   "2026-09-02",
		Themes:    []string{"문화 & 역사"},
	}
}

func TestCreatePlanHappyPath(t *testing.T) {
	f := newPlannerFixture()

	resp, err := f.service.CreatePlan(context.Background(), planRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Len(t, resp.TravelPlan, 2)
	assert.Len(t, resp.Hotels, 1)
	assert.Len(t, resp.Restaurants, 1)
	assert.NotEmpty(t, resp.ID)

	// the composer must see the visit order the optimizer produced
	require.Len(t, f.composer.input.Places, 3)
	assert.Equal(t, "동대문", f.composer.input.Places[0].Name)

	require.Len(t, f.repo.saved, 1)
	assert.Equal(t, db_models.PlanStatusGenerated, f.repo.saved[0].Status)
}

func TestCreatePlanInvalidDates(t *testing.T) {
	f := newPlannerFixture()

	cases := []struct {
		name       string
		start, end string
	}{
		{"unparseable start", "not-a-date", "2026-09-02"},
		{"unparseable end", "2026-09-01", "02-09-2026"},
		{"end before start", "2026-09-05", "2026-09-01"},
		{"trip too long", "2026-09-01", "2026-10-15"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := planRequest()
			req.StartDate = tc.start
			req.EndDate = tc.end

			_, err := f.service.CreatePlan(context.Background(), req)
			assert.ErrorIs(t, err, utils.ErrInvalidDateRange)
		})
	}
}

func TestCreatePlanUnknownRegion(t *testing.T) {
	f := newPlannerFixture()
	req := planRequest()
	req.Region = "아틀란티스"

	_, err := f.service.CreatePlan(context.Background(), req)
	assert.ErrorIs(t, err, utils.ErrRegionNotFound)
	assert.Zero(t, f.tourAPI.calls)
}

func TestCreatePlanNoPlacesFound(t *testing.T) {
	f := newPlannerFixture()
	f.tourAPI.places = nil

	_, err := f.service.CreatePlan(context.Background(), planRequest())
	assert.ErrorIs(t, err, utils.ErrNoPlacesFound)
}

func TestCreatePlanComposerFallback(t *testing.T) {
	f := newPlannerFixture()
	f.composer.plan = nil
	f.composer.err = errors.New("model returned garbage")

	resp, err := f.service.CreatePlan(context.Background(), planRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.TravelPlan, "fallback itinerary must still cover every day")

	require.Len(t, f.repo.saved, 1)
	assert.Equal(t, db_models.PlanStatusFallback, f.repo.saved[0].Status)
}

func TestCreatePlanRecommendationFailuresAreNotFatal(t *testing.T) {
	f := newPlannerFixture()
	f.hotels.err = errors.New("places api down")
	f.restaurants.err = errors.New("places api down")

	resp, err := f.service.CreatePlan(context.Background(), planRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.Hotels)
	assert.Empty(t, resp.Restaurants)
}

func TestCreatePlanSaveFailureStillReturnsPlan(t *testing.T) {
	f := newPlannerFixture()
	f.repo.saveErr = errors.New("db down")

	resp, err := f.service.CreatePlan(context.Background(), planRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.ID, "unsaved plans carry no history id")
	assert.Len(t, resp.TravelPlan, 2)
}

func TestCreatePlanServedFromCacheOnSecondCall(t *testing.T) {
	f := newPlannerFixture()

	first, err := f.service.CreatePlan(context.Background(), planRequest())
	require.NoError(t, err)
	callsAfterFirst := f.tourAPI.calls

	second, err := f.service.CreatePlan(context.Background(), planRequest())
	require.NoError(t, err)

	assert.Equal(t, callsAfterFirst, f.tourAPI.calls, "second request must not hit providers")
	assert.Equal(t, 1, f.composer.calls)
	assert.Equal(t, first.ID, second.ID)
}

func TestCreatePlanBackfillsMissingCoordinates(t *testing.T) {
	f := newPlannerFixture()
	f.tourAPI.places = []Place{
		place("경복궁", 37.5796, 126.9770),
		{Name: "좌표없는곳", Address: "서울 어딘가"},
		{Name: "못찾는곳"},
	}
	f.kakao.coords["좌표없는곳"] = [2]float64{37.55, 127.0}

	_, err := f.service.CreatePlan(context.Background(), planRequest())
	require.NoError(t, err)

	names := make([]string, 0, len(f.route.received))
	for _, p := range f.route.received {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"경복궁", "좌표없는곳"}, names)
}

func TestCreatePlanCapsCandidateCount(t *testing.T) {
	f := newPlannerFixture()
	many := make([]Place, 0, 40)
	for i := 0; i < 40; i++ {
		many = append(many, place(string(rune('A'+i)), 37.5+float64(i)*0.001, 127.0))
	}
	f.tourAPI.places = many

	_, err := f.service.CreatePlan(context.Background(), planRequest())
	require.NoError(t, err)
	assert.Len(t, f.route.received, maxCandidatePlaces)
}

func TestCreatePlanDefaultsCompanionType(t *testing.T) {
	f := newPlannerFixture()

	_, err := f.service.CreatePlan(context.Background(), planRequest())
	require.NoError(t, err)
	assert.Equal(t, defaultCompanionType, f.composer.input.CompanionType)
}

func TestCreatePlanSearchesUnmappedThemes(t *testing.T) {
	f := newPlannerFixture()
	f.tourAPI.places = nil
	req := planRequest()
	req.Themes = []string{"한옥 카페"}
	cafe := GooglePlace{Name: "북촌한옥카페", FormattedAddress: "서울 종로구"}
	cafe.Geometry.Location.Lat = 37.582
	cafe.Geometry.Location.Lng = 126.983
	f.google.results = []GooglePlace{cafe}

	resp, err := f.service.CreatePlan(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp)
	require.Len(t, f.route.received, 1)
	assert.Equal(t, "북촌한옥카페", f.route.received[0].Name)
}

func TestListPlans(t *testing.T) {
	f := newPlannerFixture()
	record := db_models.TravelPlanRecord{
		Region:    "부산",
		StartDate: "2026-09-01",
		EndDate:   "2026-09-03",
		Themes:    pq.StringArray{"바다"},
		Status:    db_models.PlanStatusGenerated,
	}
	record.ID = uuid.New()
	record.CreatedAt = time.Now().Unix()
	f.repo.listed = []db_models.TravelPlanRecord{record}

	summaries, err := f.service.ListPlans(context.Background(), 1, 20)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "부산", summaries[0].Region)
	assert.Equal(t, record.ID.String(), summaries[0].ID)
	assert.NotEmpty(t, summaries[0].CreatedAt)
}

func TestListPlansRejectsBadPagination(t *testing.T) {
	f := newPlannerFixture()

	_, err := f.service.ListPlans(context.Background(), 0, 20)
	assert.ErrorIs(t, err, utils.ErrInvalidPage)

	_, err = f.service.ListPlans(context.Background(), 1, 0)
	assert.ErrorIs(t, err, utils.ErrInvalidPageSize)

	_, err = f.service.ListPlans(context.Background(), 1, 500)
	assert.ErrorIs(t, err, utils.ErrInvalidPageSize)
}

func TestGetPlanByID(t *testing.T) {
	f := newPlannerFixture()
	plan := response_models.TravelPlan{Days: []response_models.PlanDay{
		{Date: "2026-09-01", Places: []response_models.ScheduledPlace{{Type: "관광지", Name: "해운대"}}},
	}}
	payload, err := json.Marshal(plan)
	require.NoError(t, err)

	record := &db_models.TravelPlanRecord{Itinerary: payload}
	record.ID = uuid.New()
	f.repo.byID[record.ID.String()] = record

	resp, err := f.service.GetPlanByID(context.Background(), record.ID.String())
	require.NoError(t, err)
	require.Len(t, resp.TravelPlan, 1)
	assert.Equal(t, "해운대", resp.TravelPlan[0].Places[0].Name)
}

func TestGetPlanByIDNotFound(t *testing.T) {
	f := newPlannerFixture()

	_, err := f.service.GetPlanByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, utils.ErrPlanNotFound)
}
