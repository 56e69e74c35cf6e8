package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"navigo/internal/models/db_models"
	"navigo/internal/models/request_models"
	"navigo/internal/models/response_models"
	"navigo/internal/repositories"
	"navigo/pkg/cache"
	"navigo/pkg/utils"
)

const (
	defaultCompanionType = "개별 여행자"
	composedPlanTTL      = time.Hour
	maxTripDays          = 30

	// maxCandidatePlaces bounds the travel-time matrix: N places cost
	// N*(N-1)/2 routing calls, and a daily schedule never needs more stops.
	maxCandidatePlaces = 15
)

type PlannerServiceInterface interface {
	CreatePlan(ctx context.Context, req request_models.PlanRequest) (*response_models.PlanResponse, error)
	ListPlans(ctx context.Context, page, pageSize int) ([]response_models.PlanSummary, error)
	GetPlanByID(ctx context.Context, planID string) (*response_models.PlanResponse, error)
}

// PlannerService assembles a plan end to end: candidate places from the
// aggregators, visit order from the route optimizer, recommendations from
// the finders, narration from the composer, history in Postgres.
type PlannerService struct {
	tourAPI          TourAPIInterface
	googlePlaces     GooglePlacesInterface
	naverSearch      NaverSearchInterface
	kakaoMap         KakaoMapInterface
	routeService     RouteServiceInterface
	hotelFinder      HotelFinderInterface
	restaurantFinder RestaurantFinderInterface
	composer         utils.ItineraryComposer
	planRepo         repositories.ITravelPlanRepository
	cache            cache.Cache
}

func NewPlannerService(
	tourAPI TourAPIInterface,
	googlePlaces GooglePlacesInterface,
	naverSearch NaverSearchInterface,
	kakaoMap KakaoMapInterface,
	routeService RouteServiceInterface,
	hotelFinder HotelFinderInterface,
	restaurantFinder RestaurantFinderInterface,
	composer utils.ItineraryComposer,
	planRepo repositories.ITravelPlanRepository,
	responseCache cache.Cache,
) PlannerServiceInterface {
	return &PlannerService{
		tourAPI:          tourAPI,
		googlePlaces:     googlePlaces,
		naverSearch:      naverSearch,
		kakaoMap:         kakaoMap,
		routeService:     routeService,
		hotelFinder:      hotelFinder,
		restaurantFinder: restaurantFinder,
		composer:         composer,
		planRepo:         planRepo,
		cache:            responseCache,
	}
}

func (s *PlannerService) CreatePlan(ctx context.Context, req request_models.PlanRequest) (*response_models.PlanResponse, error) {
	start, err := utils.ParseDateKST(req.StartDate)
	if err != nil {
		return nil, utils.ErrInvalidDateRange
	}
	end, err := utils.ParseDateKST(req.EndDate)
	if err != nil {
		return nil, utils.ErrInvalidDateRange
	}
	days := utils.DayCount(start, end)
	if days < 1 || days > maxTripDays {
		return nil, utils.ErrInvalidDateRange
	}

	areaCode, ok := GetAreaCode(req.Region)
	if !ok {
		return nil, utils.ErrRegionNotFound
	}

	sigunguCode := 0
	if req.District != "" {
		if code, ok := GetSigunguCode(req.Region, req.District); ok {
			sigunguCode = code
		} else {
			log.Printf("Unknown district %q for region %q, searching region-wide", req.District, req.Region)
		}
	}

	companionType := req.CompanionType
	if companionType == "" {
		companionType = defaultCompanionType
	}

	cacheKey := fmt.Sprintf("travel_plan:%s:%s:%s:%s", req.Region, req.District, req.StartDate, req.EndDate)
	var cachedResponse response_models.PlanResponse
	if found, _ := s.cache.Get(ctx, cacheKey, &cachedResponse); found {
		log.Printf("Serving composed plan from cache: %s", cacheKey)
		return &cachedResponse, nil
	}

	candidates := s.collectCandidatePlaces(ctx, req, areaCode, sigunguCode)
	candidates = s.normalizeCoordinates(ctx, candidates, req.Region)
	if len(candidates) == 0 {
		return nil, utils.ErrNoPlacesFound
	}
	if len(candidates) > maxCandidatePlaces {
		candidates = candidates[:maxCandidatePlaces]
	}

	ordered := s.routeService.OptimizeRoute(ctx, candidates)

	hotels, err := s.hotelFinder.GetHotels(ctx, req.Region, req.District)
	if err != nil {
		log.Printf("Hotel lookup failed: %v", err)
		hotels = nil
	}
	restaurants, err := s.restaurantFinder.GetRestaurants(ctx, req.Region, req.District)
	if err != nil {
		log.Printf("Restaurant lookup failed: %v", err)
		restaurants = nil
	}

	input := utils.ComposeInput{
		Region:        req.Region,
		District:      req.District,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Days:          days,
		CompanionType: companionType,
		Themes:        req.Themes,
		Places:        toPlaceSummaries(ordered),
		Hotels:        hotels,
		Restaurants:   restaurants,
	}

	status := db_models.PlanStatusGenerated
	plan, err := s.composer.ComposeItinerary(ctx, input)
	if err != nil {
		log.Printf("Composer failed, returning default itinerary: %v", err)
		plan = utils.BuildDefaultItinerary(input)
		status = db_models.PlanStatusFallback
	}

	record := s.persistPlan(ctx, req, companionType, status, plan)

	response := &response_models.PlanResponse{
		ID:          record,
		TravelPlan:  plan.Days,
		Hotels:      hotels,
		Restaurants: restaurants,
	}

	if err := s.cache.Set(ctx, cacheKey, response, composedPlanTTL); err != nil {
		log.Printf("Failed to cache %s: %v", cacheKey, err)
	}
	return response, nil
}

// collectCandidatePlaces gathers attractions from the TourAPI for the mapped
// themes and runs keyword searches for the rest. Provider failures are
// isolated: a dead provider shrinks the candidate set, nothing more.
func (s *PlannerService) collectCandidatePlaces(ctx context.Context, req request_models.PlanRequest, areaCode, sigunguCode int) []Place {
	contentTypeIDs, unmappedThemes := ContentTypeIDsForThemes(req.Themes)

	var places []Place
	if len(contentTypeIDs) > 0 {
		tourPlaces, err := s.tourAPI.GetPlaces(ctx, areaCode, sigunguCode, contentTypeIDs)
		if err != nil {
			log.Printf("TourAPI candidate lookup failed: %v", err)
		} else {
			places = tourPlaces
		}
	}

	if len(unmappedThemes) == 0 {
		return places
	}

	searchRegion := req.District
	if searchRegion == "" {
		searchRegion = req.Region
	}

	type searchFn func(ctx context.Context, query, region string) ([]Place, error)
	searches := make([]func() ([]Place, error), 0, len(unmappedThemes)*2)
	for _, theme := range unmappedThemes {
		theme := theme
		for _, search := range []searchFn{s.searchGooglePlaces, s.naverSearch.SearchPlaces} {
			search := search
			searches = append(searches, func() ([]Place, error) {
				return search(ctx, theme, searchRegion)
			})
		}
	}

	results := make([][]Place, len(searches))
	var wg sync.WaitGroup
	for i, search := range searches {
		wg.Add(1)
		go func(i int, search func() ([]Place, error)) {
			defer wg.Done()
			found, err := search()
			if err != nil {
				log.Printf("Keyword place search failed: %v", err)
				return
			}
			results[i] = found
		}(i, search)
	}
	wg.Wait()

	for _, found := range results {
		places = append(places, found...)
	}
	return places
}

// searchGooglePlaces adapts the Google client to the common search signature.
func (s *PlannerService) searchGooglePlaces(ctx context.Context, query, region string) ([]Place, error) {
	results, err := s.googlePlaces.SearchPlaces(ctx, query, region)
	if err != nil {
		return nil, err
	}
	places := make([]Place, 0, len(results))
	for _, r := range results {
		places = append(places, r.ToPlace())
	}
	return places, nil
}

// normalizeCoordinates backfills missing coordinates through the Kakao →
// Google → Naver chain and drops places that still cannot be located.
func (s *PlannerService) normalizeCoordinates(ctx context.Context, places []Place, region string) []Place {
	normalized := make([]Place, 0, len(places))
	for _, p := range places {
		if p.ValidCoordinates() {
			normalized = append(normalized, p)
			continue
		}

		lat, lng, err := s.kakaoMap.GetCoordinates(ctx, p.Name, region)
		if err != nil {
			log.Printf("No coordinates found for %q, dropping it", p.Name)
			continue
		}

		p.Latitude = lat
		p.Longitude = lng
		p.HasCoords = true
		if p.ValidCoordinates() {
			normalized = append(normalized, p)
		}
	}
	return normalized
}

// persistPlan writes the plan to history. History persistence is best
// effort: a failed insert is logged, the composed plan still goes out.
func (s *PlannerService) persistPlan(
	ctx context.Context,
	req request_models.PlanRequest,
	companionType string,
	status db_models.PlanStatus,
	plan *response_models.TravelPlan,
) string {
	itinerary, err := json.Marshal(plan)
	if err != nil {
		log.Printf("Failed to marshal itinerary for persistence: %v", err)
		return ""
	}

	record := &db_models.TravelPlanRecord{
		Region:        req.Region,
		District:      req.District,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		CompanionType: companionType,
		Themes:        pq.StringArray(req.Themes),
		Status:        status,
		Itinerary:     itinerary,
	}
	record.ID = uuid.New()

	if err := s.planRepo.SavePlan(ctx, record); err != nil {
		log.Printf("Failed to persist plan: %v", err)
		return ""
	}
	return record.ID.String()
}

func (s *PlannerService) ListPlans(ctx context.Context, page, pageSize int) ([]response_models.PlanSummary, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	records, err := s.planRepo.ListPlans(ctx, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	summaries := make([]response_models.PlanSummary, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, response_models.PlanSummary{
			ID:        record.ID.String(),
			Region:    record.Region,
			District:  record.District,
			StartDate: record.StartDate,
			EndDate:   record.EndDate,
			Themes:    []string(record.Themes),
			Status:    string(record.Status),
			CreatedAt: utils.FormatRFC3339KST(utils.FromUnixSecondsKST(record.CreatedAt)),
		})
	}
	return summaries, nil
}

func (s *PlannerService) GetPlanByID(ctx context.Context, planID string) (*response_models.PlanResponse, error) {
	record, err := s.planRepo.GetPlanByID(ctx, planID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if record == nil {
		return nil, utils.ErrPlanNotFound
	}

	var plan response_models.TravelPlan
	if err := json.Unmarshal(record.Itinerary, &plan); err != nil {
		log.Printf("Stored itinerary for plan %s is corrupt: %v", planID, err)
		return nil, utils.ErrDatabaseError
	}

	return &response_models.PlanResponse{
		ID:         record.ID.String(),
		TravelPlan: plan.Days,
	}, nil
}

func toPlaceSummaries(places []Place) []utils.PlaceSummary {
	summaries := make([]utils.PlaceSummary, 0, len(places))
	for _, p := range places {
		summaries = append(summaries, utils.PlaceSummary{Name: p.Name, Address: p.Address})
	}
	return summaries
}
