package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"navigo/internal/models/response_models"
)

// ComposeInput carries everything the generative model needs to narrate a
// day-by-day schedule: the route-ordered places plus the recommendation
// lists and trip metadata.
type ComposeInput struct {
	Region        string
	District      string
	StartDate     string
	EndDate       string
	Days          int
	CompanionType string
	Themes        []string
	Places        []PlaceSummary
	Hotels        []response_models.Hotel
	Restaurants   []response_models.Restaurant
}

// PlaceSummary is a place as the composer sees it: ordering is already done,
// only identity and address survive into the prompt.
type PlaceSummary struct {
	Name    string
	Address string
}

type ItineraryComposer interface {
	ComposeItinerary(ctx context.Context, input ComposeInput) (*response_models.TravelPlan, error)
}

var jsonFenceRe = regexp.MustCompile("```json\n|```\n|```")

// cleanJSONResponse strips markdown code fences some models wrap around
// JSON even when asked not to.
func cleanJSONResponse(raw string) string {
	return strings.TrimSpace(jsonFenceRe.ReplaceAllString(raw, ""))
}

// parseTravelPlan decodes and sanity-checks a model response. Day count must
// match the request exactly; every day needs at least one place.
func parseTravelPlan(raw string, days int) (*response_models.TravelPlan, error) {
	cleaned := cleanJSONResponse(raw)

	var plan response_models.TravelPlan
	if err := json.Unmarshal([]byte(cleaned), &plan); err != nil {
		return nil, fmt.Errorf("composer returned invalid JSON: %w", err)
	}

	if len(plan.Days) != days {
		return nil, fmt.Errorf("composer returned %d days, want %d", len(plan.Days), days)
	}
	for _, day := range plan.Days {
		if day.Date == "" || len(day.Places) == 0 {
			return nil, fmt.Errorf("composer returned an empty day")
		}
	}
	return &plan, nil
}

func buildItineraryPrompt(input ComposeInput) string {
	var hotelInfo strings.Builder
	for _, h := range input.Hotels {
		fmt.Fprintf(&hotelInfo, "- %s (%s)\n", h.Name, h.Address)
	}
	if hotelInfo.Len() == 0 {
		hotelInfo.WriteString("추천 숙소 없음\n")
	}

	var restaurantInfo strings.Builder
	for _, r := range input.Restaurants {
		fmt.Fprintf(&restaurantInfo, "- %s (%s)\n", r.Name, r.Address)
	}
	if restaurantInfo.Len() == 0 {
		restaurantInfo.WriteString("추천 맛집 없음\n")
	}

	var placeInfo strings.Builder
	for i, p := range input.Places {
		fmt.Fprintf(&placeInfo, "%d. %s (%s)\n", i+1, p.Name, p.Address)
	}

	locationInfo := strings.TrimSpace(input.Region + " " + input.District)
	themes := strings.Join(input.Themes, ", ")

	return fmt.Sprintf(`사용자가 %s 여행을 계획 중입니다.
여행 날짜는 %s부터 %s까지이며, 총 %d일입니다.
동행자는 %s이며, 주요 관심사는 %s입니다.

아래 "방문 순서가 최적화된 장소 목록"의 순서를 유지하면서 하루별 여행 일정을 JSON으로 반환하세요.
- 각 날짜는 "date" (형식: "YYYY-MM-DD")와 "places" 리스트로 구성하세요.
- 장소 필드: "type" ("관광지" | "점심" | "저녁" | "숙소"), "name", "address", "image" (빈 문자열 "").
- 일반 날: "관광지 → 점심 → 관광지 → 저녁 → 숙소" 순으로 5개 장소.
- 마지막 날: "관광지 → 점심 → 관광지 → 저녁" 순으로 4개 장소 (숙소 제외).
- %d일 모두 커버하며, 추천 숙소와 맛집을 활용하세요.

🔹 방문 순서가 최적화된 장소 목록:
%s
🔹 추천 숙소 목록:
%s
🔹 추천 맛집 목록:
%s
✅ JSON 형식 예시:
{"travel_plan": [{"date": "%s", "places": [{"type": "관광지", "name": "...", "address": "...", "image": ""}]}]}

JSON 코드 블록 없이 JSON만 반환하세요.`,
		locationInfo, input.StartDate, input.EndDate, input.Days,
		input.CompanionType, themes, input.Days,
		placeInfo.String(), hotelInfo.String(), restaurantInfo.String(),
		input.StartDate)
}

// BuildDefaultItinerary is the deterministic fallback when every composer
// attempt failed: generic slots per day, lodging omitted on the final day.
func BuildDefaultItinerary(input ComposeInput) *response_models.TravelPlan {
	locationInfo := strings.TrimSpace(input.Region + " " + input.District)

	start, err := ParseDateKST(input.StartDate)
	if err != nil {
		return &response_models.TravelPlan{Days: []response_models.PlanDay{}}
	}

	days := make([]response_models.PlanDay, 0, input.Days)
	for i, date := range ExpandDates(start, input.Days) {
		places := []response_models.ScheduledPlace{
			{Type: "관광지", Name: locationInfo + " 관광지 1", Address: locationInfo},
			{Type: "점심", Name: locationInfo + " 점심 맛집", Address: locationInfo},
			{Type: "관광지", Name: locationInfo + " 관광지 2", Address: locationInfo},
			{Type: "저녁", Name: locationInfo + " 저녁 맛집", Address: locationInfo},
		}
		if i < input.Days-1 {
			places = append(places, response_models.ScheduledPlace{
				Type: "숙소", Name: locationInfo + " 기본 숙소", Address: locationInfo,
			})
		}
		days = append(days, response_models.PlanDay{Date: date, Places: places})
	}

	return &response_models.TravelPlan{Days: days}
}
