package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navigo/internal/models/response_models"
)

func TestCleanJSONResponseStripsFences(t *testing.T) {
	raw := "```json\n{\"travel_plan\": []}\n```\n"
	assert.Equal(t, `{"travel_plan": []}`, cleanJSONResponse(raw))

	bare := `{"travel_plan": []}`
	assert.Equal(t, bare, cleanJSONResponse(bare))
}

func TestParseTravelPlanValid(t *testing.T) {
	raw := `{"travel_plan": [
		{"date": "2026-03-01", "places": [
			{"type": "관광지", "name": "경복궁", "address": "서울 종로구", "image": ""}
		]}
	]}`

	plan, err := parseTravelPlan(raw, 1)
	require.NoError(t, err)
	require.Len(t, plan.Days, 1)
	assert.Equal(t, "2026-03-01", plan.Days[0].Date)
	assert.Equal(t, "경복궁", plan.Days[0].Places[0].Name)
}

func TestParseTravelPlanRejectsWrongDayCount(t *testing.T) {
	raw := `{"travel_plan": [
		{"date": "2026-03-01", "places": [{"type": "관광지", "name": "a", "address": "b", "image": ""}]}
	]}`

	_, err := parseTravelPlan(raw, 3)
	assert.Error(t, err)
}

func TestParseTravelPlanRejectsEmptyDay(t *testing.T) {
	raw := `{"travel_plan": [{"date": "2026-03-01", "places": []}]}`

	_, err := parseTravelPlan(raw, 1)
	assert.Error(t, err)
}

func TestBuildItineraryPromptMentionsTripShape(t *testing.T) {
	prompt := buildItineraryPrompt(ComposeInput{
		Region:        "서울",
		District:      "종로구",
		StartDate:     "2026-03-01",
		EndDate:       "2026-03-03",
		Days:          3,
		CompanionType: "가족",
		Themes:        []string{"문화 & 역사", "카페"},
		Places: []PlaceSummary{
			{Name: "경복궁", Address: "서울 종로구"},
			{Name: "북촌한옥마을", Address: "서울 종로구"},
		},
		Hotels:      []response_models.Hotel{{Name: "종로 호텔", Address: "서울 종로구"}},
		Restaurants: []response_models.Restaurant{{Name: "북촌 한정식", Address: "서울 종로구"}},
	})

	assert.Contains(t, prompt, "서울 종로구")
	assert.Contains(t, prompt, "총 3일")
	assert.Contains(t, prompt, "경복궁")
	assert.Contains(t, prompt, "종로 호텔")
	assert.Contains(t, prompt, "북촌 한정식")
	// visit order must survive into the prompt
	assert.Less(t, strings.Index(prompt, "경복궁"), strings.Index(prompt, "북촌한옥마을"))
}

func TestBuildDefaultItineraryOmitsLodgingOnLastDay(t *testing.T) {
	plan := BuildDefaultItinerary(ComposeInput{
		Region:    "부산",
		StartDate: "2026-03-01",
		Days:      2,
	})

	require.Len(t, plan.Days, 2)
	assert.Equal(t, "2026-03-01", plan.Days[0].Date)
	assert.Equal(t, "2026-03-02", plan.Days[1].Date)

	assert.Len(t, plan.Days[0].Places, 5)
	assert.Equal(t, "숙소", plan.Days[0].Places[4].Type)

	assert.Len(t, plan.Days[1].Places, 4)
	for _, p := range plan.Days[1].Places {
		assert.NotEqual(t, "숙소", p.Type)
	}
}
