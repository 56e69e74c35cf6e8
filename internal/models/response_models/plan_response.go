package response_models

// ScheduledPlace is one slot in a day: an attraction, a meal or the lodging.
type ScheduledPlace struct {
	Type    string `json:"type"` // "관광지" | "점심" | "저녁" | "숙소"
	Name    string `json:"name"`
	Address string `json:"address"`
	Image   string `json:"image"`
}

type PlanDay struct {
	Date   string           `json:"date"` // "2006-01-02"
	Places []ScheduledPlace `json:"places"`
}

// TravelPlan is the composed itinerary handed back to the caller and stored
// verbatim in the plan history.
type TravelPlan struct {
	Days []PlanDay `json:"travel_plan"`
}

type PlanResponse struct {
	ID          string       `json:"id,omitempty"`
	TravelPlan  []PlanDay    `json:"travel_plan"`
	Hotels      []Hotel      `json:"hotels,omitempty"`
	Restaurants []Restaurant `json:"restaurants,omitempty"`
}

type PlanSummary struct {
	ID        string   `json:"id"`
	Region    string   `json:"region"`
	District  string   `json:"district,omitempty"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Themes    []string `json:"themes"`
	Status    string   `json:"status"`
	CreatedAt string   `json:"created_at"`
}
