package request_models

type PlanRequest struct {
	Region        string   `json:"region" binding:"required"`
	District      string   `json:"district"`
	StartDate     string   `json:"start_date" binding:"required"` // "2006-01-02"
	EndDate       string   `json:"end_date" binding:"required"`
	CompanionType string   `json:"companion_type"`
	Themes        []string `json:"themes" binding:"required,min=1"`
}
