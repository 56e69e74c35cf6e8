package db_models

import (
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type PlanStatus string

const (
	PlanStatusGenerated PlanStatus = "generated" // composer produced the itinerary
	PlanStatusFallback  PlanStatus = "fallback"  // default itinerary after composer failures
)

// TravelPlanRecord is one generated itinerary. The composed day-by-day plan
// is stored verbatim as JSON; the query columns exist so history endpoints
// can filter without unpacking the payload.
type TravelPlanRecord struct {
	BaseModel
	Region        string `gorm:"size:32;index"`
	District      string `gorm:"size:64"`
	StartDate     string `gorm:"size:10"` // "2006-01-02"
	EndDate       string `gorm:"size:10"`
	CompanionType string `gorm:"size:64"`
	Themes        pq.StringArray `gorm:"type:text[]"`
	Status        PlanStatus     `gorm:"size:16;default:'generated'"`
	Itinerary     datatypes.JSON `gorm:"type:jsonb"`
}
