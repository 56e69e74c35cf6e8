package utils

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrRegionNotFound    = errors.New("region not found")
	ErrInvalidDateRange  = errors.New("invalid date range")
	ErrNoPlacesFound     = errors.New("no places found")
	ErrPlanNotFound      = errors.New("plan not found")
	ErrInvalidPage       = errors.New("invalid page parameter")
	ErrInvalidPageSize   = errors.New("invalid page size parameter")
	ErrDatabaseError     = errors.New("database error")
	ErrComposerFailed    = errors.New("itinerary composer failed")
)
