package services

import (
	"context"
	"log"
	"sort"
	"strings"

	"navigo/internal/models/response_models"
)

const (
	hotelMinRating  = 4.0
	hotelMaxResults = 5
)

type HotelFinderInterface interface {
	GetHotels(ctx context.Context, region, district string) ([]response_models.Hotel, error)
}

// HotelFinder refines Google lodging results: rating floor, type
// classification and a photo per listing, best-rated first.
type HotelFinder struct {
	googlePlaces GooglePlacesInterface
}

func NewHotelFinder(googlePlaces GooglePlacesInterface) HotelFinderInterface {
	return &HotelFinder{googlePlaces: googlePlaces}
}

func (h *HotelFinder) GetHotels(ctx context.Context, region, district string) ([]response_models.Hotel, error) {
	searchRegion := district
	if searchRegion == "" {
		searchRegion = region
	}

	results, err := h.googlePlaces.SearchPlaces(ctx, "lodging", searchRegion+" 숙소")
	if err != nil {
		return nil, err
	}

	hotels := make([]response_models.Hotel, 0, len(results))
	for _, r := range results {
		if r.Rating < hotelMinRating {
			continue
		}

		hotel := response_models.Hotel{
			Name:       r.Name,
			Address:    r.FormattedAddress,
			Rating:     r.Rating,
			Reviews:    r.UserRatingsTotal,
			PriceLevel: r.PriceLevel,
			Latitude:   r.Geometry.Location.Lat,
			Longitude:  r.Geometry.Location.Lng,
			Type:       classifyHotelType(r.Name),
		}

		if r.PlaceID != "" {
			images, err := h.googlePlaces.GetPlaceImages(ctx, r.PlaceID)
			if err != nil {
				log.Printf("Failed to fetch images for hotel %s: %v", r.Name, err)
			} else {
				hotel.Images = images
			}
		}

		hotels = append(hotels, hotel)
	}

	sort.SliceStable(hotels, func(i, j int) bool {
		if hotels[i].Rating != hotels[j].Rating {
			return hotels[i].Rating > hotels[j].Rating
		}
		return hotels[i].Reviews > hotels[j].Reviews
	})

	if len(hotels) > hotelMaxResults {
		hotels = hotels[:hotelMaxResults]
	}
	return hotels, nil
}

func classifyHotelType(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "호텔") || strings.Contains(lower, "hotel"):
		return "호텔"
	case strings.Contains(lower, "리조트") || strings.Contains(lower, "resort"):
		return "리조트"
	case strings.Contains(lower, "한옥") || strings.Contains(lower, "hanok"):
		return "한옥스테이"
	case strings.Contains(lower, "게스트하우스") || strings.Contains(lower, "guesthouse"):
		return "게스트하우스"
	case strings.Contains(lower, "모텔") || strings.Contains(lower, "motel"):
		return "모텔"
	default:
		return "기타 숙소"
	}
}
