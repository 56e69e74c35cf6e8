package services

import (
	"context"
	"log"

	"navigo/internal/models/response_models"
)

const (
	restaurantMinRating  = 4.0
	restaurantMinReviews = 50
)

type RestaurantFinderInterface interface {
	GetRestaurants(ctx context.Context, region, district string) ([]response_models.Restaurant, error)
}

// RestaurantFinder keeps only well-reviewed Google restaurant results:
// rating at least 4.0 with 50+ reviews.
type RestaurantFinder struct {
	googlePlaces GooglePlacesInterface
}

func NewRestaurantFinder(googlePlaces GooglePlacesInterface) RestaurantFinderInterface {
	return &RestaurantFinder{googlePlaces: googlePlaces}
}

func (f *RestaurantFinder) GetRestaurants(ctx context.Context, region, district string) ([]response_models.Restaurant, error) {
	searchRegion := district
	if searchRegion == "" {
		searchRegion = region
	}

	results, err := f.googlePlaces.SearchPlaces(ctx, "restaurant", searchRegion+" 맛집")
	if err != nil {
		return nil, err
	}

	restaurants := make([]response_models.Restaurant, 0, len(results))
	for _, r := range results {
		if r.Rating < restaurantMinRating || r.UserRatingsTotal < restaurantMinReviews {
			continue
		}

		restaurant := response_models.Restaurant{
			Name:       r.Name,
			Address:    r.FormattedAddress,
			Rating:     r.Rating,
			Reviews:    r.UserRatingsTotal,
			PriceLevel: r.PriceLevel,
			Latitude:   r.Geometry.Location.Lat,
			Longitude:  r.Geometry.Location.Lng,
		}

		if r.PlaceID != "" {
			images, err := f.googlePlaces.GetPlaceImages(ctx, r.PlaceID)
			if err != nil {
				log.Printf("Failed to fetch images for restaurant %s: %v", r.Name, err)
			} else {
				restaurant.Images = images
			}
		}

		restaurants = append(restaurants, restaurant)
	}

	return restaurants, nil
}
