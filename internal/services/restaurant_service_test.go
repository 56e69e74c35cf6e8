package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRestaurantsFilters(t *testing.T) {
	stub := &stubGooglePlaces{results: []GooglePlace{
		googleResult("평점 낮은 집", 3.9, 800),
		googleResult("리뷰 적은 집", 4.6, 12),
		googleResult("광안리 횟집", 4.5, 240),
	}}
	finder := NewRestaurantFinder(stub)

	restaurants, err := finder.GetRestaurants(context.Background(), "부산", "")
	require.NoError(t, err)
	require.Len(t, restaurants, 1)
	assert.Equal(t, "광안리 횟집", restaurants[0].Name)
	assert.Equal(t, 240, restaurants[0].Reviews)
}

func TestGetRestaurantsSearchFailure(t *testing.T) {
	finder := NewRestaurantFinder(&stubGooglePlaces{searchErr: errors.New("quota exceeded")})

	_, err := finder.GetRestaurants(context.Background(), "부산", "")
	assert.Error(t, err)
}
