package services

import (
	"context"
	"log"
	"sync"
	"time"

	mem "navigo/pkg/memcache"
)

const (
	// unreachableTravelTime marks a pair whose lookup failed or timed out.
	// Sentinels are replaced with the batch average before ordering starts.
	unreachableTravelTime = 99999

	travelTimeTimeout = 5 * time.Second
	travelTimePairTTL = 24 * time.Hour
)

// TravelTimeProvider answers how long one leg takes, in minutes. The
// production implementation is the Kakao Mobility directions client.
type TravelTimeProvider interface {
	GetTravelTime(ctx context.Context, origin, destination Place) (float64, error)
}

type pairIndex struct {
	I int
	J int
}

func orderedPair(i, j int) pairIndex {
	if j < i {
		i, j = j, i
	}
	return pairIndex{I: i, J: j}
}

// TravelTimeMatrix holds one travel time per unordered pair of place
// indices. Reads are symmetric.
type TravelTimeMatrix map[pairIndex]float64

func (m TravelTimeMatrix) At(i, j int) float64 {
	if t, ok := m[orderedPair(i, j)]; ok {
		return t
	}
	return unreachableTravelTime
}

type RouteServiceInterface interface {
	OptimizeRoute(ctx context.Context, places []Place) []Place
}

type RouteService struct {
	provider  TravelTimeProvider
	pairCache mem.TravelTimeStore
}

func NewRouteService(provider TravelTimeProvider, pairCache mem.TravelTimeStore) RouteServiceInterface {
	return &RouteService{
		provider:  provider,
		pairCache: pairCache,
	}
}

// OptimizeRoute orders places with a greedy nearest-neighbor pass over the
// pairwise travel-time matrix. It never fails: provider errors degrade
// individual distance estimates, not the request.
func (r *RouteService) OptimizeRoute(ctx context.Context, places []Place) []Place {
	if len(places) <= 1 {
		return places
	}

	valid := make([]Place, 0, len(places))
	for _, p := range places {
		if p.ValidCoordinates() {
			valid = append(valid, p)
		}
	}
	if len(valid) < 2 {
		log.Println("Route optimization skipped: fewer than 2 places with coordinates")
		return valid
	}

	matrix := r.buildTravelTimeMatrix(ctx, valid)
	return orderByNearestNeighbor(valid, matrix)
}

// buildTravelTimeMatrix issues one concurrent lookup per unordered pair.
// Each goroutine writes a distinct slot of the results slice, so the batch
// needs no locking. A failed or timed-out pair records the sentinel; after
// the batch resolves, sentinels are backfilled with the batch average.
func (r *RouteService) buildTravelTimeMatrix(ctx context.Context, places []Place) TravelTimeMatrix {
	var pending []pairIndex
	matrix := make(TravelTimeMatrix, len(places)*(len(places)-1)/2)

	for i := 0; i < len(places); i++ {
		for j := i + 1; j < len(places); j++ {
			if t, ok := r.pairCache.Get(places[i].cacheKey(), places[j].cacheKey()); ok {
				matrix[pairIndex{I: i, J: j}] = t
				continue
			}
			pending = append(pending, pairIndex{I: i, J: j})
		}
	}

	results := make([]float64, len(pending))
	var wg sync.WaitGroup
	for k, pair := range pending {
		wg.Add(1)
		go func(k int, pair pairIndex) {
			defer wg.Done()
			results[k] = r.lookupTravelTime(ctx, places[pair.I], places[pair.J])
		}(k, pair)
	}
	wg.Wait()

	for k, pair := range pending {
		matrix[pair] = results[k]
		if results[k] != unreachableTravelTime {
			r.pairCache.Set(places[pair.I].cacheKey(), places[pair.J].cacheKey(), results[k], travelTimePairTTL)
		}
	}

	backfillFailedPairs(matrix)
	return matrix
}

func (r *RouteService) lookupTravelTime(ctx context.Context, origin, destination Place) float64 {
	ctx, cancel := context.WithTimeout(ctx, travelTimeTimeout)
	defer cancel()

	minutes, err := r.provider.GetTravelTime(ctx, origin, destination)
	if err != nil {
		log.Printf("Travel time lookup failed: %s -> %s: %v", origin.Name, destination.Name, err)
		return unreachableTravelTime
	}
	if minutes <= 0 {
		return unreachableTravelTime
	}
	return minutes
}

// backfillFailedPairs replaces sentinel entries with the mean of the
// successful ones. If every lookup failed the sentinels stay, and the greedy
// selection degenerates to input order.
func backfillFailedPairs(matrix TravelTimeMatrix) {
	var sum float64
	var count int
	for _, t := range matrix {
		if t != unreachableTravelTime {
			sum += t
			count++
		}
	}
	if count == 0 {
		return
	}

	avg := sum / float64(count)
	for pair, t := range matrix {
		if t == unreachableTravelTime {
			matrix[pair] = avg
		}
	}
}

// orderByNearestNeighbor starts at the first place and repeatedly moves to
// the closest unvisited one. Ties break toward the lowest original index,
// which keeps the ordering deterministic.
func orderByNearestNeighbor(places []Place, matrix TravelTimeMatrix) []Place {
	route := make([]Place, 0, len(places))
	visited := make([]bool, len(places))

	current := 0
	route = append(route, places[current])
	visited[current] = true

	for len(route) < len(places) {
		next := -1
		best := 0.0
		for candidate := 0; candidate < len(places); candidate++ {
			if visited[candidate] {
				continue
			}
			t := matrix.At(current, candidate)
			if next == -1 || t < best {
				next = candidate
				best = t
			}
		}

		route = append(route, places[next])
		visited[next] = true
		current = next
	}

	return route
}
