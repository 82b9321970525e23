package geo

import (
	"context"
	"fmt"
	"math"
	"sort"

	workerRepo "cleanslate/database/repository/worker"
	"cleanslate/models"
)

const earthRadiusKm = 6371.0

// Locator finds workers close to a point.
type Locator interface {
	FindWorkersNear(ctx context.Context, point models.GeoLocation, radiusKm float64) ([]string, error)
}

// HaversineLocator ranks Active workers by great-circle distance.
// Workers without a recorded location are always included, after the located ones.
type HaversineLocator struct {
	workers workerRepo.WorkerRepository
}

func NewHaversineLocator(workers workerRepo.WorkerRepository) *HaversineLocator {
	return &HaversineLocator{workers: workers}
}

func (l *HaversineLocator) FindWorkersNear(ctx context.Context, point models.GeoLocation, radiusKm float64) ([]string, error) {
	active, err := l.workers.List(ctx, models.WorkerActive)
	if err != nil {
		return nil, fmt.Errorf("find workers near: %w", err)
	}

	type hit struct {
		id   string
		dist float64
	}
	var located []hit
	var unlocated []string
	for _, w := range active {
		if w.Location == nil {
			unlocated = append(unlocated, w.ID)
			continue
		}
		d := DistanceKm(point, *w.Location)
		if radiusKm <= 0 || d <= radiusKm {
			located = append(located, hit{id: w.ID, dist: d})
		}
	}
	sort.SliceStable(located, func(i, j int) bool { return located[i].dist < located[j].dist })

	ids := make([]string, 0, len(located)+len(unlocated))
	for _, h := range located {
		ids = append(ids, h.id)
	}
	return append(ids, unlocated...), nil
}

// DistanceKm is the haversine distance between two points.
func DistanceKm(a, b models.GeoLocation) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}
