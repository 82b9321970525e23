package geo

import (
	"context"
	"math"
	"testing"
	"time"

	workerRepo "cleanslate/database/repository/worker"
	"cleanslate/models"
)

func TestDistanceKm(t *testing.T) {
	capeTown := models.GeoLocation{Lat: -33.9249, Lng: 18.4241}
	joburg := models.GeoLocation{Lat: -26.2041, Lng: 28.0473}

	d := DistanceKm(capeTown, joburg)
	if math.Abs(d-1262) > 15 {
		t.Fatalf("expected roughly 1262km, got %.1f", d)
	}
	if DistanceKm(capeTown, capeTown) != 0 {
		t.Fatalf("expected zero distance to self")
	}
}

func TestFindWorkersNear(t *testing.T) {
	ctx := context.Background()
	repo := workerRepo.NewMemoryWorkerRepo()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	add := func(id string, status models.WorkerStatus, loc *models.GeoLocation, offset int) {
		err := repo.Create(ctx, &models.Worker{
			ID: id, Email: id + "@example.com", Status: status, Location: loc,
			CreatedAt: base.Add(time.Duration(offset) * time.Minute), Version: 1,
		})
		if err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	center := models.GeoLocation{Lat: -33.9249, Lng: 18.4241}
	add("far", models.WorkerActive, &models.GeoLocation{Lat: -26.2041, Lng: 28.0473}, 0)
	add("near", models.WorkerActive, &models.GeoLocation{Lat: -33.93, Lng: 18.43}, 1)
	add("nearer", models.WorkerActive, &models.GeoLocation{Lat: -33.925, Lng: 18.4242}, 2)
	add("nowhere", models.WorkerActive, nil, 3)
	add("pending", models.WorkerPendingApproval, &center, 4)

	ids, err := NewHaversineLocator(repo).FindWorkersNear(ctx, center, 10)
	if err != nil {
		t.Fatalf("FindWorkersNear: %v", err)
	}
	want := []string{"nearer", "near", "nowhere"}
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, ids)
		}
	}
}
