package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/yleanad/village-homeschool-app/internal/helpers"
	"github.com/yleanad/village-homeschool-app/internal/models"
)

func sessionFor(profile *models.FamilyProfile) *helpers.Session {
	return &helpers.Session{
		UserID:   profile.UserID,
		FamilyID: profile.ID,
	}
}

func newSession() *helpers.Session {
	return &helpers.Session{UserID: uuid.New(), FamilyID: uuid.New()}
}

func TestDiscoverNearbyRequiresLocation(t *testing.T) {
	repo := newFakeFamilyRepo()
	me := seedUnlocatedProfile(repo, "Carter Family")
	svc := NewDiscoveryService(repo)

	_, err := svc.DiscoverNearby(context.Background(), sessionFor(me), 25, DiscoveryFilter{})
	if !errors.Is(err, models.ErrLocationRequired) {
		t.Fatalf("expected ErrLocationRequired, got %v", err)
	}
}

func TestDiscoverNearbyExcludesSelfAndUnlocated(t *testing.T) {
	repo := newFakeFamilyRepo()
	me := seedProfile(repo, "Carter Family", 30.2672, -97.7431)
	near := seedProfile(repo, "Nguyen Family", 30.30, -97.75)
	seedUnlocatedProfile(repo, "Ghost Family")
	svc := NewDiscoveryService(repo)

	results, err := svc.DiscoverNearby(context.Background(), sessionFor(me), 25, DiscoveryFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Family.ID != near.ID {
		t.Errorf("expected %s, got %s", near.FamilyName, results[0].Family.FamilyName)
	}
	for _, r := range results {
		if r.Family.ID == me.ID {
			t.Error("requester must not appear in its own results")
		}
	}
}

func TestDiscoverNearbyRadiusBoundary(t *testing.T) {
	repo := newFakeFamilyRepo()
	// Austin to Houston is roughly 165 miles great circle.
	me := seedProfile(repo, "Carter Family", 30.2672, -97.7431)
	seedProfile(repo, "Houston Family", 29.7601, -95.3701)
	svc := NewDiscoveryService(repo)

	results, err := svc.DiscoverNearby(context.Background(), sessionFor(me), 100, DiscoveryFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("100 mile radius should exclude Houston, got %d results", len(results))
	}

	results, err = svc.DiscoverNearby(context.Background(), sessionFor(me), 200, DiscoveryFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("200 mile radius should include Houston, got %d results", len(results))
	}
	if results[0].DistanceMiles < 140 || results[0].DistanceMiles > 180 {
		t.Errorf("implausible Austin-Houston distance: %v miles", results[0].DistanceMiles)
	}
}

func TestDiscoverNearbyDefaultRadiusFromProfile(t *testing.T) {
	repo := newFakeFamilyRepo()
	me := seedProfile(repo, "Carter Family", 30.2672, -97.7431)
	me.SearchRadius = 200
	seedProfile(repo, "Houston Family", 29.7601, -95.3701)
	svc := NewDiscoveryService(repo)

	results, err := svc.DiscoverNearby(context.Background(), sessionFor(me), 0, DiscoveryFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("profile search radius of 200 should include Houston, got %d results", len(results))
	}
}

func TestDiscoverNearbySortedByDistance(t *testing.T) {
	repo := newFakeFamilyRepo()
	me := seedProfile(repo, "Carter Family", 30.2672, -97.7431)
	far := seedProfile(repo, "Round Rock Family", 30.5083, -97.6789)
	near := seedProfile(repo, "Hyde Park Family", 30.3050, -97.7286)
	svc := NewDiscoveryService(repo)

	results, err := svc.DiscoverNearby(context.Background(), sessionFor(me), 50, DiscoveryFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Family.ID != near.ID || results[1].Family.ID != far.ID {
		t.Errorf("results not ordered nearest first: %s, %s",
			results[0].Family.FamilyName, results[1].Family.FamilyName)
	}
	if results[0].DistanceMiles > results[1].DistanceMiles {
		t.Errorf("distances out of order: %v then %v",
			results[0].DistanceMiles, results[1].DistanceMiles)
	}
}

func TestDiscoverNearbyEqualDistanceTieBreaksByID(t *testing.T) {
	repo := newFakeFamilyRepo()
	me := seedProfile(repo, "Carter Family", 30.2672, -97.7431)
	// Same coordinates, so identical distances; only the id can order them.
	a := seedProfile(repo, "Nguyen Family", 30.30, -97.75)
	b := seedProfile(repo, "Okafor Family", 30.30, -97.75)
	svc := NewDiscoveryService(repo)

	first, second := a, b
	if b.ID.String() < a.ID.String() {
		first, second = b, a
	}

	// The fake's map iteration order varies, so repeat to catch instability.
	for i := 0; i < 20; i++ {
		results, err := svc.DiscoverNearby(context.Background(), sessionFor(me), 25, DiscoveryFilter{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("expected 2 results, got %d", len(results))
		}
		if results[0].DistanceMiles != results[1].DistanceMiles {
			t.Fatalf("expected equal distances, got %v and %v",
				results[0].DistanceMiles, results[1].DistanceMiles)
		}
		if results[0].Family.ID != first.ID || results[1].Family.ID != second.ID {
			t.Fatalf("iteration %d: tie not broken by id: got %s then %s",
				i, results[0].Family.ID, results[1].Family.ID)
		}
	}
}

func TestDiscoverNearbyAgeRangeFilter(t *testing.T) {
	repo := newFakeFamilyRepo()
	me := seedProfile(repo, "Carter Family", 30.2672, -97.7431)
	teens := seedProfile(repo, "Nguyen Family", 30.30, -97.75)
	teens.Children = []models.Child{{Name: "Linh", Age: 14}}
	littles := seedProfile(repo, "Okafor Family", 30.31, -97.76)
	littles.Children = []models.Child{{Name: "Ada", Age: 4}}
	seedProfile(repo, "Childless Family", 30.32, -97.77)
	svc := NewDiscoveryService(repo)

	results, err := svc.DiscoverNearby(context.Background(), sessionFor(me), 25,
		DiscoveryFilter{MinAge: 10, MaxAge: 17})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Family.ID != teens.ID {
		t.Fatalf("age filter should keep only the family with a teen, got %d results", len(results))
	}

	// Only a lower bound: littles stay excluded, childless stays excluded.
	results, err = svc.DiscoverNearby(context.Background(), sessionFor(me), 25,
		DiscoveryFilter{MinAge: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Family.ID != teens.ID {
		t.Fatalf("min-age filter should keep only the teen family, got %d results", len(results))
	}
}

func TestDiscoverNearbyInterestFilter(t *testing.T) {
	repo := newFakeFamilyRepo()
	me := seedProfile(repo, "Carter Family", 30.2672, -97.7431)
	robotics := seedProfile(repo, "Nguyen Family", 30.30, -97.75, "Robotics", "Hiking")
	seedProfile(repo, "Okafor Family", 30.31, -97.76, "Pottery")
	svc := NewDiscoveryService(repo)

	results, err := svc.DiscoverNearby(context.Background(), sessionFor(me), 25,
		DiscoveryFilter{Interests: []string{"robotics"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Family.ID != robotics.ID {
		t.Fatalf("interest filter should match case-insensitively, got %d results", len(results))
	}
}

func TestSearchFamiliesExactBeforePartial(t *testing.T) {
	repo := newFakeFamilyRepo()
	me := seedProfile(repo, "Carter Family", 30.2672, -97.7431)
	partial := seedProfile(repo, "Artful Family", 30.30, -97.75, "art history")
	exact := seedProfile(repo, "Nguyen Family", 30.31, -97.76, "art")
	svc := NewDiscoveryService(repo)

	results, err := svc.SearchFamilies(context.Background(), sessionFor(me), "Art")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ID != exact.ID {
		t.Errorf("exact interest match should rank first, got %s", results[0].FamilyName)
	}
	if results[1].ID != partial.ID {
		t.Errorf("partial match should rank second, got %s", results[1].FamilyName)
	}
}

func TestSearchFamiliesEmptyQuery(t *testing.T) {
	repo := newFakeFamilyRepo()
	me := seedProfile(repo, "Carter Family", 30.2672, -97.7431)
	svc := NewDiscoveryService(repo)

	if _, err := svc.SearchFamilies(context.Background(), sessionFor(me), "   "); err == nil {
		t.Fatal("expected error for blank query")
	}
}
