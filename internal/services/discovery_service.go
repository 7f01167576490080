package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/yleanad/village-homeschool-app/internal/geo"
	"github.com/yleanad/village-homeschool-app/internal/helpers"
	"github.com/yleanad/village-homeschool-app/internal/models"
)

// DiscoveryService is the family matching engine: a read-only radius scan
// over geocoded profiles plus a simple text search sharing the same
// candidate loading.
type DiscoveryService struct {
	familyRepo models.FamilyRepo
}

func NewDiscoveryService(familyRepo models.FamilyRepo) *DiscoveryService {
	return &DiscoveryService{
		familyRepo: familyRepo,
	}
}

// DiscoveryFilter narrows the radius scan. MinAge/MaxAge keep only families
// with at least one child inside the range (MaxAge 0 means no upper bound);
// Interests keeps families sharing at least one tag, case-insensitively.
type DiscoveryFilter struct {
	MinAge    int
	MaxAge    int
	Interests []string
}

func (f DiscoveryFilter) matches(family *models.FamilyProfile) bool {
	if f.MinAge > 0 || f.MaxAge > 0 {
		anyInRange := false
		for _, child := range family.Children {
			if child.Age < f.MinAge {
				continue
			}
			if f.MaxAge > 0 && child.Age > f.MaxAge {
				continue
			}
			anyInRange = true
			break
		}
		if !anyInRange {
			return false
		}
	}

	if len(f.Interests) > 0 {
		shared := false
		for _, want := range f.Interests {
			want = strings.ToLower(strings.TrimSpace(want))
			if want == "" {
				continue
			}
			for _, have := range family.Interests {
				if strings.ToLower(have) == want {
					shared = true
					break
				}
			}
			if shared {
				break
			}
		}
		if !shared {
			return false
		}
	}

	return true
}

// DiscoverNearby returns every other geocoded family within radiusMiles of
// the session family, nearest first. Ties on distance break by family id so
// ordering is deterministic. radiusMiles <= 0 falls back to the profile's
// configured search radius.
func (ds *DiscoveryService) DiscoverNearby(ctx context.Context, session *helpers.Session, radiusMiles float64, filter DiscoveryFilter) ([]*models.DiscoveryResult, error) {
	requester, err := ds.familyRepo.GetProfileByID(ctx, session.FamilyID)
	if err != nil {
		return nil, err
	}
	if requester.Location == nil {
		return nil, models.ErrLocationRequired
	}

	if radiusMiles <= 0 {
		radiusMiles = float64(requester.SearchRadius)
	}

	candidates, err := ds.familyRepo.ListCandidates(ctx, requester.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	type scored struct {
		family   *models.FamilyProfile
		distance float64
	}

	matches := make([]scored, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.Location == nil {
			continue
		}
		if !filter.matches(candidate) {
			continue
		}
		d := geo.DistanceMiles(
			requester.Location.Latitude, requester.Location.Longitude,
			candidate.Location.Latitude, candidate.Location.Longitude,
		)
		// Compare the unrounded distance so a family at 25.04 miles doesn't
		// flap in and out of a 25 mile radius.
		if d <= radiusMiles {
			matches = append(matches, scored{family: candidate, distance: d})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].family.ID.String() < matches[j].family.ID.String()
	})

	results := make([]*models.DiscoveryResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, &models.DiscoveryResult{
			Family:        m.family,
			DistanceMiles: geo.RoundMiles(m.distance),
		})
	}
	return results, nil
}

// SearchFamilies matches the query case-insensitively against family name,
// city, and interest tags. Exact matches come before partial matches; within
// each band ordering is by family id.
func (ds *DiscoveryService) SearchFamilies(ctx context.Context, session *helpers.Session, query string) ([]*models.FamilyProfile, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}

	candidates, err := ds.familyRepo.ListOthers(ctx, session.FamilyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	var exact, partial []*models.FamilyProfile
	for _, candidate := range candidates {
		switch matchFamily(candidate, query) {
		case matchExact:
			exact = append(exact, candidate)
		case matchPartial:
			partial = append(partial, candidate)
		}
	}

	byID := func(families []*models.FamilyProfile) {
		sort.Slice(families, func(i, j int) bool {
			return families[i].ID.String() < families[j].ID.String()
		})
	}
	byID(exact)
	byID(partial)

	return append(exact, partial...), nil
}

type matchKind int

const (
	matchNone matchKind = iota
	matchPartial
	matchExact
)

func matchFamily(family *models.FamilyProfile, query string) matchKind {
	fields := []string{strings.ToLower(family.FamilyName)}
	if family.Location != nil {
		fields = append(fields, strings.ToLower(family.Location.City))
	}
	for _, tag := range family.Interests {
		fields = append(fields, strings.ToLower(tag))
	}

	best := matchNone
	for _, f := range fields {
		if f == query {
			return matchExact
		}
		if strings.Contains(f, query) {
			best = matchPartial
		}
	}
	return best
}
