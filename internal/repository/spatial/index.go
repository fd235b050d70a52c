// Package spatial provides nearest-neighbor search over the ward-centroid
// corpus. The corpus is a few hundred points, so an exact linear scan is
// both simpler and faster than a tree for the query sizes involved.
package spatial

import (
	"sort"

	"github.com/safebag-backend/internal/domain"
	"github.com/safebag-backend/internal/pkg/utils"
)

// Index is an immutable k-nearest-neighbor index over reference zones.
type Index struct {
	zones []*domain.ReferenceZone
}

// New builds an index over the corpus. A nil or empty corpus yields a nil
// index; callers treat that as "no spatial data", not as an error.
func New(zones []*domain.ReferenceZone) *Index {
	if len(zones) == 0 {
		return nil
	}
	owned := make([]*domain.ReferenceZone, len(zones))
	copy(owned, zones)
	return &Index{zones: owned}
}

// Query returns the k zones nearest to (lat, lon) with their degree-space
// distances, ascending. Fewer than k results are returned when the corpus
// is smaller than k.
func (idx *Index) Query(lat, lon float64, k int) []domain.ZoneDistance {
	if idx == nil || k <= 0 {
		return nil
	}

	results := make([]domain.ZoneDistance, len(idx.zones))
	for i, z := range idx.zones {
		results[i] = domain.ZoneDistance{
			Zone:     z,
			Distance: utils.DegreeDistance(lat, lon, z.Lat, z.Lon),
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})

	if len(results) > k {
		results = results[:k]
	}
	return results
}

// Size reports the corpus size.
func (idx *Index) Size() int {
	if idx == nil {
		return 0
	}
	return len(idx.zones)
}
