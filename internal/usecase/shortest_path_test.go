package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safebag-backend/internal/domain"
)

func lineGraph(weights ...float64) *domain.RoadGraph {
	g := &domain.RoadGraph{
		Nodes:     make(map[int64]*domain.GraphNode),
		Adjacency: make(map[int64][]*domain.GraphEdge),
	}
	for i := 0; i <= len(weights); i++ {
		id := int64(i + 1)
		g.Nodes[id] = &domain.GraphNode{ID: id, Lat: float64(i), Lon: 0}
	}
	for i, w := range weights {
		from, to := int64(i+1), int64(i+2)
		g.Adjacency[from] = append(g.Adjacency[from], &domain.GraphEdge{
			From: from, To: to, SafetyWeight: w,
		})
	}
	return g
}

func TestNearestNode(t *testing.T) {
	g := lineGraph(1, 1, 1)

	t.Run("closest vertex wins", func(t *testing.T) {
		n := nearestNode(g, domain.Point{Lat: 2.1, Lon: 0.05})
		require.NotNil(t, n)
		assert.Equal(t, int64(3), n.ID)
	})

	t.Run("empty graph yields nil", func(t *testing.T) {
		empty := &domain.RoadGraph{
			Nodes:     map[int64]*domain.GraphNode{},
			Adjacency: map[int64][]*domain.GraphEdge{},
		}
		assert.Nil(t, nearestNode(empty, domain.Point{Lat: 0, Lon: 0}))
	})
}

func TestShortestSafePath(t *testing.T) {
	t.Run("follows the chain in order", func(t *testing.T) {
		g := lineGraph(0.3, 0.2, 0.5)
		path := shortestSafePath(g, 1, 4)
		assert.Equal(t, []int64{1, 2, 3, 4}, path)
	})

	t.Run("prefers lower accumulated safety cost over fewer hops", func(t *testing.T) {
		g := lineGraph(0.1, 0.1)
		// Shortcut 1 -> 3 costs more than the two cheap hops combined.
		g.Adjacency[1] = append(g.Adjacency[1], &domain.GraphEdge{
			From: 1, To: 3, SafetyWeight: 0.5,
		})

		path := shortestSafePath(g, 1, 3)
		assert.Equal(t, []int64{1, 2, 3}, path)
	})

	t.Run("origin equals destination", func(t *testing.T) {
		g := lineGraph(0.3)
		path := shortestSafePath(g, 1, 1)
		assert.Equal(t, []int64{1}, path)
	})

	t.Run("unreachable destination yields nil", func(t *testing.T) {
		g := lineGraph(0.3, 0.2)
		// Edges are directed; there is no way back.
		path := shortestSafePath(g, 3, 1)
		assert.Nil(t, path)
	})
}

func TestBuildPolyline(t *testing.T) {
	t.Run("straight segments use node coordinates", func(t *testing.T) {
		g := lineGraph(0.3, 0.2)
		route := buildPolyline(g, []int64{1, 2, 3})
		assert.Equal(t, domain.RoutePlan{
			{Lat: 0, Lon: 0},
			{Lat: 1, Lon: 0},
			{Lat: 2, Lon: 0},
		}, route)
	})

	t.Run("empty path yields empty plan", func(t *testing.T) {
		g := lineGraph(0.3)
		route := buildPolyline(g, nil)
		assert.NotNil(t, route)
		assert.Empty(t, route)
	})

	t.Run("single node path yields its coordinate", func(t *testing.T) {
		g := lineGraph(0.3)
		route := buildPolyline(g, []int64{2})
		assert.Equal(t, domain.RoutePlan{{Lat: 1, Lon: 0}}, route)
	})
}
