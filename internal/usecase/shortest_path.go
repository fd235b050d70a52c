package usecase

import (
	"container/heap"
	"math"

	"github.com/safebag-backend/internal/domain"
	"github.com/safebag-backend/internal/pkg/utils"
)

// nearestNode returns the graph node closest to p in degree space. A
// linear scan is the contract here: correctness over asymptotics.
func nearestNode(g *domain.RoadGraph, p domain.Point) *domain.GraphNode {
	var nearest *domain.GraphNode
	best := math.Inf(1)
	for _, n := range g.Nodes {
		d := utils.DegreeDistance(p.Lat, p.Lon, n.Lat, n.Lon)
		if d < best {
			nearest = n
			best = d
		}
	}
	return nearest
}

// shortestSafePath runs Dijkstra over the safety weights and returns the
// node sequence of minimal accumulated safety cost from origin to
// destination, or nil when the destination is unreachable. Ties between
// equal-cost paths are resolved arbitrarily.
func shortestSafePath(g *domain.RoadGraph, origin, destination int64) []int64 {
	dist := map[int64]float64{origin: 0}
	prev := map[int64]int64{}
	visited := map[int64]bool{}

	pq := &nodeQueue{{id: origin, cost: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(nodeItem)
		if visited[item.id] {
			continue
		}
		visited[item.id] = true

		if item.id == destination {
			break
		}

		for _, e := range g.Adjacency[item.id] {
			if visited[e.To] {
				continue
			}
			cost := item.cost + e.SafetyWeight
			if known, ok := dist[e.To]; !ok || cost < known {
				dist[e.To] = cost
				prev[e.To] = item.id
				heap.Push(pq, nodeItem{id: e.To, cost: cost})
			}
		}
	}

	if !visited[destination] {
		return nil
	}

	// Walk predecessors back to the origin.
	path := []int64{destination}
	for path[len(path)-1] != origin {
		path = append(path, prev[path[len(path)-1]])
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type nodeItem struct {
	id   int64
	cost float64
}

type nodeQueue []nodeItem

func (q nodeQueue) Len() int            { return len(q) }
func (q nodeQueue) Less(i, j int) bool  { return q[i].cost < q[j].cost }
func (q nodeQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x interface{}) { *q = append(*q, x.(nodeItem)) }
func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// buildPolyline reconstructs the coordinate line of a node path. Edges
// carrying explicit curve geometry contribute every geometry vertex in
// traversal order; straight segments contribute the from-node coordinate.
// The final node's coordinate is appended exactly once at the end.
func buildPolyline(g *domain.RoadGraph, path []int64) domain.RoutePlan {
	if len(path) == 0 {
		return domain.RoutePlan{}
	}

	route := make(domain.RoutePlan, 0, len(path))
	for i := 0; i+1 < len(path); i++ {
		u, v := path[i], path[i+1]
		if e := g.Edge(u, v); e != nil && len(e.Geometry) > 0 {
			route = append(route, e.Geometry...)
			continue
		}
		node := g.Nodes[u]
		route = append(route, domain.Point{Lat: node.Lat, Lon: node.Lon})
	}

	last := g.Nodes[path[len(path)-1]]
	route = append(route, domain.Point{Lat: last.Lat, Lon: last.Lon})
	return route
}
