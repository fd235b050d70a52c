package domain

// GraphNode is a road-network vertex.
type GraphNode struct {
	ID  int64   `json:"id" db:"id"`
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
}

// GraphEdge is a directed road segment between two nodes. Geometry, when
// present, holds the intermediate curve vertices of the real road in
// traversal order; straight segments carry no geometry.
type GraphEdge struct {
	From         int64   `db:"from_node"`
	To           int64   `db:"to_node"`
	TravelWeight float64 `db:"travel_weight"`
	SafetyWeight float64 `db:"safety_weight"`
	Geometry     []Point `db:"-"`
}

// RoadGraph is the directed weighted road network. It is published once by
// the graph provider and never mutated afterwards, so concurrent queries
// read it without synchronization. Adjacency maps from-node to its
// outgoing edges.
type RoadGraph struct {
	Nodes     map[int64]*GraphNode
	Adjacency map[int64][]*GraphEdge
}

// Edge returns the directed edge u->v, or nil if none exists.
func (g *RoadGraph) Edge(u, v int64) *GraphEdge {
	for _, e := range g.Adjacency[u] {
		if e.To == v {
			return e
		}
	}
	return nil
}

// NodeCount reports the number of vertices in the graph.
func (g *RoadGraph) NodeCount() int {
	return len(g.Nodes)
}
