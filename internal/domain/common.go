package domain

// Point is a geographic coordinate in (latitude, longitude) order. All
// coordinates inside the service use this convention; external providers
// that speak (lon, lat) are translated at the boundary.
type Point struct {
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
}

// RoutePlan is an ordered polyline of coordinates. An empty plan is the
// normal representation of "no route could be computed".
type RoutePlan []Point

// RoutePair bundles the two alternative lines returned to the app: the
// provider's fastest route and the graph-derived safest route. Either may
// be empty.
type RoutePair struct {
	FastRoute RoutePlan `json:"fast_route"`
	SafeRoute RoutePlan `json:"safe_route"`
}
