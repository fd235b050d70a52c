package domain

// ReferenceZone is a ward centroid from the reference dataset. The risk
// classifiers were trained with the ward encoded as a categorical feature,
// so each zone carries the integer encoding the models expect. Loaded once
// at startup, immutable afterwards.
type ReferenceZone struct {
	ID           int64   `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	Lat          float64 `json:"lat" db:"lat"`
	Lon          float64 `json:"lon" db:"lon"`
	RiskEncoding int     `json:"risk_encoding" db:"risk_encoding"`
}

// SafeHaven is a location (police station, hospital) that overrides all
// scoring for nearby queries.
type SafeHaven struct {
	ID   int64   `json:"id" db:"id"`
	Name string  `json:"name" db:"name"`
	Lat  float64 `json:"lat" db:"lat"`
	Lon  float64 `json:"lon" db:"lon"`
}

// ZoneDistance is a reference zone paired with its degree-space distance
// from a query point, as returned by the spatial index.
type ZoneDistance struct {
	Zone     *ReferenceZone
	Distance float64
}
