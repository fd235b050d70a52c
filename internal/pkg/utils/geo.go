package utils

import "math"

// KmPerDegree approximates one degree of latitude/longitude as 111 km,
// which is accurate enough for the sub-kilometer distances this service
// compares (safe-haven radius, nearest-node snapping).
const KmPerDegree = 111.0

// DegreeDistance returns the Euclidean distance between two points in
// degree space. Used for nearest-neighbor ordering where only relative
// distance matters.
func DegreeDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := lat1 - lat2
	dLon := lon1 - lon2
	return math.Sqrt(dLat*dLat + dLon*dLon)
}

// DegreeDistanceKm converts a degree-space distance to kilometers.
func DegreeDistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	return DegreeDistance(lat1, lon1, lat2, lon2) * KmPerDegree
}

// ValidateCoordinates reports whether lat/lon form a valid WGS84 coordinate.
func ValidateCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
