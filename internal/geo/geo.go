package geo

import "math"

// EarthRadiusMeters is the spherical-earth radius used for all distance
// math. It matches the radius the geospatial index queries assume, so
// distances computed here agree with distances computed in SQL.
const EarthRadiusMeters = 6378100.0

// Point is a GeoJSON point. Coordinates are [longitude, latitude] —
// stored data uses this order and it must not be swapped.
type Point struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

func NewPoint(lng, lat float64) Point {
	return Point{
		Type:        "Point",
		Coordinates: [2]float64{lng, lat},
	}
}

func (p Point) Lng() float64 { return p.Coordinates[0] }
func (p Point) Lat() float64 { return p.Coordinates[1] }

// Distance returns the haversine distance between two points in meters.
func Distance(a, b Point) float64 {
	lat1 := a.Lat() * math.Pi / 180
	lat2 := b.Lat() * math.Pi / 180
	dLat := (b.Lat() - a.Lat()) * math.Pi / 180
	dLng := (b.Lng() - a.Lng()) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * EarthRadiusMeters * math.Asin(math.Sqrt(h))
}
