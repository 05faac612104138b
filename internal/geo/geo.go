// Package geo has the small amount of spherical geometry the category search
// needs.
package geo

import "math"

const earthRadiusKm = 6371

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64
	Lng float64
}

// HaversineKm returns the great-circle distance between two points in km.
func HaversineKm(a, b Point) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)
	lat1 := toRad(a.Lat)
	lat2 := toRad(b.Lat)
	sinDLat := math.Sin(dLat / 2)
	sinDLng := math.Sin(dLng / 2)
	h := sinDLat*sinDLat + math.Cos(lat1)*math.Cos(lat2)*sinDLng*sinDLng
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }

// Bounds is a coarse lat/lng bounding box.
type Bounds struct {
	MinLat, MinLng float64
	MaxLat, MaxLng float64
}

func (b Bounds) Contains(p Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat && p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}

// Region covers Andhra Pradesh and Telangana, the area the category search
// supports.
var Region = Bounds{MinLat: 12.5, MinLng: 76.5, MaxLat: 20.8, MaxLng: 85.5}
