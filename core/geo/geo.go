// Package geo provides the static place-name index and great-circle distance
// computation used to rank drivers against trip pickups.
package geo

import (
	"math"
	"sort"
	"strings"
)

// Coordinates is a WGS84 latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// sorted place keys, longest first then lexicographic, so that substring
// resolution is deterministic for ambiguous names.
var placeKeys []string

func init() {
	placeKeys = make([]string, 0, len(places))
	for k := range places {
		placeKeys = append(placeKeys, k)
	}
	sort.Slice(placeKeys, func(i, j int) bool {
		if len(placeKeys[i]) != len(placeKeys[j]) {
			return len(placeKeys[i]) > len(placeKeys[j])
		}
		return placeKeys[i] < placeKeys[j]
	})
}

// Resolve looks up the coordinates for a place name. The lookup is
// case-insensitive: exact match first, then substring match in either
// direction ("CALAHORRA (LA RIOJA)" resolves via the known key "CALAHORRA").
// Among multiple substring matches the longest key wins, ties broken
// lexicographically.
func Resolve(place string) (Coordinates, bool) {
	name := strings.ToUpper(strings.TrimSpace(place))
	if name == "" {
		return Coordinates{}, false
	}
	if c, ok := places[name]; ok {
		return c, true
	}
	for _, key := range placeKeys {
		if strings.Contains(name, key) || strings.Contains(key, name) {
			return places[key], true
		}
	}
	return Coordinates{}, false
}

// Known reports whether the place name resolves to coordinates.
func Known(place string) bool {
	_, ok := Resolve(place)
	return ok
}

const earthRadiusKm = 6371.0

// DistanceKm returns the haversine distance between two points rounded to the
// nearest kilometre. A coordinate equal to zero is treated as a missing fix
// and yields ok=false; the fleet never operates at the null island meridians.
func DistanceKm(lat1, lon1, lat2, lon2 float64) (int, bool) {
	if lat1 == 0 || lon1 == 0 || lat2 == 0 || lon2 == 0 {
		return 0, false
	}
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return int(math.Round(earthRadiusKm * c)), true
}

// Distance is DistanceKm over Coordinates pairs.
func Distance(a, b Coordinates) (int, bool) {
	return DistanceKm(a.Lat, a.Lon, b.Lat, b.Lon)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
