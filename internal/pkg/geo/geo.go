package geo

import "math"

const earthRadiusMeters = 6371000

// Valid reports whether lon/lat form a usable WGS84 coordinate.
func Valid(longitude, latitude float64) bool {
	return longitude >= -180 && longitude <= 180 && latitude >= -90 && latitude <= 90
}

// Distance returns the great-circle distance in meters between two points
// given in decimal degrees, using the haversine formula. A flat-plane
// approximation diverges noticeably at the tens-of-kilometers radii used for
// supplier search, so the spherical form is required.
func Distance(lon1, lat1, lon2, lat2 float64) float64 {
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	dPhi := radians(lat2 - lat1)
	dLambda := radians(lon2 - lon1)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
