package branch

import "time"

// Branch carries the branch coordinates used by the clock-in radius check.
// The legacy schema stores the location as a single "lat,lon" string; the
// repository splits it into proper floats.
type Branch struct {
	Code         string
	Name         string
	Latitude     float64
	Longitude    float64
	RadiusMeters int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
