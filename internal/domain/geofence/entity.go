package geofence

import (
	"time"

	"github.com/luisfsill/Ponto-Digital/internal/pkg/geo"
)

// Geofence is a circular work area an employee must be inside to clock in.
type Geofence struct {
	ID           string
	Name         string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Center returns the fence center as a geo.Point.
func (g Geofence) Center() geo.Point {
	return geo.NewPoint(g.Latitude, g.Longitude)
}

// Contains reports whether p lies inside the fence. The boundary is inclusive.
func (g Geofence) Contains(p geo.Point) bool {
	return geo.DistanceMeters(p, g.Center()) <= g.RadiusMeters
}

// DistanceFrom returns the distance in meters from p to the fence center.
func (g Geofence) DistanceFrom(p geo.Point) float64 {
	return geo.DistanceMeters(p, g.Center())
}

// FindMatching picks the fence that authorizes a clock-in at p.
//
// With a targetID (QR code check-in) only that fence is considered: it has to
// be present, active and contain p. Without a target the candidates are
// scanned in the given order and the first active fence containing p wins,
// even if a later fence has a closer center.
func FindMatching(p geo.Point, candidates []Geofence, targetID string) (Geofence, bool) {
	if targetID != "" {
		for _, fence := range candidates {
			if fence.ID != targetID {
				continue
			}
			if fence.Active && fence.Contains(p) {
				return fence, true
			}
			return Geofence{}, false
		}
		return Geofence{}, false
	}

	for _, fence := range candidates {
		if !fence.Active {
			continue
		}
		if fence.Contains(p) {
			return fence, true
		}
	}

	return Geofence{}, false
}
