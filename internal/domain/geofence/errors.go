package geofence

import "errors"

var (
	ErrGeofenceNotFound      = errors.New("geofence not found or inactive")
	ErrOutsideAllowedArea    = errors.New("outside the allowed area for clocking in")
	ErrOutsideTargetGeofence = errors.New("outside the area of the scanned location")
	ErrNoUpdatableFields     = errors.New("no updatable fields provided")
)
