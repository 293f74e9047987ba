package geofence

import "context"

type GeofenceService interface {
	List(ctx context.Context) ([]GeofenceResponse, error)
	Get(ctx context.Context, id string) (GeofenceResponse, error)
	Create(ctx context.Context, req CreateGeofenceRequest) (GeofenceResponse, error)
	Update(ctx context.Context, req UpdateGeofenceRequest) (GeofenceResponse, error)
	SetActive(ctx context.Context, req SetActiveRequest) (GeofenceResponse, error)
	Delete(ctx context.Context, id string) error

	// CheckInURL returns the link a location QR code should encode.
	CheckInURL(ctx context.Context, id string) (CheckInURLResponse, error)

	// Match resolves the fence for a clock-in at the given point.
	Match(ctx context.Context, req MatchRequest) (Geofence, error)
}
