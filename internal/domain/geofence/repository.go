package geofence

import "context"

type GeofenceRepository interface {
	// ListByCreation returns every fence ordered oldest first.
	// Clock-in matching depends on this order.
	ListByCreation(ctx context.Context) ([]Geofence, error)

	// ListActiveByCreation returns active fences only, oldest first.
	ListActiveByCreation(ctx context.Context) ([]Geofence, error)

	// ListNewestFirst is used by the admin dashboard.
	ListNewestFirst(ctx context.Context) ([]Geofence, error)

	GetByID(ctx context.Context, id string) (Geofence, error)
	Create(ctx context.Context, fence Geofence) (Geofence, error)
	Update(ctx context.Context, req UpdateGeofenceRequest) (Geofence, error)
	SetActive(ctx context.Context, id string, active bool) (Geofence, error)
	Delete(ctx context.Context, id string) error
}
