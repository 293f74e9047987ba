package user

import (
	"context"
)

type UserRepository interface {
	// List returns users ordered by name.
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	// ListByName returns every user with exactly this name, oldest first.
	// Used by CSV import, which must not pick one of several namesakes.
	ListByName(ctx context.Context, name string) ([]User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, newUser User) (User, error)
	Update(ctx context.Context, req UpdateUserRequest) (User, error)
	Delete(ctx context.Context, id string) error
}

type DeviceRepository interface {
	ListByUserIDs(ctx context.Context, userIDs []string) ([]Device, error)
	GetByDeviceID(ctx context.Context, deviceID string) (Device, error)
	Create(ctx context.Context, device Device) (Device, error)
	Rename(ctx context.Context, userID, deviceID, name string) (Device, error)
	Delete(ctx context.Context, userID, deviceID string) error
}
