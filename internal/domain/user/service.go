package user

import "context"

type UserService interface {
	List(ctx context.Context) ([]UserResponse, error)
	Get(ctx context.Context, id string) (UserResponse, error)
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	Update(ctx context.Context, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, id string) error

	BindDevice(ctx context.Context, req BindDeviceRequest) (BindDeviceResponse, error)
	RenameDevice(ctx context.Context, req RenameDeviceRequest) (DeviceResponse, error)
	RemoveDevice(ctx context.Context, userID, deviceID string) error

	// ResolveByDevice returns the owner of a bound device.
	ResolveByDevice(ctx context.Context, deviceID string) (User, error)

	// ExpectedMinutesByUser returns per-user daily quotas derived from work
	// windows. It is empty unless schedule-based quotas are enabled.
	ExpectedMinutesByUser(ctx context.Context) (map[string]int, error)
}
