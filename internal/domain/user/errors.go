package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrUserEmailExists        = errors.New("email already registered")
	ErrDeviceNotFound         = errors.New("device not found")
	ErrDeviceNotRecognized    = errors.New("device not recognized")
	ErrDeviceBoundToOther     = errors.New("device is already bound to another user")
	ErrAdminEmailRequired     = errors.New("admin users require an email")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
	ErrNoUpdatableFields      = errors.New("no updatable fields provided")
)
