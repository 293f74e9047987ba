package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/luisfsill/Ponto-Digital/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	userRepo          user.UserRepository
	deviceRepo        user.DeviceRepository
	useUserSchedule   bool
	defaultDailyQuota int
}

func NewUserService(userRepo user.UserRepository, deviceRepo user.DeviceRepository, useUserSchedule bool, defaultDailyQuota int) user.UserService {
	return &UserServiceImpl{
		userRepo:          userRepo,
		deviceRepo:        deviceRepo,
		useUserSchedule:   useUserSchedule,
		defaultDailyQuota: defaultDailyQuota,
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func mapDeviceToResponse(d user.Device) user.DeviceResponse {
	return user.DeviceResponse{
		ID:           d.ID,
		DeviceID:     d.DeviceID,
		DeviceName:   d.DeviceName,
		AuthorizedAt: d.AuthorizedAt.Format(time.RFC3339),
	}
}

func mapUserToResponse(u user.User) user.UserResponse {
	devices := make([]user.DeviceResponse, 0, len(u.Devices))
	for _, d := range u.Devices {
		devices = append(devices, mapDeviceToResponse(d))
	}

	return user.UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Role:          string(u.Role),
		Email:         u.Email,
		PartTime:      u.PartTime,
		WorkStartTime: u.WorkStartTime,
		WorkEndTime:   u.WorkEndTime,
		Devices:       devices,
		CreatedAt:     u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     u.UpdatedAt.Format(time.RFC3339),
	}
}

// attachDevices loads device bindings for the given users in one query.
func (s *UserServiceImpl) attachDevices(ctx context.Context, users []user.User) error {
	if len(users) == 0 {
		return nil
	}

	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}

	devices, err := s.deviceRepo.ListByUserIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to list devices: %w", err)
	}

	byUser := make(map[string][]user.Device, len(users))
	for _, d := range devices {
		byUser[d.UserID] = append(byUser[d.UserID], d)
	}
	for i := range users {
		users[i].Devices = byUser[users[i].ID]
	}

	return nil
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	if err := s.attachDevices(ctx, users); err != nil {
		return nil, err
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, mapUserToResponse(u))
	}

	return responses, nil
}

// Get implements user.UserService.
func (s *UserServiceImpl) Get(ctx context.Context, id string) (user.UserResponse, error) {
	found, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}

	users := []user.User{found}
	if err := s.attachDevices(ctx, users); err != nil {
		return user.UserResponse{}, err
	}

	return mapUserToResponse(users[0]), nil
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	if req.Email != nil {
		exists, err := s.userRepo.ExistsByEmail(ctx, *req.Email)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return user.UserResponse{}, user.ErrUserEmailExists
		}
	}

	newUser := user.User{
		Name:          req.Name,
		Role:          user.Role(req.Role),
		Email:         req.Email,
		PartTime:      req.PartTime,
		WorkStartTime: req.WorkStartTime,
		WorkEndTime:   req.WorkEndTime,
	}

	if req.Password != nil {
		hashed, err := hashPassword(*req.Password)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		newUser.PasswordHash = &hashed
	}

	created, err := s.userRepo.Create(ctx, newUser)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user created", "user_id", created.ID, "role", created.Role)

	return mapUserToResponse(created), nil
}

// Update implements user.UserService.
func (s *UserServiceImpl) Update(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	current, err := s.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		return user.UserResponse{}, err
	}

	if req.Email != nil && (current.Email == nil || *current.Email != *req.Email) {
		exists, err := s.userRepo.ExistsByEmail(ctx, *req.Email)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return user.UserResponse{}, user.ErrUserEmailExists
		}
	}

	// promoting to admin needs an email to log in with
	if req.Role != nil && user.Role(*req.Role) == user.RoleAdmin && req.Email == nil && current.Email == nil {
		return user.UserResponse{}, user.ErrAdminEmailRequired
	}

	if req.Password != nil {
		hashed, err := hashPassword(*req.Password)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		req.PasswordHash = &hashed
	}

	updated, err := s.userRepo.Update(ctx, req)
	if err != nil {
		return user.UserResponse{}, err
	}

	users := []user.User{updated}
	if err := s.attachDevices(ctx, users); err != nil {
		return user.UserResponse{}, err
	}

	return mapUserToResponse(users[0]), nil
}

// Delete implements user.UserService.
func (s *UserServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	slog.Info("user deleted", "user_id", id)
	return nil
}

// BindDevice implements user.UserService.
func (s *UserServiceImpl) BindDevice(ctx context.Context, req user.BindDeviceRequest) (user.BindDeviceResponse, error) {
	if err := req.Validate(); err != nil {
		return user.BindDeviceResponse{}, err
	}

	owner, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return user.BindDeviceResponse{}, err
	}

	existing, err := s.deviceRepo.GetByDeviceID(ctx, req.DeviceID)
	switch {
	case err == nil:
		if existing.UserID != owner.ID {
			return user.BindDeviceResponse{}, user.ErrDeviceBoundToOther
		}
		return user.BindDeviceResponse{
			AlreadyBound: true,
			UserName:     owner.Name,
			Device:       mapDeviceToResponse(existing),
		}, nil
	case !errors.Is(err, user.ErrDeviceNotFound):
		return user.BindDeviceResponse{}, fmt.Errorf("failed to look up device: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return user.BindDeviceResponse{}, fmt.Errorf("failed to generate device binding id: %w", err)
	}

	created, err := s.deviceRepo.Create(ctx, user.Device{
		ID:         id.String(),
		UserID:     owner.ID,
		DeviceID:   req.DeviceID,
		DeviceName: req.DeviceName,
	})
	if err != nil {
		return user.BindDeviceResponse{}, fmt.Errorf("failed to bind device: %w", err)
	}

	slog.Info("device bound", "user_id", owner.ID, "device_id", created.DeviceID)

	return user.BindDeviceResponse{
		UserName: owner.Name,
		Device:   mapDeviceToResponse(created),
	}, nil
}

// RenameDevice implements user.UserService.
func (s *UserServiceImpl) RenameDevice(ctx context.Context, req user.RenameDeviceRequest) (user.DeviceResponse, error) {
	if err := req.Validate(); err != nil {
		return user.DeviceResponse{}, err
	}

	renamed, err := s.deviceRepo.Rename(ctx, req.UserID, req.DeviceID, req.DeviceName)
	if err != nil {
		return user.DeviceResponse{}, err
	}

	return mapDeviceToResponse(renamed), nil
}

// RemoveDevice implements user.UserService.
func (s *UserServiceImpl) RemoveDevice(ctx context.Context, userID string, deviceID string) error {
	if err := s.deviceRepo.Delete(ctx, userID, deviceID); err != nil {
		return err
	}

	slog.Info("device unbound", "user_id", userID, "device_id", deviceID)
	return nil
}

// ResolveByDevice implements user.UserService.
func (s *UserServiceImpl) ResolveByDevice(ctx context.Context, deviceID string) (user.User, error) {
	device, err := s.deviceRepo.GetByDeviceID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, user.ErrDeviceNotFound) {
			return user.User{}, user.ErrDeviceNotRecognized
		}
		return user.User{}, fmt.Errorf("failed to look up device: %w", err)
	}

	owner, err := s.userRepo.GetByID(ctx, device.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.User{}, user.ErrDeviceNotRecognized
		}
		return user.User{}, err
	}

	return owner, nil
}

// ExpectedMinutesByUser implements user.UserService.
func (s *UserServiceImpl) ExpectedMinutesByUser(ctx context.Context) (map[string]int, error) {
	expected := make(map[string]int)
	if !s.useUserSchedule {
		return expected, nil
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	for _, u := range users {
		if minutes, ok := u.ScheduledMinutes(); ok && minutes != s.defaultDailyQuota {
			expected[u.ID] = minutes
		}
	}

	return expected, nil
}
