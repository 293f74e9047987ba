package user

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/luisfsill/Ponto-Digital/internal/domain/user"
	"github.com/luisfsill/Ponto-Digital/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[string]user.User
	seq   int
}

func newFakeUserRepo(users ...user.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]user.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) List(ctx context.Context) ([]user.User, error) {
	var out []user.User
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if u.Email != nil && *u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) ListByName(ctx context.Context, name string) ([]user.User, error) {
	var out []user.User
	for _, u := range r.users {
		if u.Name == name {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	r.seq++
	newUser.ID = fmt.Sprintf("user-%d", r.seq)
	newUser.CreatedAt = time.Now()
	newUser.UpdatedAt = newUser.CreatedAt
	r.users[newUser.ID] = newUser
	return newUser, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, req user.UpdateUserRequest) (user.User, error) {
	u, ok := r.users[req.ID]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Role != nil {
		u.Role = user.Role(*req.Role)
	}
	if req.Email != nil {
		u.Email = req.Email
	}
	if req.PasswordHash != nil {
		u.PasswordHash = req.PasswordHash
	}
	if req.PartTime != nil {
		u.PartTime = *req.PartTime
	}
	if req.WorkStartTime != nil {
		u.WorkStartTime = req.WorkStartTime
	}
	if req.WorkEndTime != nil {
		u.WorkEndTime = req.WorkEndTime
	}
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeDeviceRepo struct {
	devices []user.Device
}

func (r *fakeDeviceRepo) ListByUserIDs(ctx context.Context, userIDs []string) ([]user.Device, error) {
	var out []user.Device
	for _, d := range r.devices {
		for _, id := range userIDs {
			if d.UserID == id {
				out = append(out, d)
			}
		}
	}
	return out, nil
}

func (r *fakeDeviceRepo) GetByDeviceID(ctx context.Context, deviceID string) (user.Device, error) {
	for _, d := range r.devices {
		if d.DeviceID == deviceID {
			return d, nil
		}
	}
	return user.Device{}, user.ErrDeviceNotFound
}

func (r *fakeDeviceRepo) Create(ctx context.Context, device user.Device) (user.Device, error) {
	device.AuthorizedAt = time.Now()
	r.devices = append(r.devices, device)
	return device, nil
}

func (r *fakeDeviceRepo) Rename(ctx context.Context, userID, deviceID, name string) (user.Device, error) {
	for i, d := range r.devices {
		if d.UserID == userID && d.DeviceID == deviceID {
			r.devices[i].DeviceName = &name
			return r.devices[i], nil
		}
	}
	return user.Device{}, user.ErrDeviceNotFound
}

func (r *fakeDeviceRepo) Delete(ctx context.Context, userID, deviceID string) error {
	for i, d := range r.devices {
		if d.UserID == userID && d.DeviceID == deviceID {
			r.devices = append(r.devices[:i], r.devices[i+1:]...)
			return nil
		}
	}
	return user.ErrDeviceNotFound
}

func strPtr(s string) *string { return &s }

func TestUserService_Create_HashesPassword(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := NewUserService(users, &fakeDeviceRepo{}, false, 480)

	resp, err := svc.Create(ctx, user.CreateUserRequest{
		Name:     "Ana",
		Role:     "admin",
		Email:    strPtr("ana@example.com"),
		Password: strPtr("password123"),
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Role)
	assert.Empty(t, resp.Devices)

	stored := users.users[resp.ID]
	require.NotNil(t, stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*stored.PasswordHash), []byte("password123")))
}

func TestUserService_Create_DefaultsToFuncionario(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), &fakeDeviceRepo{}, false, 480)

	resp, err := svc.Create(context.Background(), user.CreateUserRequest{Name: "Bruno"})
	require.NoError(t, err)
	assert.Equal(t, "funcionario", resp.Role)
}

func TestUserService_Create_Validation(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), &fakeDeviceRepo{}, false, 480)

	_, err := svc.Create(context.Background(), user.CreateUserRequest{Role: "admin", WorkStartTime: strPtr("25:00")})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "work_start_time")
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	users := newFakeUserRepo(user.User{ID: "u1", Name: "Ana", Email: strPtr("ana@example.com")})
	svc := NewUserService(users, &fakeDeviceRepo{}, false, 480)

	_, err := svc.Create(context.Background(), user.CreateUserRequest{Name: "Outra", Email: strPtr("ana@example.com")})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestUserService_Update_PromoteWithoutEmail(t *testing.T) {
	users := newFakeUserRepo(user.User{ID: "u1", Name: "Ana", Role: user.RoleFuncionario})
	svc := NewUserService(users, &fakeDeviceRepo{}, false, 480)

	_, err := svc.Update(context.Background(), user.UpdateUserRequest{ID: "u1", Role: strPtr("admin")})
	assert.ErrorIs(t, err, user.ErrAdminEmailRequired)

	_, err = svc.Update(context.Background(), user.UpdateUserRequest{ID: "u1"})
	assert.ErrorIs(t, err, user.ErrNoUpdatableFields)
}

func TestUserService_BindDevice(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo(
		user.User{ID: "u1", Name: "Ana"},
		user.User{ID: "u2", Name: "Bruno"},
	)
	devices := &fakeDeviceRepo{}
	svc := NewUserService(users, devices, false, 480)

	resp, err := svc.BindDevice(ctx, user.BindDeviceRequest{UserID: "u1", DeviceID: "dev-abc", DeviceName: strPtr("Celular")})
	require.NoError(t, err)
	assert.False(t, resp.AlreadyBound)
	assert.Equal(t, "Ana", resp.UserName)
	assert.Equal(t, "dev-abc", resp.Device.DeviceID)
	assert.NotEmpty(t, resp.Device.ID)

	resp, err = svc.BindDevice(ctx, user.BindDeviceRequest{UserID: "u1", DeviceID: "dev-abc"})
	require.NoError(t, err)
	assert.True(t, resp.AlreadyBound)
	assert.Len(t, devices.devices, 1)

	_, err = svc.BindDevice(ctx, user.BindDeviceRequest{UserID: "u2", DeviceID: "dev-abc"})
	assert.ErrorIs(t, err, user.ErrDeviceBoundToOther)

	_, err = svc.BindDevice(ctx, user.BindDeviceRequest{UserID: "missing", DeviceID: "dev-x"})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserService_ResolveByDevice(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo(user.User{ID: "u1", Name: "Ana"})
	devices := &fakeDeviceRepo{devices: []user.Device{{ID: "d1", UserID: "u1", DeviceID: "dev-abc"}}}
	svc := NewUserService(users, devices, false, 480)

	found, err := svc.ResolveByDevice(ctx, "dev-abc")
	require.NoError(t, err)
	assert.Equal(t, "u1", found.ID)

	_, err = svc.ResolveByDevice(ctx, "dev-unknown")
	assert.ErrorIs(t, err, user.ErrDeviceNotRecognized)
}

func TestUserService_RenameAndRemoveDevice(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo(user.User{ID: "u1", Name: "Ana"})
	devices := &fakeDeviceRepo{devices: []user.Device{{ID: "d1", UserID: "u1", DeviceID: "dev-abc"}}}
	svc := NewUserService(users, devices, false, 480)

	renamed, err := svc.RenameDevice(ctx, user.RenameDeviceRequest{UserID: "u1", DeviceID: "dev-abc", DeviceName: "Tablet"})
	require.NoError(t, err)
	require.NotNil(t, renamed.DeviceName)
	assert.Equal(t, "Tablet", *renamed.DeviceName)

	got, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got.Devices, 1)

	require.NoError(t, svc.RemoveDevice(ctx, "u1", "dev-abc"))
	assert.ErrorIs(t, svc.RemoveDevice(ctx, "u1", "dev-abc"), user.ErrDeviceNotFound)
}

func TestUserService_ExpectedMinutesByUser(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo(
		user.User{ID: "full", Name: "Ana", WorkStartTime: strPtr("09:00"), WorkEndTime: strPtr("17:00")},
		user.User{ID: "part", Name: "Bia", PartTime: true, WorkStartTime: strPtr("08:00"), WorkEndTime: strPtr("12:00")},
		user.User{ID: "none", Name: "Caio"},
	)

	disabled := NewUserService(users, &fakeDeviceRepo{}, false, 480)
	expected, err := disabled.ExpectedMinutesByUser(ctx)
	require.NoError(t, err)
	assert.Empty(t, expected)

	enabled := NewUserService(users, &fakeDeviceRepo{}, true, 480)
	expected, err = enabled.ExpectedMinutesByUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"part": 240}, expected)
}

func TestUser_ScheduledMinutes(t *testing.T) {
	night := user.User{WorkStartTime: strPtr("22:00"), WorkEndTime: strPtr("06:00")}
	minutes, ok := night.ScheduledMinutes()
	assert.True(t, ok)
	assert.Equal(t, 480, minutes)

	missing := user.User{WorkStartTime: strPtr("08:00")}
	_, ok = missing.ScheduledMinutes()
	assert.False(t, ok)
}
