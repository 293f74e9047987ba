package user

import (
	"github.com/luisfsill/Ponto-Digital/internal/pkg/validator"
)

var validRoles = []string{string(RoleAdmin), string(RoleFuncionario)}

// UserResponse represents user data in API responses
type UserResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Role          string           `json:"role"`
	Email         *string          `json:"email,omitempty"`
	PartTime      bool             `json:"part_time"`
	WorkStartTime *string          `json:"work_start_time,omitempty"`
	WorkEndTime   *string          `json:"work_end_time,omitempty"`
	Devices       []DeviceResponse `json:"devices"`
	CreatedAt     string           `json:"created_at"`
	UpdatedAt     string           `json:"updated_at"`
}

type DeviceResponse struct {
	ID           string  `json:"id"`
	DeviceID     string  `json:"device_id"`
	DeviceName   *string `json:"device_name,omitempty"`
	AuthorizedAt string  `json:"authorized_at"`
}

type CreateUserRequest struct {
	Name          string  `json:"name"`
	Role          string  `json:"role"`
	Email         *string `json:"email,omitempty"`
	Password      *string `json:"password,omitempty"`
	PartTime      bool    `json:"part_time"`
	WorkStartTime *string `json:"work_start_time,omitempty"`
	WorkEndTime   *string `json:"work_end_time,omitempty"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if validator.IsEmpty(r.Role) {
		r.Role = string(RoleFuncionario)
	}
	if !validator.IsInSlice(r.Role, validRoles) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be admin or funcionario",
		})
	}

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}
	if r.Role == string(RoleAdmin) && (r.Email == nil || validator.IsEmpty(*r.Email)) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required for admin users",
		})
	}

	if r.Password != nil && len(*r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	errs = append(errs, validateWorkWindow(r.WorkStartTime, r.WorkEndTime)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateUserRequest struct {
	ID            string  `json:"-"`
	Name          *string `json:"name,omitempty"`
	Role          *string `json:"role,omitempty"`
	Email         *string `json:"email,omitempty"`
	Password      *string `json:"password,omitempty"`
	PartTime      *bool   `json:"part_time,omitempty"`
	WorkStartTime *string `json:"work_start_time,omitempty"`
	WorkEndTime   *string `json:"work_end_time,omitempty"`

	// Set by the service after hashing Password.
	PasswordHash *string `json:"-"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.Role != nil && !validator.IsInSlice(*r.Role, validRoles) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be admin or funcionario",
		})
	}

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if r.Password != nil && len(*r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	errs = append(errs, validateWorkWindow(r.WorkStartTime, r.WorkEndTime)...)

	if len(errs) > 0 {
		return errs
	}

	if r.Name == nil && r.Role == nil && r.Email == nil && r.Password == nil &&
		r.PartTime == nil && r.WorkStartTime == nil && r.WorkEndTime == nil {
		return ErrNoUpdatableFields
	}

	return nil
}

func validateWorkWindow(start, end *string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidClock(deref(start)); start != nil && !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "work_start_time",
			Message: "work_start_time must be in HH:MM format",
		})
	}
	if _, ok := validator.IsValidClock(deref(end)); end != nil && !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "work_end_time",
			Message: "work_end_time must be in HH:MM format",
		})
	}

	return errs
}

// BindDeviceRequest links a browser-generated device id to an employee.
type BindDeviceRequest struct {
	UserID     string  `json:"user_id"`
	DeviceID   string  `json:"device_id"`
	DeviceName *string `json:"device_name,omitempty"`
}

func (r *BindDeviceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "Usuário é obrigatório",
		})
	}

	if validator.IsEmpty(r.DeviceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "device_id",
			Message: "Identificador do dispositivo é obrigatório",
		})
	} else if len(r.DeviceID) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "device_id",
			Message: "Identificador do dispositivo deve ter no máximo 255 caracteres",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BindDeviceResponse struct {
	AlreadyBound bool           `json:"already_bound"`
	UserName     string         `json:"user_name"`
	Device       DeviceResponse `json:"device"`
}

type RenameDeviceRequest struct {
	UserID     string `json:"-"`
	DeviceID   string `json:"-"`
	DeviceName string `json:"device_name"`
}

func (r *RenameDeviceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DeviceName) {
		errs = append(errs, validator.ValidationError{
			Field:   "device_name",
			Message: "device_name is required",
		})
	} else if len(r.DeviceName) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "device_name",
			Message: "device_name must not exceed 100 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
