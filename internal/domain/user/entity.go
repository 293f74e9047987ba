package user

import "time"

type Role string

const (
	RoleAdmin       Role = "admin"       // Manages fences, employees and reports
	RoleFuncionario Role = "funcionario" // Clocks in from a bound device
)

const clockLayout = "15:04"

type User struct {
	ID            string
	Name          string
	Role          Role
	Email         *string
	PasswordHash  *string
	PartTime      bool
	WorkStartTime *string
	WorkEndTime   *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Join
	Devices []Device
}

// Device is an opaque identifier, generated on the employee's browser, that
// has been bound to a user.
type Device struct {
	ID           string
	UserID       string
	DeviceID     string
	DeviceName   *string
	AuthorizedAt time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ScheduledMinutes returns the length of the user's work window. ok is false
// when either bound is missing or unparsable. A window ending before it
// starts is treated as crossing midnight.
func (u *User) ScheduledMinutes() (minutes int, ok bool) {
	if u.WorkStartTime == nil || u.WorkEndTime == nil {
		return 0, false
	}

	start, err := time.Parse(clockLayout, *u.WorkStartTime)
	if err != nil {
		return 0, false
	}
	end, err := time.Parse(clockLayout, *u.WorkEndTime)
	if err != nil {
		return 0, false
	}

	d := end.Sub(start)
	if d <= 0 {
		d += 24 * time.Hour
	}

	return int(d.Minutes()), true
}
