package record

import (
	"time"

	"github.com/luisfsill/Ponto-Digital/internal/pkg/validator"
)

// ClockInRequest is sent by the employee's browser. DeviceID is the opaque id
// stored on the device when it was bound. Coordinates are pointers so a
// missing location is told apart from (0, 0).
type ClockInRequest struct {
	DeviceID   string   `json:"device_id"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	Accuracy   float64  `json:"accuracy"`
	GeofenceID *string  `json:"geofence_id,omitempty"`
	IP         string   `json:"-"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DeviceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "device_id",
			Message: "Identificador do dispositivo é obrigatório",
		})
	}

	if r.Latitude == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "Localização é obrigatória",
		})
	} else if !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "Latitude deve estar entre -90 e 90",
		})
	}

	if r.Longitude == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "Localização é obrigatória",
		})
	} else if !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "Longitude deve estar entre -180 e 180",
		})
	}

	if r.Accuracy < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "accuracy",
			Message: "Precisão não pode ser negativa",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ClockInUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ClockInGeofence struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ClockInResponse struct {
	Message   string          `json:"message"`
	RecordID  string          `json:"record_id"`
	User      ClockInUser     `json:"user"`
	Geofence  ClockInGeofence `json:"geofence"`
	Timestamp string          `json:"timestamp"`
}

type RecordResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	UserName     *string `json:"user_name,omitempty"`
	DeviceID     string  `json:"device_id"`
	Timestamp    string  `json:"timestamp"`
	GeofenceID   *string `json:"geofence_id,omitempty"`
	GeofenceName *string `json:"geofence_name,omitempty"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Accuracy     float64 `json:"accuracy"`
	IP           *string `json:"ip,omitempty"`
	ImportedType *string `json:"imported_type,omitempty"`
}

// FilterRequest narrows listings, reports and exports. Dates are calendar
// days (YYYY-MM-DD) in the configured timezone and both ends are inclusive.
type FilterRequest struct {
	UserID    string `json:"user_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *FilterRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.UserID != "" && !validator.IsValidUUID(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id must be a valid UUID",
		})
	}

	if r.StartDate != "" {
		if _, ok := validator.IsValidDate(r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.EndDate != "" {
		if _, ok := validator.IsValidDate(r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	if r.StartDate != "" && r.EndDate != "" && r.StartDate > r.EndDate {
		return ErrInvalidDateRange
	}

	return nil
}

// ToQuery converts the filter to a Query bounded by local midnight on the
// start day and the last instant of the end day.
func (r *FilterRequest) ToQuery(loc *time.Location) (Query, error) {
	if err := r.Validate(); err != nil {
		return Query{}, err
	}

	q := Query{UserID: r.UserID}

	if r.StartDate != "" {
		from, err := time.ParseInLocation("2006-01-02", r.StartDate, loc)
		if err != nil {
			return Query{}, err
		}
		q.From = &from
	}

	if r.EndDate != "" {
		end, err := time.ParseInLocation("2006-01-02", r.EndDate, loc)
		if err != nil {
			return Query{}, err
		}
		to := end.AddDate(0, 0, 1).Add(-time.Nanosecond)
		q.To = &to
	}

	return q, nil
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

func (r *BulkDeleteRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.IDs) == 0 {
		return ErrNoRecordsSelected
	}

	for _, id := range r.IDs {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "ids",
				Message: "every id must be a valid UUID",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BulkDeleteResponse struct {
	Deleted int64 `json:"deleted"`
}

type ImportError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

type ImportResponse struct {
	Imported int           `json:"imported"`
	Failed   int           `json:"failed"`
	Errors   []ImportError `json:"errors"`
}
