package record

import "time"

// Record is a single clock event. It carries no entrada/saida type; the type
// is derived when a day is summarized.
type Record struct {
	ID         string
	UserID     string
	DeviceID   string
	Timestamp  time.Time
	GeofenceID *string
	Latitude   float64
	Longitude  float64
	Accuracy   float64
	IP         *string
	// ImportedType keeps the type column of an imported CSV row for audit.
	ImportedType *string
	CreatedAt    time.Time

	// Join
	UserName     *string
	GeofenceName *string
}

// DefaultImportDeviceID marks records loaded from a spreadsheet.
const DefaultImportDeviceID = "imported"

// Query selects records. Nil bounds are open.
type Query struct {
	UserID string
	From   *time.Time
	To     *time.Time
}
