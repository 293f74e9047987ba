package record

import "errors"

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrNoRecordsSelected = errors.New("no records selected")
	ErrEmptyImport       = errors.New("import file has no rows")
	ErrInvalidDateRange  = errors.New("start_date must not be after end_date")
)
