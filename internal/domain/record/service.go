package record

import (
	"context"
	"io"
)

type RecordService interface {
	// ClockIn validates the device and position and stores a clock event.
	ClockIn(ctx context.Context, req ClockInRequest) (ClockInResponse, error)

	List(ctx context.Context, filter FilterRequest) ([]RecordResponse, error)
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, req BulkDeleteRequest) (BulkDeleteResponse, error)

	// Import reads a semicolon separated spreadsheet of records.
	Import(ctx context.Context, r io.Reader) (ImportResponse, error)
	// Export writes matching records as a semicolon separated spreadsheet.
	Export(ctx context.Context, filter FilterRequest, w io.Writer) error
}
