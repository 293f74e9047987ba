package record

import "context"

type RecordRepository interface {
	Create(ctx context.Context, rec Record) (Record, error)
	// CreateMany inserts all records or none.
	CreateMany(ctx context.Context, recs []Record) error
	GetByID(ctx context.Context, id string) (Record, error)
	// List returns matching records newest first, joined with user and geofence names.
	List(ctx context.Context, q Query) ([]Record, error)
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) (int64, error)
}
