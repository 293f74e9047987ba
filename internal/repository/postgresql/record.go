package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/luisfsill/Ponto-Digital/internal/domain/record"
	"github.com/luisfsill/Ponto-Digital/internal/pkg/database"
)

type recordRepository struct {
	db *database.DB
}

func NewRecordRepository(db *database.DB) record.RecordRepository {
	return &recordRepository{db: db}
}

const insertRecordSQL = `
	INSERT INTO records (
		id, user_id, device_id, timestamp, geofence_id,
		latitude, longitude, accuracy, ip, imported_type
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

const selectRecordSQL = `
	SELECT r.id, r.user_id, r.device_id, r.timestamp, r.geofence_id,
		   r.latitude, r.longitude, r.accuracy, r.ip, r.imported_type, r.created_at,
		   u.name, g.name
	FROM records r
	JOIN users u ON u.id = r.user_id
	LEFT JOIN geofences g ON g.id = r.geofence_id
`

func recordArgs(rec record.Record) []interface{} {
	return []interface{}{
		rec.ID, rec.UserID, rec.DeviceID, rec.Timestamp, rec.GeofenceID,
		rec.Latitude, rec.Longitude, rec.Accuracy, rec.IP, rec.ImportedType,
	}
}

func scanRecord(row pgx.Row) (record.Record, error) {
	var rec record.Record
	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.DeviceID,
		&rec.Timestamp,
		&rec.GeofenceID,
		&rec.Latitude,
		&rec.Longitude,
		&rec.Accuracy,
		&rec.IP,
		&rec.ImportedType,
		&rec.CreatedAt,
		&rec.UserName,
		&rec.GeofenceName,
	)
	return rec, err
}

// Create implements record.RecordRepository.
func (r *recordRepository) Create(ctx context.Context, rec record.Record) (record.Record, error) {
	q := GetQuerier(ctx, r.db)

	err := q.QueryRow(ctx, insertRecordSQL+` RETURNING created_at`, recordArgs(rec)...).Scan(&rec.CreatedAt)
	if err != nil {
		return record.Record{}, fmt.Errorf("failed to insert record: %w", err)
	}

	return rec, nil
}

// CreateMany implements record.RecordRepository.
func (r *recordRepository) CreateMany(ctx context.Context, recs []record.Record) error {
	if len(recs) == 0 {
		return nil
	}

	return WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		batch := &pgx.Batch{}
		for _, rec := range recs {
			batch.Queue(insertRecordSQL, recordArgs(rec)...)
		}

		if err := GetQuerier(txCtx, r.db).SendBatch(txCtx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert records: %w", err)
		}
		return nil
	})
}

// GetByID implements record.RecordRepository.
func (r *recordRepository) GetByID(ctx context.Context, id string) (record.Record, error) {
	q := GetQuerier(ctx, r.db)

	rec, err := scanRecord(q.QueryRow(ctx, selectRecordSQL+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return record.Record{}, record.ErrRecordNotFound
		}
		return record.Record{}, fmt.Errorf("failed to get record: %w", err)
	}

	return rec, nil
}

// List implements record.RecordRepository.
func (r *recordRepository) List(ctx context.Context, query record.Query) ([]record.Record, error) {
	q := GetQuerier(ctx, r.db)

	conditions := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if query.UserID != "" {
		conditions = append(conditions, fmt.Sprintf("r.user_id = $%d", argIdx))
		args = append(args, query.UserID)
		argIdx++
	}
	if query.From != nil {
		conditions = append(conditions, fmt.Sprintf("r.timestamp >= $%d", argIdx))
		args = append(args, *query.From)
		argIdx++
	}
	if query.To != nil {
		conditions = append(conditions, fmt.Sprintf("r.timestamp <= $%d", argIdx))
		args = append(args, *query.To)
		argIdx++
	}

	sql := selectRecordSQL
	if len(conditions) > 0 {
		sql += " WHERE " + strings.Join(conditions, " AND ")
	}
	sql += " ORDER BY r.timestamp DESC, r.id DESC"

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var recs []record.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

// Delete implements record.RecordRepository.
func (r *recordRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return record.ErrRecordNotFound
	}

	return nil
}

// BulkDelete implements record.RecordRepository.
func (r *recordRepository) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM records WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to delete records: %w", err)
	}

	return commandTag.RowsAffected(), nil
}
