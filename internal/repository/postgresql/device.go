package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/luisfsill/Ponto-Digital/internal/domain/user"
	"github.com/luisfsill/Ponto-Digital/internal/pkg/database"
)

type deviceRepository struct {
	db *database.DB
}

func NewDeviceRepository(db *database.DB) user.DeviceRepository {
	return &deviceRepository{db: db}
}

const deviceColumns = `id, user_id, device_id, device_name, authorized_at`

func scanDevice(row pgx.Row) (user.Device, error) {
	var d user.Device
	err := row.Scan(&d.ID, &d.UserID, &d.DeviceID, &d.DeviceName, &d.AuthorizedAt)
	return d, err
}

// ListByUserIDs implements user.DeviceRepository.
func (r *deviceRepository) ListByUserIDs(ctx context.Context, userIDs []string) ([]user.Device, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+deviceColumns+`
		FROM device_authorizations
		WHERE user_id = ANY($1)
		ORDER BY authorized_at ASC
	`, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	defer rows.Close()

	var devices []user.Device
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan device: %w", err)
		}
		devices = append(devices, d)
	}

	return devices, rows.Err()
}

// GetByDeviceID implements user.DeviceRepository.
func (r *deviceRepository) GetByDeviceID(ctx context.Context, deviceID string) (user.Device, error) {
	q := GetQuerier(ctx, r.db)

	d, err := scanDevice(q.QueryRow(ctx, `SELECT `+deviceColumns+` FROM device_authorizations WHERE device_id = $1`, deviceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.Device{}, user.ErrDeviceNotFound
		}
		return user.Device{}, fmt.Errorf("failed to get device: %w", err)
	}

	return d, nil
}

// Create implements user.DeviceRepository.
func (r *deviceRepository) Create(ctx context.Context, device user.Device) (user.Device, error) {
	q := GetQuerier(ctx, r.db)

	created, err := scanDevice(q.QueryRow(ctx, `
		INSERT INTO device_authorizations (id, user_id, device_id, device_name)
		VALUES ($1, $2, $3, $4)
		RETURNING `+deviceColumns,
		device.ID, device.UserID, device.DeviceID, device.DeviceName,
	))
	if err != nil {
		return user.Device{}, err
	}

	return created, nil
}

// Rename implements user.DeviceRepository.
func (r *deviceRepository) Rename(ctx context.Context, userID, deviceID, name string) (user.Device, error) {
	q := GetQuerier(ctx, r.db)

	d, err := scanDevice(q.QueryRow(ctx, `
		UPDATE device_authorizations SET device_name = $1
		WHERE user_id = $2 AND device_id = $3
		RETURNING `+deviceColumns,
		name, userID, deviceID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.Device{}, user.ErrDeviceNotFound
		}
		return user.Device{}, fmt.Errorf("failed to rename device: %w", err)
	}

	return d, nil
}

// Delete implements user.DeviceRepository.
func (r *deviceRepository) Delete(ctx context.Context, userID, deviceID string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM device_authorizations WHERE user_id = $1 AND device_id = $2`, userID, deviceID)
	if err != nil {
		return fmt.Errorf("failed to delete device: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return user.ErrDeviceNotFound
	}

	return nil
}
