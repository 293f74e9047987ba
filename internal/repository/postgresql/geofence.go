package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/luisfsill/Ponto-Digital/internal/domain/geofence"
	"github.com/luisfsill/Ponto-Digital/internal/pkg/database"
)

type geofenceRepository struct {
	db *database.DB
}

func NewGeofenceRepository(db *database.DB) geofence.GeofenceRepository {
	return &geofenceRepository{db: db}
}

const geofenceColumns = `id, name, latitude, longitude, radius_meters, active, created_at, updated_at`

func scanGeofence(row pgx.Row) (geofence.Geofence, error) {
	var g geofence.Geofence
	err := row.Scan(
		&g.ID,
		&g.Name,
		&g.Latitude,
		&g.Longitude,
		&g.RadiusMeters,
		&g.Active,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	return g, err
}

func (r *geofenceRepository) list(ctx context.Context, query string) ([]geofence.Geofence, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list geofences: %w", err)
	}
	defer rows.Close()

	var fences []geofence.Geofence
	for rows.Next() {
		g, err := scanGeofence(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan geofence: %w", err)
		}
		fences = append(fences, g)
	}

	return fences, rows.Err()
}

// ListByCreation implements geofence.GeofenceRepository.
func (r *geofenceRepository) ListByCreation(ctx context.Context) ([]geofence.Geofence, error) {
	return r.list(ctx, `SELECT `+geofenceColumns+` FROM geofences ORDER BY created_at ASC, id ASC`)
}

// ListActiveByCreation implements geofence.GeofenceRepository.
func (r *geofenceRepository) ListActiveByCreation(ctx context.Context) ([]geofence.Geofence, error) {
	return r.list(ctx, `SELECT `+geofenceColumns+` FROM geofences WHERE active ORDER BY created_at ASC, id ASC`)
}

// ListNewestFirst implements geofence.GeofenceRepository.
func (r *geofenceRepository) ListNewestFirst(ctx context.Context) ([]geofence.Geofence, error) {
	return r.list(ctx, `SELECT `+geofenceColumns+` FROM geofences ORDER BY created_at DESC, id DESC`)
}

// GetByID implements geofence.GeofenceRepository.
func (r *geofenceRepository) GetByID(ctx context.Context, id string) (geofence.Geofence, error) {
	q := GetQuerier(ctx, r.db)

	g, err := scanGeofence(q.QueryRow(ctx, `SELECT `+geofenceColumns+` FROM geofences WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return geofence.Geofence{}, geofence.ErrGeofenceNotFound
		}
		return geofence.Geofence{}, fmt.Errorf("failed to get geofence: %w", err)
	}

	return g, nil
}

// Create implements geofence.GeofenceRepository.
func (r *geofenceRepository) Create(ctx context.Context, fence geofence.Geofence) (geofence.Geofence, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO geofences (name, latitude, longitude, radius_meters, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + geofenceColumns

	created, err := scanGeofence(q.QueryRow(ctx, query,
		fence.Name, fence.Latitude, fence.Longitude, fence.RadiusMeters, fence.Active,
	))
	if err != nil {
		return geofence.Geofence{}, fmt.Errorf("failed to create geofence: %w", err)
	}

	return created, nil
}

// Update implements geofence.GeofenceRepository.
func (r *geofenceRepository) Update(ctx context.Context, req geofence.UpdateGeofenceRequest) (geofence.Geofence, error) {
	q := GetQuerier(ctx, r.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if req.Name != nil {
		updates = append(updates, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if req.Latitude != nil {
		updates = append(updates, fmt.Sprintf("latitude = $%d", argIdx))
		args = append(args, *req.Latitude)
		argIdx++
	}
	if req.Longitude != nil {
		updates = append(updates, fmt.Sprintf("longitude = $%d", argIdx))
		args = append(args, *req.Longitude)
		argIdx++
	}
	if req.RadiusMeters != nil {
		updates = append(updates, fmt.Sprintf("radius_meters = $%d", argIdx))
		args = append(args, *req.RadiusMeters)
		argIdx++
	}
	if req.Active != nil {
		updates = append(updates, fmt.Sprintf("active = $%d", argIdx))
		args = append(args, *req.Active)
		argIdx++
	}

	if len(updates) == 0 {
		return geofence.Geofence{}, geofence.ErrNoUpdatableFields
	}

	updates = append(updates, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, time.Now())
	argIdx++

	args = append(args, req.ID)

	sql := "UPDATE geofences SET " + strings.Join(updates, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING ", argIdx) + geofenceColumns

	updated, err := scanGeofence(q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return geofence.Geofence{}, geofence.ErrGeofenceNotFound
		}
		return geofence.Geofence{}, fmt.Errorf("failed to update geofence: %w", err)
	}

	return updated, nil
}

// SetActive implements geofence.GeofenceRepository.
func (r *geofenceRepository) SetActive(ctx context.Context, id string, active bool) (geofence.Geofence, error) {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE geofences SET active = $1, updated_at = NOW() WHERE id = $2 RETURNING ` + geofenceColumns

	updated, err := scanGeofence(q.QueryRow(ctx, query, active, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return geofence.Geofence{}, geofence.ErrGeofenceNotFound
		}
		return geofence.Geofence{}, fmt.Errorf("failed to set geofence active: %w", err)
	}

	return updated, nil
}

// Delete implements geofence.GeofenceRepository.
func (r *geofenceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM geofences WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete geofence: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return geofence.ErrGeofenceNotFound
	}

	return nil
}
