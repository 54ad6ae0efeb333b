package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mholecek/location-scout/internal/model"
)

// LocationRepository persists shooting locations. Deleting a location
// cascades to its photos and cached sun times at the schema level.
type LocationRepository struct {
	pool *pgxpool.Pool
}

func NewLocationRepository(pool *pgxpool.Pool) *LocationRepository {
	return &LocationRepository{pool: pool}
}

const locationColumns = `id, project_id, name, description, latitude, longitude, address, created_at, updated_at`

func scanLocation(row pgx.Row) (*model.Location, error) {
	var l model.Location
	err := row.Scan(&l.ID, &l.ProjectID, &l.Name, &l.Description,
		&l.Latitude, &l.Longitude, &l.Address, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan location: %w", err)
	}
	return &l, nil
}

func (r *LocationRepository) Create(ctx context.Context, l *model.Location) error {
	l.ID = uuid.New()
	now := time.Now()
	l.CreatedAt = now
	l.UpdatedAt = now

	_, err := r.pool.Exec(ctx,
		`INSERT INTO locations (`+locationColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		l.ID, l.ProjectID, l.Name, l.Description,
		l.Latitude, l.Longitude, l.Address, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert location: %w", err)
	}
	return nil
}

func (r *LocationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Location, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE id = $1`, id)
	return scanLocation(row)
}

func (r *LocationRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Location, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+locationColumns+` FROM locations
		 WHERE project_id = $1 ORDER BY created_at`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	var locations []model.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, *l)
	}
	return locations, rows.Err()
}

func (r *LocationRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Location, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]model.Location, len(ids))
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		byID[l.ID] = *l
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Preserve the caller's ordering.
	ordered := make([]model.Location, 0, len(ids))
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			ordered = append(ordered, l)
		}
	}
	return ordered, nil
}

func (r *LocationRepository) Update(ctx context.Context, l *model.Location) error {
	l.UpdatedAt = time.Now()
	tag, err := r.pool.Exec(ctx,
		`UPDATE locations
		 SET name = $2, description = $3, latitude = $4, longitude = $5, address = $6, updated_at = $7
		 WHERE id = $1`,
		l.ID, l.Name, l.Description, l.Latitude, l.Longitude, l.Address, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *LocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
