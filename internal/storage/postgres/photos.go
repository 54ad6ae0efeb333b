package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mholecek/location-scout/internal/model"
)

// PhotoRepository persists uploaded photos. Extracted metadata is stored
// as a jsonb document so the schema does not chase the EXIF field set.
type PhotoRepository struct {
	pool *pgxpool.Pool
}

func NewPhotoRepository(pool *pgxpool.Pool) *PhotoRepository {
	return &PhotoRepository{pool: pool}
}

const photoColumns = `id, location_id, filename, content_type, storage_path, size, taken_at, exif, created_at`

func scanPhoto(row pgx.Row) (*model.Photo, error) {
	var (
		p        model.Photo
		exifJSON []byte
	)
	err := row.Scan(&p.ID, &p.LocationID, &p.Filename, &p.ContentType,
		&p.StoragePath, &p.Size, &p.TakenAt, &exifJSON, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan photo: %w", err)
	}
	if len(exifJSON) > 0 {
		if err := json.Unmarshal(exifJSON, &p.Exif); err != nil {
			return nil, fmt.Errorf("failed to decode photo exif: %w", err)
		}
	}
	return &p, nil
}

func (r *PhotoRepository) Create(ctx context.Context, p *model.Photo) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()

	var exifJSON []byte
	if p.Exif != nil {
		var err error
		exifJSON, err = json.Marshal(p.Exif)
		if err != nil {
			return fmt.Errorf("failed to encode photo exif: %w", err)
		}
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO photos (`+photoColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.LocationID, p.Filename, p.ContentType,
		p.StoragePath, p.Size, p.TakenAt, exifJSON, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert photo: %w", err)
	}
	return nil
}

func (r *PhotoRepository) Get(ctx context.Context, id uuid.UUID) (*model.Photo, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+photoColumns+` FROM photos WHERE id = $1`, id)
	return scanPhoto(row)
}

func (r *PhotoRepository) ListByLocation(ctx context.Context, locationID uuid.UUID) ([]model.Photo, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+photoColumns+` FROM photos
		 WHERE location_id = $1 ORDER BY created_at`, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	defer rows.Close()

	var photos []model.Photo
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		photos = append(photos, *p)
	}
	return photos, rows.Err()
}

func (r *PhotoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM photos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
