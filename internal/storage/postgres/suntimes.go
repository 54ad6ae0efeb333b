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

// SunTimeRepository caches computed per-day solar events so repeated report
// and calendar requests for the same location and date skip the math.
type SunTimeRepository struct {
	pool *pgxpool.Pool
}

func NewSunTimeRepository(pool *pgxpool.Pool) *SunTimeRepository {
	return &SunTimeRepository{pool: pool}
}

func (r *SunTimeRepository) Upsert(ctx context.Context, st *model.SunTime) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO sun_times (location_id, date, sunrise, sunset, solar_noon, day_length_minutes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (location_id, date) DO UPDATE
		 SET sunrise = EXCLUDED.sunrise,
		     sunset = EXCLUDED.sunset,
		     solar_noon = EXCLUDED.solar_noon,
		     day_length_minutes = EXCLUDED.day_length_minutes`,
		st.LocationID, st.Date, st.Sunrise, st.Sunset, st.SolarNoon, st.DayLengthMinutes)
	if err != nil {
		return fmt.Errorf("failed to upsert sun times: %w", err)
	}
	return nil
}

func (r *SunTimeRepository) Get(ctx context.Context, locationID uuid.UUID, date time.Time) (*model.SunTime, error) {
	var st model.SunTime
	err := r.pool.QueryRow(ctx,
		`SELECT location_id, date, sunrise, sunset, solar_noon, day_length_minutes
		 FROM sun_times WHERE location_id = $1 AND date = $2`,
		locationID, date).
		Scan(&st.LocationID, &st.Date, &st.Sunrise, &st.Sunset, &st.SolarNoon, &st.DayLengthMinutes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sun times: %w", err)
	}
	return &st, nil
}
