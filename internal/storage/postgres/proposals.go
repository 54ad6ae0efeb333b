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

// ProposalRepository persists client proposals together with their ordered
// location membership in proposal_locations.
type ProposalRepository struct {
	pool *pgxpool.Pool
}

func NewProposalRepository(pool *pgxpool.Pool) *ProposalRepository {
	return &ProposalRepository{pool: pool}
}

func scanProposal(row pgx.Row) (*model.Proposal, error) {
	var p model.Proposal
	err := row.Scan(&p.ID, &p.ProjectID, &p.Title, &p.Description,
		&p.Watermark, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan proposal: %w", err)
	}
	return &p, nil
}

func (r *ProposalRepository) loadLocationIDs(ctx context.Context, p *model.Proposal) error {
	rows, err := r.pool.Query(ctx,
		`SELECT location_id FROM proposal_locations
		 WHERE proposal_id = $1 ORDER BY sort_order`, p.ID)
	if err != nil {
		return fmt.Errorf("failed to load proposal locations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("failed to scan proposal location: %w", err)
		}
		p.LocationIDs = append(p.LocationIDs, id)
	}
	return rows.Err()
}

func replaceLocationIDs(ctx context.Context, tx pgx.Tx, proposalID uuid.UUID, locationIDs []uuid.UUID) error {
	if _, err := tx.Exec(ctx,
		`DELETE FROM proposal_locations WHERE proposal_id = $1`, proposalID); err != nil {
		return fmt.Errorf("failed to clear proposal locations: %w", err)
	}
	for i, locationID := range locationIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO proposal_locations (proposal_id, location_id, sort_order)
			 VALUES ($1, $2, $3)`, proposalID, locationID, i); err != nil {
			return fmt.Errorf("failed to insert proposal location: %w", err)
		}
	}
	return nil
}

func (r *ProposalRepository) Create(ctx context.Context, p *model.Proposal) error {
	p.ID = uuid.New()
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO proposals (id, project_id, title, description, watermark, published_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.ProjectID, p.Title, p.Description, p.Watermark, p.PublishedAt, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert proposal: %w", err)
	}
	if err := replaceLocationIDs(ctx, tx, p.ID, p.LocationIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *ProposalRepository) Get(ctx context.Context, id uuid.UUID) (*model.Proposal, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, project_id, title, description, watermark, published_at, created_at, updated_at
		 FROM proposals WHERE id = $1`, id)
	p, err := scanProposal(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadLocationIDs(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProposalRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Proposal, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, project_id, title, description, watermark, published_at, created_at, updated_at
		 FROM proposals WHERE project_id = $1 ORDER BY created_at`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	defer rows.Close()

	var proposals []model.Proposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range proposals {
		if err := r.loadLocationIDs(ctx, &proposals[i]); err != nil {
			return nil, err
		}
	}
	return proposals, nil
}

func (r *ProposalRepository) Update(ctx context.Context, p *model.Proposal) error {
	p.UpdatedAt = time.Now()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE proposals
		 SET title = $2, description = $3, watermark = $4, updated_at = $5
		 WHERE id = $1`,
		p.ID, p.Title, p.Description, p.Watermark, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update proposal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	if err := replaceLocationIDs(ctx, tx, p.ID, p.LocationIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Publish stamps the proposal as published. Publishing twice keeps the
// original timestamp.
func (r *ProposalRepository) Publish(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE proposals
		 SET published_at = COALESCE(published_at, $2), updated_at = $2
		 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("failed to publish proposal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Unpublish clears the published timestamp so share links stop resolving.
func (r *ProposalRepository) Unpublish(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE proposals SET published_at = NULL, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to unpublish proposal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProposalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM proposals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete proposal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
