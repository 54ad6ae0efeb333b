package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mholecek/location-scout/internal/model"
)

// The store interfaces mirror the postgres repositories so handlers can be
// tested against in-memory implementations.

type ProjectStore interface {
	Create(ctx context.Context, p *model.Project) error
	Get(ctx context.Context, id uuid.UUID) (*model.Project, error)
	List(ctx context.Context) ([]model.Project, error)
	Update(ctx context.Context, p *model.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type LocationStore interface {
	Create(ctx context.Context, l *model.Location) error
	Get(ctx context.Context, id uuid.UUID) (*model.Location, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Location, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Location, error)
	Update(ctx context.Context, l *model.Location) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PhotoStore interface {
	Create(ctx context.Context, p *model.Photo) error
	Get(ctx context.Context, id uuid.UUID) (*model.Photo, error)
	ListByLocation(ctx context.Context, locationID uuid.UUID) ([]model.Photo, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProposalStore interface {
	Create(ctx context.Context, p *model.Proposal) error
	Get(ctx context.Context, id uuid.UUID) (*model.Proposal, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Proposal, error)
	Update(ctx context.Context, p *model.Proposal) error
	Publish(ctx context.Context, id uuid.UUID, at time.Time) error
	Unpublish(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type SunTimeStore interface {
	Upsert(ctx context.Context, st *model.SunTime) error
	Get(ctx context.Context, locationID uuid.UUID, date time.Time) (*model.SunTime, error)
}

// Stores bundles every repository a server needs.
type Stores struct {
	Projects  ProjectStore
	Locations LocationStore
	Photos    PhotoStore
	Proposals ProposalStore
	SunTimes  SunTimeStore
}
