package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mholecek/location-scout/internal/model"
	"github.com/mholecek/location-scout/internal/storage/postgres"
)

// In-memory store implementations backing handler tests.

type memProjects struct {
	items map[uuid.UUID]*model.Project
}

func newMemProjects() *memProjects {
	return &memProjects{items: make(map[uuid.UUID]*model.Project)}
}

func (m *memProjects) Create(_ context.Context, p *model.Project) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	clone := *p
	m.items[p.ID] = &clone
	return nil
}

func (m *memProjects) Get(_ context.Context, id uuid.UUID) (*model.Project, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, postgres.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *memProjects) List(_ context.Context) ([]model.Project, error) {
	var out []model.Project
	for _, p := range m.items {
		out = append(out, *p)
	}
	return out, nil
}

func (m *memProjects) Update(_ context.Context, p *model.Project) error {
	if _, ok := m.items[p.ID]; !ok {
		return postgres.ErrNotFound
	}
	clone := *p
	m.items[p.ID] = &clone
	return nil
}

func (m *memProjects) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return postgres.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type memLocations struct {
	items map[uuid.UUID]*model.Location
}

func newMemLocations() *memLocations {
	return &memLocations{items: make(map[uuid.UUID]*model.Location)}
}

func (m *memLocations) Create(_ context.Context, l *model.Location) error {
	l.ID = uuid.New()
	l.CreatedAt = time.Now()
	l.UpdatedAt = l.CreatedAt
	clone := *l
	m.items[l.ID] = &clone
	return nil
}

func (m *memLocations) Get(_ context.Context, id uuid.UUID) (*model.Location, error) {
	l, ok := m.items[id]
	if !ok {
		return nil, postgres.ErrNotFound
	}
	clone := *l
	return &clone, nil
}

func (m *memLocations) ListByProject(_ context.Context, projectID uuid.UUID) ([]model.Location, error) {
	var out []model.Location
	for _, l := range m.items {
		if l.ProjectID == projectID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (m *memLocations) ListByIDs(_ context.Context, ids []uuid.UUID) ([]model.Location, error) {
	var out []model.Location
	for _, id := range ids {
		if l, ok := m.items[id]; ok {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (m *memLocations) Update(_ context.Context, l *model.Location) error {
	if _, ok := m.items[l.ID]; !ok {
		return postgres.ErrNotFound
	}
	clone := *l
	m.items[l.ID] = &clone
	return nil
}

func (m *memLocations) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return postgres.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type memPhotos struct {
	items map[uuid.UUID]*model.Photo
	order []uuid.UUID
}

func newMemPhotos() *memPhotos {
	return &memPhotos{items: make(map[uuid.UUID]*model.Photo)}
}

func (m *memPhotos) Create(_ context.Context, p *model.Photo) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	clone := *p
	m.items[p.ID] = &clone
	m.order = append(m.order, p.ID)
	return nil
}

func (m *memPhotos) Get(_ context.Context, id uuid.UUID) (*model.Photo, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, postgres.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *memPhotos) ListByLocation(_ context.Context, locationID uuid.UUID) ([]model.Photo, error) {
	var out []model.Photo
	for _, id := range m.order {
		if p, ok := m.items[id]; ok && p.LocationID == locationID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memPhotos) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return postgres.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type memProposals struct {
	items map[uuid.UUID]*model.Proposal
}

func newMemProposals() *memProposals {
	return &memProposals{items: make(map[uuid.UUID]*model.Proposal)}
}

func (m *memProposals) Create(_ context.Context, p *model.Proposal) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	clone := *p
	m.items[p.ID] = &clone
	return nil
}

func (m *memProposals) Get(_ context.Context, id uuid.UUID) (*model.Proposal, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, postgres.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *memProposals) ListByProject(_ context.Context, projectID uuid.UUID) ([]model.Proposal, error) {
	var out []model.Proposal
	for _, p := range m.items {
		if p.ProjectID == projectID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memProposals) Update(_ context.Context, p *model.Proposal) error {
	if _, ok := m.items[p.ID]; !ok {
		return postgres.ErrNotFound
	}
	clone := *p
	m.items[p.ID] = &clone
	return nil
}

func (m *memProposals) Publish(_ context.Context, id uuid.UUID, at time.Time) error {
	p, ok := m.items[id]
	if !ok {
		return postgres.ErrNotFound
	}
	if p.PublishedAt == nil {
		p.PublishedAt = &at
	}
	return nil
}

func (m *memProposals) Unpublish(_ context.Context, id uuid.UUID) error {
	p, ok := m.items[id]
	if !ok {
		return postgres.ErrNotFound
	}
	p.PublishedAt = nil
	return nil
}

func (m *memProposals) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return postgres.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type memSunTimes struct {
	items map[string]*model.SunTime
}

func newMemSunTimes() *memSunTimes {
	return &memSunTimes{items: make(map[string]*model.SunTime)}
}

func sunTimeKey(locationID uuid.UUID, date time.Time) string {
	return locationID.String() + "/" + date.Format(time.DateOnly)
}

func (m *memSunTimes) Upsert(_ context.Context, st *model.SunTime) error {
	clone := *st
	m.items[sunTimeKey(st.LocationID, st.Date)] = &clone
	return nil
}

func (m *memSunTimes) Get(_ context.Context, locationID uuid.UUID, date time.Time) (*model.SunTime, error) {
	st, ok := m.items[sunTimeKey(locationID, date)]
	if !ok {
		return nil, postgres.ErrNotFound
	}
	clone := *st
	return &clone, nil
}

// testLogger returns a no-op logger for handler construction.
func testLogger() *zap.Logger {
	return zap.NewNop()
}

// requestWithChiParams creates a request with chi URL parameters
func requestWithChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// parseJSONResponse parses a JSON response body into the target type
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, recorder.Body.String())
	}
}

// assertStatusCode checks if the response has the expected status code
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d\nBody: %s", expected, recorder.Code, recorder.Body.String())
	}
}

// assertJSONError checks if the response is a JSON error with the expected message
func assertJSONError(t *testing.T, recorder *httptest.ResponseRecorder, expectedMessage string) {
	t.Helper()
	var result map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse error response: %v\nBody: %s", err, recorder.Body.String())
	}
	if result["error"] != expectedMessage {
		t.Errorf("expected error '%s', got '%s'", expectedMessage, result["error"])
	}
}
