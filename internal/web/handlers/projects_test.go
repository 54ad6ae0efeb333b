package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/mholecek/location-scout/internal/model"
)

func TestProjectsHandler_Create_Success(t *testing.T) {
	handler := NewProjectsHandler(newMemProjects(), testLogger())

	body := bytes.NewBufferString(`{"name": "Vltava Locations", "description": "river spots"}`)
	req := httptest.NewRequest("POST", "/api/v1/projects", body)
	recorder := httptest.NewRecorder()

	handler.Create(recorder, req)

	assertStatusCode(t, recorder, http.StatusCreated)

	var project model.Project
	parseJSONResponse(t, recorder, &project)

	if project.ID == uuid.Nil {
		t.Error("expected project ID to be assigned")
	}
	if project.Name != "Vltava Locations" {
		t.Errorf("expected name 'Vltava Locations', got '%s'", project.Name)
	}
}

func TestProjectsHandler_Create_MissingName(t *testing.T) {
	handler := NewProjectsHandler(newMemProjects(), testLogger())

	body := bytes.NewBufferString(`{"description": "no name"}`)
	req := httptest.NewRequest("POST", "/api/v1/projects", body)
	recorder := httptest.NewRecorder()

	handler.Create(recorder, req)

	assertStatusCode(t, recorder, http.StatusBadRequest)
	assertJSONError(t, recorder, "name is required")
}

func TestProjectsHandler_Create_InvalidBody(t *testing.T) {
	handler := NewProjectsHandler(newMemProjects(), testLogger())

	body := bytes.NewBufferString(`not json`)
	req := httptest.NewRequest("POST", "/api/v1/projects", body)
	recorder := httptest.NewRecorder()

	handler.Create(recorder, req)

	assertStatusCode(t, recorder, http.StatusBadRequest)
	assertJSONError(t, recorder, errInvalidRequestBody)
}

func TestProjectsHandler_Get_NotFound(t *testing.T) {
	handler := NewProjectsHandler(newMemProjects(), testLogger())

	req := httptest.NewRequest("GET", "/api/v1/projects/"+uuid.NewString(), nil)
	req = requestWithChiParams(req, map[string]string{"id": uuid.NewString()})
	recorder := httptest.NewRecorder()

	handler.Get(recorder, req)

	assertStatusCode(t, recorder, http.StatusNotFound)
	assertJSONError(t, recorder, "project not found")
}

func TestProjectsHandler_Get_InvalidID(t *testing.T) {
	handler := NewProjectsHandler(newMemProjects(), testLogger())

	req := httptest.NewRequest("GET", "/api/v1/projects/nope", nil)
	req = requestWithChiParams(req, map[string]string{"id": "nope"})
	recorder := httptest.NewRecorder()

	handler.Get(recorder, req)

	assertStatusCode(t, recorder, http.StatusBadRequest)
}

func TestProjectsHandler_UpdateAndDelete(t *testing.T) {
	projects := newMemProjects()
	handler := NewProjectsHandler(projects, testLogger())

	seed := &model.Project{Name: "Original"}
	if err := projects.Create(context.Background(), seed); err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}

	body := bytes.NewBufferString(`{"name": "Renamed"}`)
	req := httptest.NewRequest("PUT", "/api/v1/projects/"+seed.ID.String(), body)
	req = requestWithChiParams(req, map[string]string{"id": seed.ID.String()})
	recorder := httptest.NewRecorder()

	handler.Update(recorder, req)
	assertStatusCode(t, recorder, http.StatusOK)

	updated, err := projects.Get(context.Background(), seed.ID)
	if err != nil {
		t.Fatalf("failed to get project: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Errorf("expected name 'Renamed', got '%s'", updated.Name)
	}

	req = httptest.NewRequest("DELETE", "/api/v1/projects/"+seed.ID.String(), nil)
	req = requestWithChiParams(req, map[string]string{"id": seed.ID.String()})
	recorder = httptest.NewRecorder()

	handler.Delete(recorder, req)
	assertStatusCode(t, recorder, http.StatusNoContent)

	if _, err := projects.Get(context.Background(), seed.ID); err == nil {
		t.Error("expected project to be deleted")
	}
}
