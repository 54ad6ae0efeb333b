package handlers

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/mholecek/location-scout/internal/model"
	"github.com/mholecek/location-scout/internal/report"
	"github.com/mholecek/location-scout/internal/storage/files"
)

func setupExportFixture(t *testing.T) (*ExportHandler, *model.Project, *model.Proposal) {
	t.Helper()

	store, err := files.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create file store: %v", err)
	}

	stores := Stores{
		Projects:  newMemProjects(),
		Locations: newMemLocations(),
		Photos:    newMemPhotos(),
		Proposals: newMemProposals(),
		SunTimes:  newMemSunTimes(),
	}

	project := &model.Project{Name: "Vltava Locations"}
	if err := stores.Projects.Create(context.Background(), project); err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}

	location := &model.Location{
		ProjectID: project.ID,
		Name:      "Old Mill",
		Latitude:  50.0755,
		Longitude: 14.4378,
		Address:   "Prague, Czechia",
	}
	if err := stores.Locations.Create(context.Background(), location); err != nil {
		t.Fatalf("failed to seed location: %v", err)
	}

	rel, _, err := store.Save(uuid.New(), "mill.jpg", bytes.NewReader(jpegBytes(t, 320, 240)))
	if err != nil {
		t.Fatalf("failed to store photo: %v", err)
	}
	photo := &model.Photo{
		LocationID:  location.ID,
		Filename:    "mill.jpg",
		ContentType: "image/jpeg",
		StoragePath: rel,
	}
	if err := stores.Photos.Create(context.Background(), photo); err != nil {
		t.Fatalf("failed to seed photo: %v", err)
	}

	proposal := &model.Proposal{
		ProjectID:   project.ID,
		Title:       "Client Selection",
		LocationIDs: []uuid.UUID{location.ID},
	}
	if err := stores.Proposals.Create(context.Background(), proposal); err != nil {
		t.Fatalf("failed to seed proposal: %v", err)
	}

	presetOptions := func(string) report.RenderOptions {
		opts := report.DefaultRenderOptions()
		opts.Concurrency = 1
		return opts
	}
	handler := NewExportHandler(stores, store, presetOptions, nil, "secret", "https://scout.example.com", testLogger())
	return handler, project, proposal
}

func TestExportHandler_ProjectReport_PDF(t *testing.T) {
	handler, project, _ := setupExportFixture(t)

	req := httptest.NewRequest("GET", "/api/v1/projects/"+project.ID.String()+"/report", nil)
	req = requestWithChiParams(req, map[string]string{"id": project.ID.String()})
	recorder := httptest.NewRecorder()

	handler.ProjectReport(recorder, req)
	assertStatusCode(t, recorder, http.StatusOK)

	if ct := recorder.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("expected Content-Type application/pdf, got '%s'", ct)
	}
	if !bytes.HasPrefix(recorder.Body.Bytes(), []byte("%PDF")) {
		t.Error("response does not start with PDF magic bytes")
	}
	disposition := recorder.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "Vltava_Locations.pdf") {
		t.Errorf("unexpected Content-Disposition: %s", disposition)
	}
}

func TestExportHandler_ProjectReport_Zip(t *testing.T) {
	handler, project, _ := setupExportFixture(t)

	req := httptest.NewRequest("GET", "/api/v1/projects/"+project.ID.String()+"/report?format=zip", nil)
	req = requestWithChiParams(req, map[string]string{"id": project.ID.String()})
	recorder := httptest.NewRecorder()

	handler.ProjectReport(recorder, req)
	assertStatusCode(t, recorder, http.StatusOK)

	if ct := recorder.Header().Get("Content-Type"); ct != "application/zip" {
		t.Errorf("expected Content-Type application/zip, got '%s'", ct)
	}

	body := recorder.Body.Bytes()
	archive, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		t.Fatalf("response is not a zip archive: %v", err)
	}

	var names []string
	for _, f := range archive.File {
		names = append(names, f.Name)
	}
	foundPDF := false
	foundImage := false
	for _, name := range names {
		if strings.HasSuffix(name, ".pdf") {
			foundPDF = true
		}
		if strings.HasSuffix(name, ".jpg") {
			foundImage = true
		}
	}
	if !foundPDF || !foundImage {
		t.Errorf("expected PDF and image entries, got %v", names)
	}
}

func TestExportHandler_ProposalReport_SectionFilter(t *testing.T) {
	handler, _, proposal := setupExportFixture(t)

	req := httptest.NewRequest("GET", "/api/v1/proposals/"+proposal.ID.String()+"/report?sections=location,image", nil)
	req = requestWithChiParams(req, map[string]string{"id": proposal.ID.String()})
	recorder := httptest.NewRecorder()

	handler.ProposalReport(recorder, req)
	assertStatusCode(t, recorder, http.StatusOK)

	if !bytes.HasPrefix(recorder.Body.Bytes(), []byte("%PDF")) {
		t.Error("response does not start with PDF magic bytes")
	}
}

func TestExportHandler_ProjectReport_NotFound(t *testing.T) {
	handler, _, _ := setupExportFixture(t)

	unknownID := uuid.NewString()
	req := httptest.NewRequest("GET", "/api/v1/projects/"+unknownID+"/report", nil)
	req = requestWithChiParams(req, map[string]string{"id": unknownID})
	recorder := httptest.NewRecorder()

	handler.ProjectReport(recorder, req)
	assertStatusCode(t, recorder, http.StatusNotFound)
}

func TestExportHandler_ProposalPage_NotConfigured(t *testing.T) {
	handler, _, proposal := setupExportFixture(t)

	req := httptest.NewRequest("GET", "/api/v1/proposals/"+proposal.ID.String()+"/page.pdf", nil)
	req = requestWithChiParams(req, map[string]string{"id": proposal.ID.String()})
	recorder := httptest.NewRecorder()

	handler.ProposalPage(recorder, req)
	assertStatusCode(t, recorder, http.StatusServiceUnavailable)
}

func TestParseFilter(t *testing.T) {
	req := httptest.NewRequest("GET", "/report?sections=location,sun", nil)
	filter := parseFilter(req)
	if !filter.Location || !filter.Sun {
		t.Error("expected location and sun sections enabled")
	}
	if filter.Camera || filter.Image {
		t.Error("expected other sections disabled")
	}

	req = httptest.NewRequest("GET", "/report", nil)
	if filter := parseFilter(req); filter != report.AllSections() {
		t.Error("expected all sections by default")
	}
}
