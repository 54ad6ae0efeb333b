package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/mholecek/location-scout/internal/model"
)

// ProjectsHandler handles project CRUD endpoints.
type ProjectsHandler struct {
	projects ProjectStore
	log      *zap.Logger
}

// NewProjectsHandler creates a new projects handler.
func NewProjectsHandler(projects ProjectStore, log *zap.Logger) *ProjectsHandler {
	return &ProjectsHandler{projects: projects, log: log}
}

// ProjectRequest is the create/update payload.
type ProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// List returns all projects.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		h.log.Error("failed to list projects", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to list projects")
		return
	}
	if projects == nil {
		projects = []model.Project{}
	}
	respondJSON(w, http.StatusOK, projects)
}

// Create creates a new project.
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	project := &model.Project{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.projects.Create(r.Context(), project); err != nil {
		h.log.Error("failed to create project", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to create project")
		return
	}
	respondJSON(w, http.StatusCreated, project)
}

// Get returns a single project by ID.
func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	project, err := h.projects.Get(r.Context(), id)
	if err != nil {
		respondStoreError(w, err, "project not found")
		return
	}
	respondJSON(w, http.StatusOK, project)
}

// Update updates a project's name and description.
func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	var req ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	project := &model.Project{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.projects.Update(r.Context(), project); err != nil {
		respondStoreError(w, err, "project not found")
		return
	}
	respondJSON(w, http.StatusOK, project)
}

// Delete removes a project and, through cascades, its locations, photos
// and proposals.
func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.projects.Delete(r.Context(), id); err != nil {
		respondStoreError(w, err, "project not found")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
