package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mholecek/location-scout/internal/model"
	"github.com/mholecek/location-scout/internal/sharetoken"
)

// ProposalsHandler handles proposal CRUD and publishing endpoints.
type ProposalsHandler struct {
	proposals     ProposalStore
	shareSecret   string
	publicBaseURL string
	log           *zap.Logger
}

// NewProposalsHandler creates a new proposals handler.
func NewProposalsHandler(proposals ProposalStore, shareSecret, publicBaseURL string, log *zap.Logger) *ProposalsHandler {
	return &ProposalsHandler{
		proposals:     proposals,
		shareSecret:   shareSecret,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		log:           log,
	}
}

// ProposalRequest is the create/update payload.
type ProposalRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Watermark   *bool       `json:"watermark,omitempty"`
	LocationIDs []uuid.UUID `json:"location_ids"`
}

// ListByProject returns all proposals of a project.
func (h *ProposalsHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	proposals, err := h.proposals.ListByProject(r.Context(), projectID)
	if err != nil {
		h.log.Error("failed to list proposals", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to list proposals")
		return
	}
	if proposals == nil {
		proposals = []model.Proposal{}
	}
	respondJSON(w, http.StatusOK, proposals)
}

// Create creates a proposal inside a project. Watermarking defaults to on.
func (h *ProposalsHandler) Create(w http.ResponseWriter, r *http.Request) {
	projectID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	var req ProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	watermark := true
	if req.Watermark != nil {
		watermark = *req.Watermark
	}

	proposal := &model.Proposal{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Watermark:   watermark,
		LocationIDs: req.LocationIDs,
	}
	if err := h.proposals.Create(r.Context(), proposal); err != nil {
		h.log.Error("failed to create proposal", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to create proposal")
		return
	}
	respondJSON(w, http.StatusCreated, proposal)
}

// Get returns a single proposal by ID.
func (h *ProposalsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	proposal, err := h.proposals.Get(r.Context(), id)
	if err != nil {
		respondStoreError(w, err, "proposal not found")
		return
	}
	respondJSON(w, http.StatusOK, proposal)
}

// Update updates a proposal and replaces its location membership.
func (h *ProposalsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	var req ProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	proposal, err := h.proposals.Get(r.Context(), id)
	if err != nil {
		respondStoreError(w, err, "proposal not found")
		return
	}
	proposal.Title = req.Title
	proposal.Description = req.Description
	if req.Watermark != nil {
		proposal.Watermark = *req.Watermark
	}
	proposal.LocationIDs = req.LocationIDs

	if err := h.proposals.Update(r.Context(), proposal); err != nil {
		respondStoreError(w, err, "proposal not found")
		return
	}
	respondJSON(w, http.StatusOK, proposal)
}

// Delete removes a proposal.
func (h *ProposalsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.proposals.Delete(r.Context(), id); err != nil {
		respondStoreError(w, err, "proposal not found")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// ShareLinkResponse carries the public URL for a published proposal.
type ShareLinkResponse struct {
	Token    string `json:"token"`
	ShareURL string `json:"share_url"`
}

// Publish marks a proposal as published and returns a share link. Repeated
// publishes keep the original publication time but mint a fresh token.
func (h *ProposalsHandler) Publish(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	if h.shareSecret == "" {
		respondError(w, http.StatusServiceUnavailable, "sharing is not configured")
		return
	}

	if err := h.proposals.Publish(r.Context(), id, time.Now()); err != nil {
		respondStoreError(w, err, "proposal not found")
		return
	}

	token, err := sharetoken.Issue(h.shareSecret, id, 0)
	if err != nil {
		h.log.Error("failed to issue share token", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to issue share token")
		return
	}

	respondJSON(w, http.StatusOK, ShareLinkResponse{
		Token:    token,
		ShareURL: h.publicBaseURL + "/p/" + token,
	})
}

// Unpublish revokes public access to a proposal.
func (h *ProposalsHandler) Unpublish(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.proposals.Unpublish(r.Context(), id); err != nil {
		respondStoreError(w, err, "proposal not found")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
