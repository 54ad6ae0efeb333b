package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mholecek/location-scout/internal/geocode"
	"github.com/mholecek/location-scout/internal/model"
	"github.com/mholecek/location-scout/internal/suncalc"
)

// LocationsHandler handles location endpoints including the solar
// calculations exposed per location.
type LocationsHandler struct {
	locations LocationStore
	sunTimes  SunTimeStore
	calc      *suncalc.Calc
	geocoder  *geocode.Client
	window    time.Duration
	log       *zap.Logger
}

// NewLocationsHandler creates a new locations handler. The geocoder may be
// nil when reverse geocoding is not configured.
func NewLocationsHandler(locations LocationStore, sunTimes SunTimeStore, geocoder *geocode.Client, goldenWindow time.Duration, log *zap.Logger) *LocationsHandler {
	if goldenWindow <= 0 {
		goldenWindow = suncalc.DefaultGoldenWindow
	}
	return &LocationsHandler{
		locations: locations,
		sunTimes:  sunTimes,
		calc:      suncalc.NewCalc(),
		geocoder:  geocoder,
		window:    goldenWindow,
		log:       log,
	}
}

// LocationRequest is the create/update payload.
type LocationRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Address     string  `json:"address"`
}

func validateLocationRequest(req LocationRequest) string {
	if strings.TrimSpace(req.Name) == "" {
		return "name is required"
	}
	if req.Latitude < -90 || req.Latitude > 90 {
		return "latitude must be between -90 and 90"
	}
	if req.Longitude < -180 || req.Longitude > 180 {
		return "longitude must be between -180 and 180"
	}
	return ""
}

// ListByProject returns all locations of a project.
func (h *LocationsHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	locations, err := h.locations.ListByProject(r.Context(), projectID)
	if err != nil {
		h.log.Error("failed to list locations", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to list locations")
		return
	}
	if locations == nil {
		locations = []model.Location{}
	}
	respondJSON(w, http.StatusOK, locations)
}

// Create creates a location inside a project.
func (h *LocationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	projectID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	var req LocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if msg := validateLocationRequest(req); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	location := &model.Location{
		ProjectID:   projectID,
		Name:        req.Name,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Address:     req.Address,
	}
	if err := h.locations.Create(r.Context(), location); err != nil {
		h.log.Error("failed to create location", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to create location")
		return
	}
	respondJSON(w, http.StatusCreated, location)
}

// Get returns a single location by ID.
func (h *LocationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	location, err := h.locations.Get(r.Context(), id)
	if err != nil {
		respondStoreError(w, err, "location not found")
		return
	}
	respondJSON(w, http.StatusOK, location)
}

// Update updates a location.
func (h *LocationsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	var req LocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if msg := validateLocationRequest(req); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	location, err := h.locations.Get(r.Context(), id)
	if err != nil {
		respondStoreError(w, err, "location not found")
		return
	}
	location.Name = req.Name
	location.Description = req.Description
	location.Latitude = req.Latitude
	location.Longitude = req.Longitude
	location.Address = req.Address

	if err := h.locations.Update(r.Context(), location); err != nil {
		respondStoreError(w, err, "location not found")
		return
	}
	respondJSON(w, http.StatusOK, location)
}

// Delete removes a location with its photos and cached sun times.
func (h *LocationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.locations.Delete(r.Context(), id); err != nil {
		respondStoreError(w, err, "location not found")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// SunResponse combines the solar snapshot with golden-hour classification
// and display strings.
type SunResponse struct {
	suncalc.Snapshot
	Golden    suncalc.Classification `json:"golden"`
	Compass   string                 `json:"compass"`
	Position  string                 `json:"position"`
	DayLength string                 `json:"day_length"`
}

// Sun returns solar events and the current sun position for a location.
// The optional "at" query parameter (RFC 3339) defaults to now.
func (h *LocationsHandler) Sun(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	location, err := h.locations.Get(r.Context(), id)
	if err != nil {
		respondStoreError(w, err, "location not found")
		return
	}

	at := time.Now()
	if s := r.URL.Query().Get("at"); s != "" {
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid at parameter, expected RFC 3339")
			return
		}
		at = parsed
	}

	snapshot := h.calc.Snapshot(location.Latitude, location.Longitude, at)
	h.cacheSunTimes(r, location.ID, at, snapshot)

	respondJSON(w, http.StatusOK, SunResponse{
		Snapshot:  snapshot,
		Golden:    suncalc.ClassifyGoldenHour(location.Latitude, location.Longitude, at, h.window),
		Compass:   suncalc.CompassDirection(snapshot.AzimuthDeg),
		Position:  suncalc.FormatPosition(snapshot.AzimuthDeg, snapshot.AltitudeDeg),
		DayLength: suncalc.FormatDayLength(snapshot.DayLengthMinutes),
	})
}

// cacheSunTimes stores the per-day solar events. Cache failures are logged
// and ignored, the response does not depend on the cache.
func (h *LocationsHandler) cacheSunTimes(r *http.Request, locationID uuid.UUID, at time.Time, snapshot suncalc.Snapshot) {
	date := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
	err := h.sunTimes.Upsert(r.Context(), &model.SunTime{
		LocationID:       locationID,
		Date:             date,
		Sunrise:          snapshot.Sunrise,
		Sunset:           snapshot.Sunset,
		SolarNoon:        snapshot.SolarNoon,
		DayLengthMinutes: snapshot.DayLengthMinutes,
	})
	if err != nil {
		h.log.Warn("failed to cache sun times", zap.Error(err))
	}
}

// NextGoldenHourResponse describes the next golden-hour window start.
type NextGoldenHourResponse struct {
	Start time.Time          `json:"start"`
	Type  suncalc.GoldenType `json:"type"`
}

// NextGoldenHour returns the start of the next golden-hour window strictly
// after the optional "from" query parameter (RFC 3339, default now).
func (h *LocationsHandler) NextGoldenHour(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	location, err := h.locations.Get(r.Context(), id)
	if err != nil {
		respondStoreError(w, err, "location not found")
		return
	}

	from := time.Now()
	if s := r.URL.Query().Get("from"); s != "" {
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid from parameter, expected RFC 3339")
			return
		}
		from = parsed
	}

	start, goldenType, err := suncalc.NextGoldenHour(location.Latitude, location.Longitude, from, h.window)
	if errors.Is(err, suncalc.ErrNoGoldenHour) {
		respondError(w, http.StatusNotFound, "no golden hour in the next two days")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to compute golden hour")
		return
	}
	respondJSON(w, http.StatusOK, NextGoldenHourResponse{Start: start, Type: goldenType})
}

// Geocode reverse geocodes the location's coordinates and stores the
// resulting address on the location.
func (h *LocationsHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	if h.geocoder == nil {
		respondError(w, http.StatusServiceUnavailable, "geocoding is not configured")
		return
	}

	location, err := h.locations.Get(r.Context(), id)
	if err != nil {
		respondStoreError(w, err, "location not found")
		return
	}

	address, err := h.geocoder.Reverse(r.Context(), location.Latitude, location.Longitude)
	if err != nil {
		h.log.Warn("reverse geocoding failed", zap.Error(err))
		respondError(w, http.StatusBadGateway, "reverse geocoding failed")
		return
	}

	location.Address = address.DisplayName
	if err := h.locations.Update(r.Context(), location); err != nil {
		respondStoreError(w, err, "location not found")
		return
	}
	respondJSON(w, http.StatusOK, location)
}
