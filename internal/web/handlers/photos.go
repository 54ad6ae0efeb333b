package handlers

import (
	"bytes"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mholecek/location-scout/internal/exifmeta"
	"github.com/mholecek/location-scout/internal/imgproc"
	"github.com/mholecek/location-scout/internal/model"
	"github.com/mholecek/location-scout/internal/storage/files"
	"github.com/mholecek/location-scout/internal/suncalc"
)

// maxUploadSize limits a single multipart upload request.
const maxUploadSize = 100 << 20

// PhotosHandler handles photo upload and retrieval endpoints.
type PhotosHandler struct {
	photos    PhotoStore
	locations LocationStore
	store     *files.Store
	log       *zap.Logger
}

// NewPhotosHandler creates a new photos handler.
func NewPhotosHandler(photos PhotoStore, locations LocationStore, store *files.Store, log *zap.Logger) *PhotosHandler {
	return &PhotosHandler{
		photos:    photos,
		locations: locations,
		store:     store,
		log:       log,
	}
}

// Upload handles multipart photo uploads to a location. Each file gets its
// EXIF metadata extracted and, when position and capture time are present,
// a solar snapshot computed for the moment the photo was taken.
func (h *PhotosHandler) Upload(w http.ResponseWriter, r *http.Request) {
	locationID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	if _, err := h.locations.Get(r.Context(), locationID); err != nil {
		respondStoreError(w, err, "location not found")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		respondError(w, http.StatusBadRequest, "no files provided")
		return
	}

	var photos []model.Photo
	for _, fh := range fileHeaders {
		file, err := fh.Open()
		if err != nil {
			respondError(w, http.StatusBadRequest, "failed to open uploaded file")
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			respondError(w, http.StatusBadRequest, "failed to read uploaded file")
			return
		}

		contentType := fh.Header.Get("Content-Type")
		if contentType == "" || contentType == "application/octet-stream" {
			contentType = http.DetectContentType(data)
		}
		photo := buildPhoto(locationID, fh.Filename, contentType, data)

		rel, _, err := h.store.Save(uuid.New(), fh.Filename, bytes.NewReader(data))
		if err != nil {
			h.log.Error("failed to store upload",
				zap.String("filename", filepath.Base(fh.Filename)),
				zap.Error(err))
			respondError(w, http.StatusInternalServerError, "failed to store upload")
			return
		}
		photo.StoragePath = rel

		if err := h.photos.Create(r.Context(), photo); err != nil {
			h.log.Error("failed to save photo", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "failed to save photo")
			return
		}
		photos = append(photos, *photo)
	}
	respondJSON(w, http.StatusCreated, photos)
}

// List returns all photos of a location.
func (h *PhotosHandler) List(w http.ResponseWriter, r *http.Request) {
	locationID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	photos, err := h.photos.ListByLocation(r.Context(), locationID)
	if err != nil {
		h.log.Error("failed to list photos", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to list photos")
		return
	}
	if photos == nil {
		photos = []model.Photo{}
	}
	respondJSON(w, http.StatusOK, photos)
}

// Get returns photo metadata by ID.
func (h *PhotosHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	photo, err := h.photos.Get(r.Context(), id)
	if err != nil {
		respondStoreError(w, err, "photo not found")
		return
	}
	respondJSON(w, http.StatusOK, photo)
}

// File streams the original photo bytes.
func (h *PhotosHandler) File(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	photo, err := h.photos.Get(r.Context(), id)
	if err != nil {
		respondStoreError(w, err, "photo not found")
		return
	}

	f, err := h.store.Open(photo.StoragePath)
	if err != nil {
		h.log.Error("failed to open photo file", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to open photo file")
		return
	}
	defer f.Close()

	contentType := photo.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	io.Copy(w, f)
}

// Delete removes a photo row and its stored file.
func (h *PhotosHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	photo, err := h.photos.Get(r.Context(), id)
	if err != nil {
		respondStoreError(w, err, "photo not found")
		return
	}

	if err := h.photos.Delete(r.Context(), id); err != nil {
		respondStoreError(w, err, "photo not found")
		return
	}
	if err := h.store.Remove(photo.StoragePath); err != nil {
		h.log.Warn("failed to remove photo file", zap.Error(err))
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// buildPhoto assembles the photo row for uploaded bytes: EXIF extraction,
// pixel dimensions and the solar snapshot for geotagged captures.
func buildPhoto(locationID uuid.UUID, filename, contentType string, data []byte) *model.Photo {
	photo := &model.Photo{
		LocationID:  locationID,
		Filename:    filepath.Base(filename),
		ContentType: contentType,
		Size:        int64(len(data)),
	}

	exifData, err := exifmeta.Extract(bytes.NewReader(data))
	if err == nil {
		photo.Exif = exifData
	} else {
		photo.Exif = &model.ExifData{}
	}

	if width, height, err := imgproc.Dimensions(data); err == nil {
		if photo.Exif.Image == nil {
			photo.Exif.Image = &model.ImageData{}
		}
		if photo.Exif.Image.Width == 0 {
			photo.Exif.Image.Width = width
		}
		if photo.Exif.Image.Height == 0 {
			photo.Exif.Image.Height = height
		}
	}

	if t := captureTime(photo.Exif); t != nil {
		photo.TakenAt = t
	}
	if photo.Exif.GPS != nil && photo.TakenAt != nil {
		snapshot := suncalc.ComputeSnapshot(photo.Exif.GPS.Latitude, photo.Exif.GPS.Longitude, *photo.TakenAt)
		photo.Exif.Sun = &snapshot
	}
	return photo
}

func captureTime(e *model.ExifData) *time.Time {
	if e == nil {
		return nil
	}
	if e.DateTimeOriginal != nil {
		return e.DateTimeOriginal
	}
	return e.DateTime
}
