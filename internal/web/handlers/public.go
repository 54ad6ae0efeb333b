package handlers

import (
	"bytes"
	"image/jpeg"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mholecek/location-scout/internal/imgproc"
	"github.com/mholecek/location-scout/internal/privacy"
	"github.com/mholecek/location-scout/internal/sharetoken"
	"github.com/mholecek/location-scout/internal/storage/files"
	"github.com/mholecek/location-scout/internal/suncalc"
)

// publicImageMaxWidth bounds images served on public proposal pages.
const publicImageMaxWidth = 1600

// PublicHandler serves published proposals to clients holding a share
// token. Coordinates are blurred and images are re-encoded without EXIF.
type PublicHandler struct {
	proposals   ProposalStore
	locations   LocationStore
	photos      PhotoStore
	store       *files.Store
	shareSecret string
	radiusM     float64
	log         *zap.Logger
}

// NewPublicHandler creates a new public proposal handler.
func NewPublicHandler(proposals ProposalStore, locations LocationStore, photos PhotoStore, store *files.Store, shareSecret string, obfuscationRadiusM float64, log *zap.Logger) *PublicHandler {
	return &PublicHandler{
		proposals:   proposals,
		locations:   locations,
		photos:      photos,
		store:       store,
		shareSecret: shareSecret,
		radiusM:     obfuscationRadiusM,
		log:         log,
	}
}

// PublicPhoto is one photo reference on a public proposal page.
type PublicPhoto struct {
	ID  uuid.UUID `json:"id"`
	URL string    `json:"url"`
}

// PublicLocation is a proposal location with blurred coordinates.
type PublicLocation struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Latitude    float64       `json:"latitude"`
	Longitude   float64       `json:"longitude"`
	Sunrise     string        `json:"sunrise"`
	Sunset      string        `json:"sunset"`
	Photos      []PublicPhoto `json:"photos"`
}

// PublicProposal is the response for a public proposal page.
type PublicProposal struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	PublishedAt time.Time        `json:"published_at"`
	Locations   []PublicLocation `json:"locations"`
}

// resolveProposal validates the share token and loads the proposal it
// grants access to. Unpublished proposals are treated as missing.
func (h *PublicHandler) resolveProposal(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	token := chi.URLParam(r, "token")
	proposalID, err := sharetoken.Parse(h.shareSecret, token)
	if err != nil {
		respondError(w, http.StatusNotFound, "proposal not found")
		return uuid.Nil, false
	}
	return proposalID, true
}

// Get renders a published proposal for a share-token holder.
func (h *PublicHandler) Get(w http.ResponseWriter, r *http.Request) {
	proposalID, ok := h.resolveProposal(w, r)
	if !ok {
		return
	}

	proposal, err := h.proposals.Get(r.Context(), proposalID)
	if err != nil || proposal.PublishedAt == nil {
		respondError(w, http.StatusNotFound, "proposal not found")
		return
	}

	locations, err := h.locations.ListByIDs(r.Context(), proposal.LocationIDs)
	if err != nil {
		h.log.Error("failed to load proposal locations", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	now := time.Now()
	response := PublicProposal{
		Title:       proposal.Title,
		Description: proposal.Description,
		PublishedAt: *proposal.PublishedAt,
		Locations:   []PublicLocation{},
	}
	for _, location := range locations {
		blurredLat, blurredLng := privacy.Obfuscate(location.Latitude, location.Longitude, h.radiusM)
		snapshot := suncalc.ComputeSnapshot(blurredLat, blurredLng, now)

		publicLocation := PublicLocation{
			ID:          location.ID,
			Name:        location.Name,
			Description: location.Description,
			Latitude:    blurredLat,
			Longitude:   blurredLng,
			Sunrise:     suncalc.FormatTime(snapshot.Sunrise),
			Sunset:      suncalc.FormatTime(snapshot.Sunset),
			Photos:      []PublicPhoto{},
		}

		photos, err := h.photos.ListByLocation(r.Context(), location.ID)
		if err != nil {
			h.log.Warn("failed to list location photos", zap.Error(err))
		}
		for _, photo := range photos {
			publicLocation.Photos = append(publicLocation.Photos, PublicPhoto{
				ID:  photo.ID,
				URL: "/p/" + chi.URLParam(r, "token") + "/photos/" + photo.ID.String(),
			})
		}
		response.Locations = append(response.Locations, publicLocation)
	}
	respondJSON(w, http.StatusOK, response)
}

// Photo serves a proposal photo. The image is orientation corrected,
// downscaled and re-encoded, which also strips EXIF, and watermarked when
// the proposal asks for it.
func (h *PublicHandler) Photo(w http.ResponseWriter, r *http.Request) {
	proposalID, ok := h.resolveProposal(w, r)
	if !ok {
		return
	}

	photoID, ok := urlUUID(w, r, "photoId")
	if !ok {
		return
	}

	proposal, err := h.proposals.Get(r.Context(), proposalID)
	if err != nil || proposal.PublishedAt == nil {
		respondError(w, http.StatusNotFound, "proposal not found")
		return
	}

	photo, err := h.photos.Get(r.Context(), photoID)
	if err != nil {
		respondStoreError(w, err, "photo not found")
		return
	}
	if !containsUUID(proposal.LocationIDs, photo.LocationID) {
		respondError(w, http.StatusNotFound, "photo not found")
		return
	}

	f, err := h.store.Open(photo.StoragePath)
	if err != nil {
		h.log.Error("failed to open photo file", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	orientation := 1
	if photo.Exif != nil && photo.Exif.Image != nil {
		orientation = photo.Exif.Image.Orientation
	}
	prepared, err := imgproc.Prepare(data, orientation, imgproc.PrepareOptions{
		CorrectOrientation: true,
		MaxWidth:           publicImageMaxWidth,
	})
	if err != nil {
		h.log.Error("failed to prepare public photo", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	out := prepared.Data
	if proposal.Watermark {
		img, err := jpeg.Decode(bytes.NewReader(prepared.Data))
		if err == nil {
			var buf bytes.Buffer
			if err := jpeg.Encode(&buf, imgproc.Watermark(img, proposal.Title), nil); err == nil {
				out = buf.Bytes()
			}
		}
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

func containsUUID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
