package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/mholecek/location-scout/internal/model"
	"github.com/mholecek/location-scout/internal/render"
	"github.com/mholecek/location-scout/internal/report"
	"github.com/mholecek/location-scout/internal/sharetoken"
	"github.com/mholecek/location-scout/internal/storage/files"
)

// ExportHandler produces PDF reports and zip bundles for projects and
// proposals.
type ExportHandler struct {
	projects      ProjectStore
	locations     LocationStore
	photos        PhotoStore
	proposals     ProposalStore
	store         *files.Store
	presetOptions func(preset string) report.RenderOptions
	renderer      *render.Client
	shareSecret   string
	publicBaseURL string
	log           *zap.Logger
}

// NewExportHandler creates a new export handler. The renderer may be nil
// when no headless renderer is configured.
func NewExportHandler(stores Stores, store *files.Store, presetOptions func(string) report.RenderOptions, renderer *render.Client, shareSecret, publicBaseURL string, log *zap.Logger) *ExportHandler {
	return &ExportHandler{
		projects:      stores.Projects,
		locations:     stores.Locations,
		photos:        stores.Photos,
		proposals:     stores.Proposals,
		store:         store,
		presetOptions: presetOptions,
		renderer:      renderer,
		shareSecret:   shareSecret,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		log:           log,
	}
}

// storeTransport serves store:// image URLs from the local file store so
// the report generator's HTTP fetching works unchanged for local photos.
type storeTransport struct {
	store *files.Store
}

func (t *storeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	f, err := t.store.Open(strings.TrimPrefix(req.URL.Path, "/"))
	if err != nil {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Status:     "404 Not Found",
			Header:     make(http.Header),
			Body:       http.NoBody,
			Request:    req,
		}, nil
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Status:     "200 OK",
		Header:     make(http.Header),
		Body:       f,
		Request:    req,
	}, nil
}

func (h *ExportHandler) generator(preset string) *report.Generator {
	client := &http.Client{Transport: &storeTransport{store: h.store}}
	return report.NewGenerator(h.presetOptions(preset), client, h.log)
}

// parseFilter reads the sections query parameter, a comma separated list
// of section IDs. Absence means all sections.
func parseFilter(r *http.Request) report.DataFilter {
	raw := r.URL.Query().Get("sections")
	if raw == "" {
		return report.AllSections()
	}
	var filter report.DataFilter
	for _, s := range strings.Split(raw, ",") {
		switch strings.TrimSpace(s) {
		case "location":
			filter.Location = true
		case "dateTime":
			filter.DateTime = true
		case "camera":
			filter.Camera = true
		case "exposure":
			filter.Exposure = true
		case "settings":
			filter.Settings = true
		case "sun":
			filter.Sun = true
		case "image":
			filter.Image = true
		}
	}
	return filter
}

// entriesForLocations flattens locations and their photos into report
// entries. Locations without photos still get an entry so the report shows
// every scouted spot.
func (h *ExportHandler) entriesForLocations(r *http.Request, locations []model.Location) []report.PhotoEntry {
	var entries []report.PhotoEntry
	for _, location := range locations {
		photos, err := h.photos.ListByLocation(r.Context(), location.ID)
		if err != nil {
			h.log.Warn("failed to list photos for export",
				zap.String("location", location.Name), zap.Error(err))
		}

		if len(photos) == 0 {
			entries = append(entries, report.PhotoEntry{
				Title:      location.Name,
				IsGeocoded: location.Address != "",
				Exif:       locationExif(location, nil),
			})
			continue
		}
		for i, photo := range photos {
			title := location.Name
			if len(photos) > 1 {
				title = fmt.Sprintf("%s (%d)", location.Name, i+1)
			}
			entries = append(entries, report.PhotoEntry{
				Title:      title,
				ImageURL:   "store:///" + photo.StoragePath,
				IsGeocoded: location.Address != "",
				Exif:       locationExif(location, photo.Exif),
			})
		}
	}
	return entries
}

// locationExif fills missing GPS coordinates from the location record so
// the report's map links work for photos without geotags.
func locationExif(location model.Location, exif *model.ExifData) *model.ExifData {
	if exif == nil {
		exif = &model.ExifData{}
	}
	if exif.GPS == nil {
		exif.GPS = &model.GPSData{
			Latitude:  location.Latitude,
			Longitude: location.Longitude,
		}
	}
	return exif
}

func (h *ExportHandler) respondExport(w http.ResponseWriter, r *http.Request, title string, entries []report.PhotoEntry, description string) {
	preset := r.URL.Query().Get("preset")
	filter := parseFilter(r)
	generator := h.generator(preset)

	filename := report.SanitizeFilename(title)
	if filename == "" {
		filename = "report"
	}

	if r.URL.Query().Get("format") == "zip" {
		_, archive, rep, err := generator.RenderBundle(r.Context(), title, description, entries, filter)
		if err != nil {
			h.log.Error("failed to render bundle", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "failed to render bundle")
			return
		}
		h.log.Info("report bundle exported",
			zap.String("title", title),
			zap.Int("pages", rep.PageCount),
			zap.Int("archived", rep.ArchiveEntries))
		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`.zip"`)
		w.WriteHeader(http.StatusOK)
		w.Write(archive)
		return
	}

	pdfData, rep, err := generator.Render(r.Context(), title, description, entries, filter)
	if err != nil {
		h.log.Error("failed to render report", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to render report")
		return
	}
	h.log.Info("report exported",
		zap.String("title", title),
		zap.Int("pages", rep.PageCount),
		zap.Int("skipped", len(rep.SkippedImages)))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(pdfData)
}

// ProjectReport renders a report covering every location of a project.
func (h *ExportHandler) ProjectReport(w http.ResponseWriter, r *http.Request) {
	projectID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	project, err := h.projects.Get(r.Context(), projectID)
	if err != nil {
		respondStoreError(w, err, "project not found")
		return
	}
	locations, err := h.locations.ListByProject(r.Context(), projectID)
	if err != nil {
		h.log.Error("failed to list locations for export", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to list locations")
		return
	}

	entries := h.entriesForLocations(r, locations)
	h.respondExport(w, r, project.Name, entries, project.Description)
}

// ProposalReport renders a report covering the locations of a proposal in
// their curated order.
func (h *ExportHandler) ProposalReport(w http.ResponseWriter, r *http.Request) {
	proposalID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	proposal, err := h.proposals.Get(r.Context(), proposalID)
	if err != nil {
		respondStoreError(w, err, "proposal not found")
		return
	}
	locations, err := h.locations.ListByIDs(r.Context(), proposal.LocationIDs)
	if err != nil {
		h.log.Error("failed to list locations for export", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to list locations")
		return
	}

	entries := h.entriesForLocations(r, locations)
	h.respondExport(w, r, proposal.Title, entries, proposal.Description)
}

// ProposalPage renders the public proposal page to PDF through the
// headless renderer.
func (h *ExportHandler) ProposalPage(w http.ResponseWriter, r *http.Request) {
	proposalID, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	if h.renderer == nil || !h.renderer.Available() {
		respondError(w, http.StatusServiceUnavailable, "page rendering is not configured")
		return
	}
	if h.shareSecret == "" || h.publicBaseURL == "" {
		respondError(w, http.StatusServiceUnavailable, "sharing is not configured")
		return
	}

	proposal, err := h.proposals.Get(r.Context(), proposalID)
	if err != nil {
		respondStoreError(w, err, "proposal not found")
		return
	}
	if proposal.PublishedAt == nil {
		respondError(w, http.StatusConflict, "proposal is not published")
		return
	}

	token, err := sharetoken.Issue(h.shareSecret, proposalID, 0)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to issue share token")
		return
	}

	pdfData, err := h.renderer.RenderPage(r.Context(), h.publicBaseURL+"/p/"+token)
	if err != nil {
		h.log.Error("failed to render proposal page", zap.Error(err))
		respondError(w, http.StatusBadGateway, "failed to render proposal page")
		return
	}

	filename := report.SanitizeFilename(proposal.Title)
	if filename == "" {
		filename = "proposal"
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(pdfData)
}
