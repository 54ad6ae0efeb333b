package report

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// Generator renders photo entries into PDF reports and archives. One
// generator is safe for concurrent use; each render call owns its own
// document and cursor state.
type Generator struct {
	opts   RenderOptions
	client *http.Client
	log    *zap.Logger
}

// NewGenerator creates a report generator. A nil client falls back to
// http.DefaultClient, a nil logger to a no-op logger.
func NewGenerator(opts RenderOptions, client *http.Client, log *zap.Logger) *Generator {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{opts: opts, client: client, log: log}
}

// Render lays out the entries into a paginated PDF and returns the document
// bytes with an export report. Individual image failures skip the image and
// continue; the export itself fails only if the document cannot be produced.
func (g *Generator) Render(ctx context.Context, title, description string, entries []PhotoEntry, filter DataFilter) ([]byte, *Report, error) {
	fetched := g.fetchImages(ctx, entries)
	return g.render(title, description, entries, filter, fetched)
}

// RenderBundle renders the PDF and packages it together with the original
// image bytes into a zip archive.
func (g *Generator) RenderBundle(ctx context.Context, title, description string, entries []PhotoEntry, filter DataFilter) (pdfData, archive []byte, rep *Report, err error) {
	fetched := g.fetchImages(ctx, entries)

	pdfData, rep, err = g.render(title, description, entries, filter, fetched)
	if err != nil {
		return nil, nil, nil, err
	}

	archive, archiveCount, err := g.bundle(title, pdfData, entries, fetched)
	if err != nil {
		return nil, nil, nil, err
	}
	rep.ArchiveEntries = archiveCount
	return pdfData, archive, rep, nil
}

// render is the single linear layout pass. For each entry it estimates the
// required height from fixed constants, breaks the page when the estimate
// does not fit, then draws; there is no backtracking if the estimate is off.
func (g *Generator) render(title, description string, entries []PhotoEntry, filter DataFilter, fetched []fetchedImage) ([]byte, *Report, error) {
	l := newLayouter(g.opts)
	rep := &Report{Title: title, EntryCount: len(entries)}

	if title != "" {
		l.titleBlock(title, description)
	}

	for i, entry := range entries {
		l.ensure(estimateEntryHeight(entry, filter, g.opts))
		entryTop := drawEntryStart(l, entry, i)
		entryPage := l.cur.Page

		img := fetched[i]
		imageBottom := entryTop
		if img.err == nil && img.prepared != nil {
			h := l.image(img.prepared)
			l.caption(entry.Title, entryTop+h)
			imageBottom = entryTop + h + imageCaptionHeightMM
		} else if entry.ImageURL != "" {
			// Failed image contributes zero height; data column starts at
			// the same position.
			rep.SkippedImages = append(rep.SkippedImages, i)
			rep.Warnings = append(rep.Warnings,
				fmt.Sprintf("entry %d (%s): image skipped", i+1, entry.Title))
		}

		drawEntrySections(l, entry, filter)

		// Advance below the taller column. imageBottom is a position on the
		// page the entry started on; after a mid-entry row break the cursor
		// is on a later page and the image column no longer constrains it.
		if l.cur.Page == entryPage && imageBottom > l.cur.Y {
			l.cur.Y = imageBottom
		}
		l.cur.Y += entryGapMM
	}

	data, err := l.output()
	if err != nil {
		return nil, nil, err
	}
	rep.PageCount = l.cur.Page
	g.log.Info("report rendered",
		zap.String("title", title),
		zap.Int("entries", len(entries)),
		zap.Int("pages", rep.PageCount),
		zap.Int("skipped_images", len(rep.SkippedImages)))
	return data, rep, nil
}

// drawEntryStart draws the entry heading and returns the Y where both
// columns begin.
func drawEntryStart(l *layouter, entry PhotoEntry, index int) float64 {
	l.entryTitle(entry.Title, index)
	return l.cur.Y
}

// drawEntrySections renders every visible metadata section into the data
// column, one bold header followed by label/value rows each.
func drawEntrySections(l *layouter, entry PhotoEntry, filter DataFilter) {
	for _, def := range visibleSections(entry, filter) {
		l.sectionHeader(sectionTitle(def, entry))
		for _, row := range def.rows(entry.Exif) {
			l.row(row.label, row.value)
		}
		if def.id == "location" && entry.Exif.GPS != nil {
			l.linkRow("Open in maps", mapsURL(entry.Exif.GPS))
		}
		l.cur.Y += 2 // gap between sections
	}
}
