package report

import (
	"archive/zip"
	"bytes"
	"fmt"

	"go.uber.org/zap"
)

// bundle packages the rendered PDF and the original image bytes into a zip
// archive. Entries whose image could not be fetched are omitted with a
// warning; partial archives are preferred over failing the export.
func (g *Generator) bundle(title string, pdfData []byte, entries []PhotoEntry, fetched []fetchedImage) ([]byte, int, error) {
	name := SanitizeFilename(title)
	if name == "" {
		name = "report"
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create(name + ".pdf")
	if err != nil {
		return nil, 0, fmt.Errorf("could not create archive entry: %w", err)
	}
	if _, err := w.Write(pdfData); err != nil {
		return nil, 0, fmt.Errorf("could not write PDF to archive: %w", err)
	}

	count := 0
	for i, entry := range entries {
		if entry.ImageURL == "" {
			continue
		}
		if fetched[i].original == nil {
			g.log.Warn("omitting image from archive",
				zap.Int("entry", i),
				zap.String("title", entry.Title))
			continue
		}
		entryName := SanitizeFilename(entry.Title)
		if entryName == "" {
			entryName = "photo"
		}
		w, err := zw.Create(fmt.Sprintf("%02d_%s.jpg", i+1, entryName))
		if err != nil {
			return nil, 0, fmt.Errorf("could not create archive entry: %w", err)
		}
		if _, err := w.Write(fetched[i].original); err != nil {
			return nil, 0, fmt.Errorf("could not write image to archive: %w", err)
		}
		count++
	}

	if err := zw.Close(); err != nil {
		return nil, 0, fmt.Errorf("could not finalize archive: %w", err)
	}
	return buf.Bytes(), count, nil
}
