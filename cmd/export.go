package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mholecek/location-scout/internal/exifmeta"
	"github.com/mholecek/location-scout/internal/report"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render a PDF report from a directory of photos",
	Long: `Render a paginated scouting report from a local directory of JPEG
photos without a running server. Metadata sections are filled from each
photo's EXIF tags.`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("dir", "", "Directory containing JPEG photos (required)")
	exportCmd.Flags().String("title", "Scouting Report", "Report title")
	exportCmd.Flags().String("out", "report.pdf", "Output file, .zip produces a bundle with originals")
}

// dirTransport serves image URLs from a local directory so the report
// generator's HTTP fetching works for CLI exports.
type dirTransport struct {
	dir string
}

func (t *dirTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	f, err := os.Open(filepath.Join(t.dir, filepath.Base(req.URL.Path)))
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

func collectEntries(dir string) ([]report.PhotoEntry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var names []string
	for _, e := range dirEntries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".jpg", ".jpeg":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var entries []report.PhotoEntry
	for _, name := range names {
		entry := report.PhotoEntry{
			Title:    strings.TrimSuffix(name, filepath.Ext(name)),
			ImageURL: "file:///" + name,
		}
		if f, err := os.Open(filepath.Join(dir, name)); err == nil {
			entry.Exif, _ = exifmeta.Extract(f)
			f.Close()
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func runExport(cmd *cobra.Command, args []string) error {
	dir := mustGetString(cmd, "dir")
	if dir == "" {
		return errors.New("--dir is required")
	}
	title := mustGetString(cmd, "title")
	out := mustGetString(cmd, "out")

	entries, err := collectEntries(dir)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return errors.New("no JPEG photos found in directory")
	}

	client := &http.Client{Transport: &dirTransport{dir: dir}}
	generator := report.NewGenerator(report.DefaultRenderOptions(), client, zap.NewNop())

	ctx := context.Background()
	if strings.HasSuffix(out, ".zip") {
		_, archive, rep, err := generator.RenderBundle(ctx, title, "", entries, report.AllSections())
		if err != nil {
			return fmt.Errorf("failed to render bundle: %w", err)
		}
		if err := os.WriteFile(out, archive, 0o644); err != nil {
			return fmt.Errorf("failed to write bundle: %w", err)
		}
		fmt.Printf("Wrote %s: %d pages, %d entries, %d archived images\n",
			out, rep.PageCount, rep.EntryCount, rep.ArchiveEntries)
		return nil
	}

	pdfData, rep, err := generator.Render(ctx, title, "", entries, report.AllSections())
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	if err := os.WriteFile(out, pdfData, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Printf("Wrote %s: %d pages, %d entries", out, rep.PageCount, rep.EntryCount)
	if len(rep.SkippedImages) > 0 {
		fmt.Printf(", %d images skipped", len(rep.SkippedImages))
	}
	fmt.Println()
	return nil
}
