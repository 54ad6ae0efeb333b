package report

import (
	"archive/zip"
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// imageServer serves a solid-color square JPEG at /photo/{n}.jpg and 404s
// everything else.
func imageServer(t *testing.T, size int) *httptest.Server {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 180, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	data := buf.Bytes()

	mux := http.NewServeMux()
	mux.HandleFunc("/photo/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(data)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testGenerator(opts RenderOptions) *Generator {
	opts.FetchTimeout = 5 * time.Second
	return NewGenerator(opts, nil, nil)
}

func TestRender_ProducesPDF(t *testing.T) {
	srv := imageServer(t, 400)
	entries := []PhotoEntry{
		{Title: "Old Mill", ImageURL: srv.URL + "/photo/1.jpg", Exif: fullExif()},
		{Title: "River Bank", ImageURL: srv.URL + "/photo/2.jpg", Exif: fullExif()},
	}

	g := testGenerator(DefaultRenderOptions())
	data, rep, err := g.Render(context.Background(), "Scouting Report", "Client draft", entries, AllSections())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output does not start with PDF magic")
	}
	if rep.PageCount < 1 {
		t.Errorf("expected at least one page, got %d", rep.PageCount)
	}
	if len(rep.SkippedImages) != 0 {
		t.Errorf("no images should be skipped, got %v", rep.SkippedImages)
	}
}

func TestRender_PageCountLowerBound(t *testing.T) {
	// Three entries whose estimated height (~250mm) exceeds half the content
	// height of a ~277mm page must land on three separate pages.
	srv := imageServer(t, 800)
	opts := DefaultRenderOptions()
	opts.MarginMM = 10
	opts.ImageColWidthMM = 180
	opts.ImageColMaxHeightMM = 231 // title 8 + image 231 + caption 5 + gap 6 = 250

	entries := []PhotoEntry{
		{Title: "one", ImageURL: srv.URL + "/photo/1.jpg"},
		{Title: "two", ImageURL: srv.URL + "/photo/2.jpg"},
		{Title: "three", ImageURL: srv.URL + "/photo/3.jpg"},
	}

	g := testGenerator(opts)
	_, rep, err := g.Render(context.Background(), "", "", entries, DataFilter{})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if rep.PageCount != 3 {
		t.Errorf("expected exactly 3 pages (one entry per page), got %d", rep.PageCount)
	}
}

func TestRender_RowOverflowBreaksMidEntry(t *testing.T) {
	// A page short enough that one entry's data rows cannot fit forces
	// row-level page breaks inside the entry.
	srv := imageServer(t, 200)
	opts := DefaultRenderOptions()
	opts.PageHeightMM = 80
	opts.ImageColMaxHeightMM = 40

	entries := []PhotoEntry{{Title: "tall", ImageURL: srv.URL + "/photo/1.jpg", Exif: fullExif()}}

	g := testGenerator(opts)
	_, rep, err := g.Render(context.Background(), "", "", entries, AllSections())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if rep.PageCount < 2 {
		t.Errorf("expected mid-entry page break, got %d page(s)", rep.PageCount)
	}
}

func TestRender_MidEntryBreakDoesNotCarryImageBottom(t *testing.T) {
	// When the data column breaks to a new page inside an entry, the image
	// column bottom belongs to the previous page and must not push the
	// cursor down on the new one. With these options the first entry's sun
	// rows spill onto page 2 and end high enough that the second entry
	// still fits there.
	srv := imageServer(t, 200)
	opts := DefaultRenderOptions()
	opts.PageHeightMM = 80
	opts.MarginMM = 10
	opts.ImageColMaxHeightMM = 20

	exif := fullExif()
	entries := []PhotoEntry{
		{Title: "tall data column", ImageURL: srv.URL + "/photo/1.jpg", Exif: exif},
		{Title: "short follower"},
	}

	g := testGenerator(opts)
	_, rep, err := g.Render(context.Background(), "", "", entries, DataFilter{Location: true, Sun: true})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if rep.PageCount != 2 {
		t.Errorf("expected the second entry to fit on page 2, got %d pages", rep.PageCount)
	}
}

func TestRender_UnreachableImageSkipped(t *testing.T) {
	srv := imageServer(t, 300)
	entries := []PhotoEntry{
		{Title: "good one", ImageURL: srv.URL + "/photo/1.jpg", Exif: fullExif()},
		{Title: "broken", ImageURL: srv.URL + "/missing.jpg", Exif: fullExif()},
		{Title: "good two", ImageURL: srv.URL + "/photo/2.jpg", Exif: fullExif()},
	}

	g := testGenerator(DefaultRenderOptions())
	data, rep, err := g.Render(context.Background(), "Report", "", entries, AllSections())
	if err != nil {
		t.Fatalf("Render must not fail on a single unreachable image: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty PDF")
	}
	if len(rep.SkippedImages) != 1 || rep.SkippedImages[0] != 1 {
		t.Errorf("expected entry 1 skipped, got %v", rep.SkippedImages)
	}
	if len(rep.Warnings) == 0 {
		t.Error("expected a warning for the skipped image")
	}
}

func TestRenderBundle_ArchiveContents(t *testing.T) {
	srv := imageServer(t, 300)
	entries := []PhotoEntry{
		{Title: "Old Mill", ImageURL: srv.URL + "/photo/1.jpg"},
		{Title: "Broken Entry", ImageURL: srv.URL + "/nope.jpg"},
		{Title: "River Bank", ImageURL: srv.URL + "/photo/2.jpg"},
	}

	g := testGenerator(DefaultRenderOptions())
	pdfData, archive, rep, err := g.RenderBundle(context.Background(), "Vltava Locations!", "", entries, DataFilter{})
	if err != nil {
		t.Fatalf("RenderBundle failed: %v", err)
	}
	if len(pdfData) == 0 {
		t.Fatal("expected PDF bytes")
	}
	if rep.ArchiveEntries != 2 {
		t.Errorf("expected 2 archived images (N - failures), got %d", rep.ArchiveEntries)
	}

	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		t.Fatalf("archive is not a valid zip: %v", err)
	}

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	want := []string{"Vltava_Locations.pdf", "01_Old_Mill.jpg", "03_River_Bank.jpg"}
	if len(names) != len(want) {
		t.Fatalf("expected %d archive entries, got %v", len(want), names)
	}
	for _, w := range want {
		found := false
		for _, n := range names {
			if n == w {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected archive entry %q, got %v", w, names)
		}
	}
	for _, n := range names {
		if strings.Contains(n, " ") {
			t.Errorf("archive entry %q contains unsanitized characters", n)
		}
	}
}

func TestRender_EmptyEntryList(t *testing.T) {
	g := testGenerator(DefaultRenderOptions())
	data, rep, err := g.Render(context.Background(), "Empty", "", nil, AllSections())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("expected a valid single-page PDF")
	}
	if rep.PageCount != 1 {
		t.Errorf("expected 1 page, got %d", rep.PageCount)
	}
}
