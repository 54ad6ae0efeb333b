package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/mholecek/location-scout/internal/imgproc"
)

// LayoutCursor is the only mutable layout state: the current page number and
// the vertical position on it, in mm from the top edge.
type LayoutCursor struct {
	Page int
	Y    float64
}

// layouter owns the PDF document and threads the cursor through all drawing
// helpers. Automatic page breaking is disabled; every break is explicit.
type layouter struct {
	pdf    *fpdf.Fpdf
	opts   RenderOptions
	cur    LayoutCursor
	images int // counter for unique embedded image names
}

func newLayouter(opts RenderOptions) *layouter {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: opts.PageWidthMM, Ht: opts.PageHeightMM},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(opts.MarginMM, opts.MarginMM, opts.MarginMM)
	pdf.AddPage()

	return &layouter{
		pdf:  pdf,
		opts: opts,
		cur:  LayoutCursor{Page: 1, Y: opts.MarginMM},
	}
}

// bottomLimit is the lowest Y a drawn element may reach.
func (l *layouter) bottomLimit() float64 {
	return l.opts.PageHeightMM - l.opts.MarginMM
}

// fits reports whether a block of the given height fits on the current page,
// within the overflow tolerance.
func (l *layouter) fits(heightMM float64) bool {
	return l.cur.Y+heightMM <= l.bottomLimit()+overflowToleranceMM
}

// breakPage starts a new page and resets the cursor to the top margin.
func (l *layouter) breakPage() {
	l.pdf.AddPage()
	l.cur.Page++
	l.cur.Y = l.opts.MarginMM
}

// ensure breaks the page if a block of the given height does not fit. A
// block taller than a whole page stays where it is; breaking would only
// produce a blank page before it.
func (l *layouter) ensure(heightMM float64) {
	if !l.fits(heightMM) && l.cur.Y > l.opts.MarginMM {
		l.breakPage()
	}
}

// titleBlock draws the document title and optional description at the top of
// the first page.
func (l *layouter) titleBlock(title, description string) {
	l.pdf.SetFont("Helvetica", "B", 16)
	l.pdf.Text(l.opts.MarginMM, l.cur.Y+6, title)
	if description != "" {
		l.pdf.SetFont("Helvetica", "", 10)
		l.pdf.SetTextColor(90, 90, 90)
		l.pdf.Text(l.opts.MarginMM, l.cur.Y+13, description)
		l.pdf.SetTextColor(0, 0, 0)
	}
	l.cur.Y += titleBlockHeightMM + 4
}

// entryTitle draws the entry heading across the full content width.
func (l *layouter) entryTitle(title string, index int) {
	l.pdf.SetFont("Helvetica", "B", 12)
	l.pdf.Text(l.opts.MarginMM, l.cur.Y+5, fmt.Sprintf("%d. %s", index+1, title))
	l.cur.Y += entryTitleHeightMM
}

// image embeds a prepared JPEG into the left column at the cursor, scaled to
// the column width and clamped to the column max height with both dimensions
// scaled proportionally. Returns the drawn height.
func (l *layouter) image(prepared *imgproc.Prepared) float64 {
	if prepared == nil || prepared.Width == 0 || prepared.Height == 0 {
		return 0
	}

	w := l.opts.ImageColWidthMM
	h := w * float64(prepared.Height) / float64(prepared.Width)
	if h > l.opts.ImageColMaxHeightMM {
		scale := l.opts.ImageColMaxHeightMM / h
		h *= scale
		w *= scale
	}

	l.images++
	name := fmt.Sprintf("entry_img_%03d", l.images)
	imgOpts := fpdf.ImageOptions{ImageType: "JPG"}
	l.pdf.RegisterImageOptionsReader(name, imgOpts, bytes.NewReader(prepared.Data))
	l.pdf.ImageOptions(name, l.opts.MarginMM, l.cur.Y, w, h, false, imgOpts, 0, "")
	return h
}

// caption draws the small line under an image.
func (l *layouter) caption(text string, atY float64) {
	l.pdf.SetFont("Helvetica", "I", 8)
	l.pdf.SetTextColor(120, 120, 120)
	l.pdf.Text(l.opts.MarginMM, atY+3.5, text)
	l.pdf.SetTextColor(0, 0, 0)
}

// sectionHeader draws a bold section heading in the data column.
func (l *layouter) sectionHeader(title string) {
	l.ensure(sectionHeaderHeightMM + rowHeightMM)
	l.pdf.SetFont("Helvetica", "B", 10)
	l.pdf.Text(l.opts.dataColX(), l.cur.Y+4.5, title)
	l.cur.Y += sectionHeaderHeightMM
}

// row draws a label/value pair in the data column. Each row independently
// checks for page overflow and may break mid-entry, which can separate an
// entry's image from some of its data rows.
func (l *layouter) row(label, value string) {
	if !l.fits(rowHeightMM) {
		l.breakPage()
	}
	x := l.opts.dataColX()
	l.pdf.SetFont("Helvetica", "", 9)
	l.pdf.SetTextColor(110, 110, 110)
	l.pdf.Text(x, l.cur.Y+3.5, label)
	l.pdf.SetTextColor(0, 0, 0)
	l.pdf.Text(x+30, l.cur.Y+3.5, value)
	l.cur.Y += rowHeightMM
}

// linkRow draws a fixed-size label with an invisible clickable region over it.
func (l *layouter) linkRow(label, url string) {
	if !l.fits(rowHeightMM) {
		l.breakPage()
	}
	x := l.opts.dataColX()
	l.pdf.SetFont("Helvetica", "U", 9)
	l.pdf.SetTextColor(0, 90, 180)
	l.pdf.Text(x, l.cur.Y+3.5, label)
	l.pdf.SetTextColor(0, 0, 0)
	l.pdf.LinkString(x, l.cur.Y, l.opts.dataColWidth(), rowHeightMM, url)
	l.cur.Y += rowHeightMM
}

// output finalizes the document and returns its bytes.
func (l *layouter) output() ([]byte, error) {
	var buf bytes.Buffer
	if err := l.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
