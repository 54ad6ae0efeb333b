package report

import "time"

// Page geometry defaults in mm (A4 portrait).
const (
	pageWidthMM  = 210.0
	pageHeightMM = 297.0
)

// Fixed layout constants in mm. Pagination estimates are built from these,
// not from measured text heights.
const (
	titleBlockHeightMM    = 14.0 // document title + description
	entryTitleHeightMM    = 8.0
	imageCaptionHeightMM  = 5.0
	sectionHeaderHeightMM = 6.0
	rowHeightMM           = 5.0
	entryGapMM            = 6.0
	columnGapMM           = 8.0

	// overflowToleranceMM lets a row that barely misses the boundary stay
	// on the page instead of forcing a break.
	overflowToleranceMM = 1.0
)

// RenderOptions parameterizes one export. The three historical export
// variants (draft, compressed, print) differ only in these values.
type RenderOptions struct {
	PageWidthMM  float64
	PageHeightMM float64
	MarginMM     float64

	// Image column geometry.
	ImageColWidthMM     float64
	ImageColMaxHeightMM float64

	// Image preparation before embedding.
	CompressImages     bool
	CorrectOrientation bool
	MaxImagePixelWidth int
	JPEGQuality        int

	// Fetching.
	FetchTimeout time.Duration
	Concurrency  int
}

// DefaultRenderOptions returns the standard export configuration.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		PageWidthMM:         pageWidthMM,
		PageHeightMM:        pageHeightMM,
		MarginMM:            15.0,
		ImageColWidthMM:     90.0,
		ImageColMaxHeightMM: 70.0,
		CompressImages:      true,
		CorrectOrientation:  true,
		MaxImagePixelWidth:  1600,
		JPEGQuality:         80,
		FetchTimeout:        30 * time.Second,
		Concurrency:         5,
	}
}

// dataColX returns the X position of the right-hand data column.
func (o RenderOptions) dataColX() float64 {
	return o.MarginMM + o.ImageColWidthMM + columnGapMM
}

// dataColWidth returns the width of the right-hand data column.
func (o RenderOptions) dataColWidth() float64 {
	return o.PageWidthMM - o.MarginMM - o.dataColX()
}
