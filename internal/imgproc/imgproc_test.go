package imgproc

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
)

// testJPEG encodes a solid-color image of the given size.
func testJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 120, G: 140, B: 160, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestCorrectOrientation_Dimensions(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 40, 20))

	tests := []struct {
		orientation int
		wantW       int
		wantH       int
	}{
		{0, 40, 20},
		{1, 40, 20},
		{2, 40, 20},
		{3, 40, 20},
		{4, 40, 20},
		{5, 20, 40},
		{6, 20, 40},
		{7, 20, 40},
		{8, 20, 40},
		{9, 40, 20}, // out of range, unchanged
	}
	for _, tt := range tests {
		got := CorrectOrientation(src, tt.orientation)
		b := got.Bounds()
		if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
			t.Errorf("orientation %d: expected %dx%d, got %dx%d",
				tt.orientation, tt.wantW, tt.wantH, b.Dx(), b.Dy())
		}
	}
}

func TestOrientedDimensions(t *testing.T) {
	if w, h := OrientedDimensions(400, 200, 6); w != 200 || h != 400 {
		t.Errorf("orientation 6: expected 200x400, got %dx%d", w, h)
	}
	if w, h := OrientedDimensions(400, 200, 1); w != 400 || h != 200 {
		t.Errorf("orientation 1: expected 400x200, got %dx%d", w, h)
	}
}

func TestPrepare_Downscale(t *testing.T) {
	data := testJPEG(t, 800, 400)

	prepared, err := Prepare(data, 0, PrepareOptions{MaxWidth: 200, JPEGQuality: 80})
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if prepared.Width != 200 {
		t.Errorf("expected width 200, got %d", prepared.Width)
	}
	if prepared.Height != 100 {
		t.Errorf("aspect ratio not preserved: expected height 100, got %d", prepared.Height)
	}

	// Output must be valid JPEG.
	if _, _, err := Dimensions(prepared.Data); err != nil {
		t.Errorf("prepared output is not decodable: %v", err)
	}
}

func TestPrepare_NoUpscale(t *testing.T) {
	data := testJPEG(t, 100, 50)
	prepared, err := Prepare(data, 0, PrepareOptions{MaxWidth: 1600})
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if prepared.Width != 100 || prepared.Height != 50 {
		t.Errorf("small image should not be upscaled, got %dx%d", prepared.Width, prepared.Height)
	}
}

func TestPrepare_OrientationSwapsAxes(t *testing.T) {
	data := testJPEG(t, 300, 100)
	prepared, err := Prepare(data, 6, PrepareOptions{CorrectOrientation: true})
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if prepared.Width != 100 || prepared.Height != 300 {
		t.Errorf("orientation 6 should rotate: expected 100x300, got %dx%d", prepared.Width, prepared.Height)
	}
}

func TestPrepare_InvalidData(t *testing.T) {
	if _, err := Prepare([]byte("not an image"), 0, PrepareOptions{}); err == nil {
		t.Error("expected error for undecodable data")
	}
}

func TestWatermark(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 300))
	out := Watermark(img, "proposal preview")
	if out.Bounds() != img.Bounds() {
		t.Errorf("watermark must not change dimensions")
	}

	// Some pixel must differ from the solid source.
	changed := false
	for y := 0; y < 300 && !changed; y++ {
		for x := 0; x < 400; x++ {
			if out.(*image.RGBA).RGBAAt(x, y) != img.RGBAAt(x, y) {
				changed = true
				break
			}
		}
	}
	if !changed {
		t.Error("watermark left image untouched")
	}
}

func TestWatermark_EmptyText(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	if out := Watermark(img, ""); out != image.Image(img) {
		t.Error("empty text should return the original image")
	}
}
