package report

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/mholecek/location-scout/internal/imgproc"
)

// maxImageBytes bounds a single fetched image.
const maxImageBytes = 64 << 20

// fetchedImage holds the outcome of fetching and preparing one entry's image.
// original keeps the untouched bytes for archive bundling; prepared holds the
// orientation-corrected, downscaled JPEG for embedding.
type fetchedImage struct {
	original []byte
	prepared *imgproc.Prepared
	err      error
}

// fetchImages downloads every entry's image concurrently and prepares it for
// embedding. Failures are recorded per entry, never propagated: layout skips
// the image and bundling omits the archive entry.
func (g *Generator) fetchImages(ctx context.Context, entries []PhotoEntry) []fetchedImage {
	results := make([]fetchedImage, len(entries))

	jobs := make(chan int, len(entries))
	for i := range entries {
		jobs <- i
	}
	close(jobs)

	workers := g.opts.Concurrency
	if workers <= 0 {
		workers = 1
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					results[i] = fetchedImage{err: ctx.Err()}
					continue
				}
				results[i] = g.fetchOne(ctx, entries[i])
				if results[i].err != nil {
					g.log.Warn("failed to fetch report image",
						zap.Int("entry", i),
						zap.String("url", entries[i].ImageURL),
						zap.Error(results[i].err))
				}
			}
		}()
	}
	wg.Wait()
	return results
}

func (g *Generator) fetchOne(ctx context.Context, entry PhotoEntry) fetchedImage {
	if entry.ImageURL == "" {
		return fetchedImage{}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, g.opts.FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, entry.ImageURL, nil)
	if err != nil {
		return fetchedImage{err: fmt.Errorf("could not create request: %w", err)}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fetchedImage{err: fmt.Errorf("could not fetch image: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fetchedImage{err: fmt.Errorf("image fetch returned status %d", resp.StatusCode)}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return fetchedImage{err: fmt.Errorf("could not read image body: %w", err)}
	}

	orientation := 0
	if entry.Exif != nil && entry.Exif.Image != nil {
		orientation = entry.Exif.Image.Orientation
	}

	prepOpts := imgproc.PrepareOptions{
		CorrectOrientation: g.opts.CorrectOrientation,
		JPEGQuality:        g.opts.JPEGQuality,
	}
	if g.opts.CompressImages {
		prepOpts.MaxWidth = g.opts.MaxImagePixelWidth
	}

	prepared, err := imgproc.Prepare(data, orientation, prepOpts)
	if err != nil {
		return fetchedImage{original: data, err: fmt.Errorf("could not prepare image: %w", err)}
	}
	return fetchedImage{original: data, prepared: prepared}
}
