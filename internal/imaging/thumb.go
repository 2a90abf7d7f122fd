// Package imaging downloads cover art and writes scaled JPEG thumbnails.
package imaging

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
)

const (
	fetchTimeout = 30 * time.Second

	// DefaultMaxSize is the bounding box for thumbnails, in pixels.
	DefaultMaxSize = 512

	// DefaultQuality is the JPEG quality for thumbnails.
	DefaultQuality = 85
)

// FetchCover downloads and decodes an image URL. Non-image content types
// are rejected before decoding.
func FetchCover(ctx context.Context, client *http.Client, imageURL string) (image.Image, error) {
	if imageURL == "" {
		return nil, fmt.Errorf("no image url")
	}

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build image request: %w", err)
	}

	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected image status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("unexpected content type %s", ct)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// WriteThumbnail scales an image to fit within maxSize and writes it as a
// JPEG file.
func WriteThumbnail(img image.Image, path string, maxSize, quality int) error {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if quality <= 0 {
		quality = DefaultQuality
	}

	scaled := scaleToFit(img, maxSize)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create thumbnail dir: %w", err)
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create thumbnail file: %w", err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, scaled, &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("encode thumbnail: %w", err)
	}
	return nil
}

// scaleToFit shrinks an image to fit the bounding box, keeping aspect ratio.
// Images already inside the box are returned unchanged.
func scaleToFit(img image.Image, maxSize int) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= maxSize && height <= maxSize {
		return img
	}

	ratio := float64(maxSize) / float64(width)
	if height > width {
		ratio = float64(maxSize) / float64(height)
	}
	newWidth := int(float64(width) * ratio)
	newHeight := int(float64(height) * ratio)

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
