package imaging

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func testImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func TestFetchCoverDecodesPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(32, 24)))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(buf.Bytes())
	}))
	defer server.Close()

	img, err := FetchCover(context.Background(), server.Client(), server.URL+"/cover.png")
	require.NoError(t, err)
	require.Equal(t, 32, img.Bounds().Dx())
	require.Equal(t, 24, img.Bounds().Dy())
}

func TestFetchCoverRejectsNonImageContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>not an image</html>"))
	}))
	defer server.Close()

	_, err := FetchCover(context.Background(), server.Client(), server.URL+"/cover")
	require.Error(t, err)
	require.Contains(t, err.Error(), "content type")
}

func TestFetchCoverRejectsEmptyURL(t *testing.T) {
	_, err := FetchCover(context.Background(), nil, "")
	require.Error(t, err)
}

func TestFetchCoverRejectsBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := FetchCover(context.Background(), server.Client(), server.URL+"/gone.jpg")
	require.Error(t, err)
}

func TestWriteThumbnailScalesDown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "covers", "13.jpg")
	require.NoError(t, WriteThumbnail(testImage(1024, 512), path, 256, 85))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := jpeg.Decode(f)
	require.NoError(t, err)
	require.Equal(t, 256, img.Bounds().Dx())
	require.Equal(t, 128, img.Bounds().Dy())
}

func TestWriteThumbnailKeepsSmallImages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "13.jpg")
	require.NoError(t, WriteThumbnail(testImage(100, 80), path, 512, 85))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := jpeg.Decode(f)
	require.NoError(t, err)
	require.Equal(t, 100, img.Bounds().Dx())
	require.Equal(t, 80, img.Bounds().Dy())
}

func TestScaleToFitPortrait(t *testing.T) {
	scaled := scaleToFit(testImage(500, 1000), 250)
	require.Equal(t, 125, scaled.Bounds().Dx())
	require.Equal(t, 250, scaled.Bounds().Dy())
}
