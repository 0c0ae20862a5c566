package imaging

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibeshot/core/internal/domain/entities"
	"github.com/vibeshot/core/internal/infrastructure/config"
)

func testCompressor() *Compressor {
	return NewCompressor(config.ImageConfig{MaxWidth: 800, JPEGQuality: 70})
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 10 {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeOutput(t *testing.T, uri string) image.Image {
	t.Helper()
	raw, err := DecodeDataURI(uri)
	require.NoError(t, err)
	img, err := jpeg.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	return img
}

func TestCompressDownscalesToBoundedWidth(t *testing.T) {
	uri, err := testCompressor().Compress(context.Background(), pngBytes(t, 1600, 1200))
	require.NoError(t, err)

	img := decodeOutput(t, uri)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())
}

func TestCompressUpscalesSmallSources(t *testing.T) {
	// sources narrower than the target are scaled up to it
	uri, err := testCompressor().Compress(context.Background(), pngBytes(t, 100, 50))
	require.NoError(t, err)

	img := decodeOutput(t, uri)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())
}

func TestCompressRejectsUndecodableInput(t *testing.T) {
	_, err := testCompressor().Compress(context.Background(), []byte("definitely not an image"))
	assert.ErrorIs(t, err, entities.ErrImageDecode)
}

func TestCompressHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testCompressor().Compress(ctx, pngBytes(t, 10, 10))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecodeDataURIRejectsForeignStrings(t *testing.T) {
	_, err := DecodeDataURI("https://picsum.photos/600/500?random=1")
	assert.ErrorIs(t, err, entities.ErrImageDecode)
}
