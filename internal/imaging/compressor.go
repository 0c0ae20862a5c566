// Package imaging downscales and re-encodes images for storage. Stored
// images are JPEG data URIs bounded to a fixed width so the durable dataset
// stays within its byte budget.
package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"

	"github.com/vibeshot/core/internal/domain/entities"
	"github.com/vibeshot/core/internal/infrastructure/config"
)

// Compressor re-encodes an input image as a bounded-width JPEG data URI.
type Compressor struct {
	maxWidth int
	quality  int
}

// NewCompressor creates a compressor from config.
func NewCompressor(cfg config.ImageConfig) *Compressor {
	return &Compressor{maxWidth: cfg.MaxWidth, quality: cfg.JPEGQuality}
}

// Compress decodes data, scales it to exactly maxWidth with proportional
// height, and returns a JPEG data URI. Sources narrower than maxWidth are
// scaled up, not left alone; the original behaved that way and callers rely
// on the fixed output width. Undecodable input fails with
// entities.ErrImageDecode and no state is touched.
func (c *Compressor) Compress(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", entities.ErrImageDecode, err)
	}

	bounds := src.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return "", fmt.Errorf("%w: empty image", entities.ErrImageDecode)
	}

	scale := float64(c.maxWidth) / float64(bounds.Dx())
	height := int(float64(bounds.Dy()) * scale)
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, c.maxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: c.quality}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeDataURI is the inverse of Compress's wrapping: it strips the data
// URI prefix and returns the raw image bytes. Used by the CLI to inspect
// stored images.
func DecodeDataURI(uri string) ([]byte, error) {
	const prefix = "data:image/jpeg;base64,"
	if len(uri) <= len(prefix) || uri[:len(prefix)] != prefix {
		return nil, fmt.Errorf("%w: not a jpeg data uri", entities.ErrImageDecode)
	}
	return base64.StdEncoding.DecodeString(uri[len(prefix):])
}
