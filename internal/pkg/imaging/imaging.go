// Package imaging downscales uploaded photos before they are stored.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // Register decoders.
	"image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrTooManyPixels     = errors.New("image has too many pixels")
)

// Options controls Process. MaxPixels <= 0 disables the pixel cap.
type Options struct {
	MaxEdge   int
	Quality   int
	MaxPixels int
}

type Result struct {
	Data           []byte
	Width          int
	Height         int
	OriginalWidth  int
	OriginalHeight int
}

// FitWithin returns the dimensions of a w x h image scaled so that its
// longer edge is at most maxEdge. Smaller images are returned unchanged.
func FitWithin(w, h, maxEdge int) (int, int) {
	if w <= 0 || h <= 0 || maxEdge <= 0 {
		return w, h
	}
	if w <= maxEdge && h <= maxEdge {
		return w, h
	}

	if w >= h {
		return maxEdge, max(1, (h*maxEdge+w/2)/w)
	}

	return max(1, (w*maxEdge+h/2)/h), maxEdge
}

func Downscale(src image.Image, maxEdge int) image.Image {
	b := src.Bounds()
	w, h := FitWithin(b.Dx(), b.Dy(), maxEdge)
	if w == b.Dx() && h == b.Dy() {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	return dst
}

// Process decodes r, downscales it to MaxEdge and re-encodes it as JPEG.
// The header is checked against MaxPixels before any pixel data is decoded.
func Process(r io.Reader, opts Options) (Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("io.ReadAll -> %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return Result{}, ErrUnsupportedFormat
		}

		return Result{}, fmt.Errorf("image.DecodeConfig -> %w", err)
	}
	if opts.MaxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > int64(opts.MaxPixels) {
		return Result{}, fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("image.Decode -> %w", err)
	}

	scaled := Downscale(src, opts.MaxEdge)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: opts.Quality}); err != nil {
		return Result{}, fmt.Errorf("jpeg.Encode -> %w", err)
	}

	return Result{
		Data:           buf.Bytes(),
		Width:          scaled.Bounds().Dx(),
		Height:         scaled.Bounds().Dy(),
		OriginalWidth:  src.Bounds().Dx(),
		OriginalHeight: src.Bounds().Dy(),
	}, nil
}
