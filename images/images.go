// Package images loads and embeds raster images for the layout engine:
// fetch (local path or HTTP URL), decode, aspect-preserving fit, and
// conversion to the writer's XObject form. Failures are typed so the
// renderer can degrade to a placeholder instead of aborting the document.
package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	// Stdlib decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	// Extra formats common in markdown sources.
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/humaxai2025/Papercraft/semantic"
)

// Typed failures, matched by the renderer via errors.Is.
var (
	ErrFetch       = errors.New("images: failed to fetch image")
	ErrDecode      = errors.New("images: failed to decode image")
	ErrUnsupported = errors.New("images: unsupported image format")
	ErrTooLarge    = errors.New("images: image exceeds size limit")
)

// DefaultMaxBytes caps fetched image payloads (16 MiB).
const DefaultMaxBytes = 16 << 20

const fetchTimeout = 30 * time.Second

// Loader fetches and decodes images. The zero value is not usable; call
// NewLoader.
type Loader struct {
	client   *http.Client
	maxBytes int64
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient overrides the HTTP client used for URL references.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithMaxBytes overrides the payload size cap.
func WithMaxBytes(n int64) Option {
	return func(l *Loader) { l.maxBytes = n }
}

// NewLoader builds a Loader with a timeout-bounded HTTP client.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		client:   &http.Client{Timeout: fetchTimeout},
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Decoded is a fetched, decoded image ready for embedding.
type Decoded struct {
	Width  int
	Height int

	// jpegData holds the original JPEG stream when the source can be
	// embedded without recompression.
	jpegData []byte
	img      image.Image
}

// Load fetches and decodes the image at ref (file path or http(s) URL).
func (l *Loader) Load(ref string) (*Decoded, error) {
	data, err := l.fetch(ref)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > l.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(data))
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}

	d := &Decoded{Width: cfg.Width, Height: cfg.Height}
	if format == "jpeg" && jpegEmbeddable(cfg) {
		d.jpegData = data
		return d, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	d.img = img
	return d, nil
}

func (l *Loader) fetch(ref string) ([]byte, error) {
	if isURL(ref) {
		resp, err := l.client.Get(ref)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFetch, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: status %d", ErrFetch, resp.StatusCode)
		}
		data, err := io.ReadAll(io.LimitReader(resp.Body, l.maxBytes+1))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFetch, err)
		}
		return data, nil
	}
	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return data, nil
}

func isURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// jpegEmbeddable reports whether a JPEG stream can be placed as-is with a
// DCTDecode filter and a DeviceRGB color space. CMYK and grayscale JPEGs
// go through the full decode path instead.
func jpegEmbeddable(cfg image.Config) bool {
	switch cfg.ColorModel {
	case color.YCbCrModel, color.RGBAModel, color.NRGBAModel:
		return true
	}
	return false
}

// FitBox scales (w, h) to fit within (maxW, maxH) preserving aspect ratio.
// Images smaller than the box are not scaled up.
func FitBox(w, h int, maxW, maxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	fw, fh := float64(w), float64(h)
	scale := 1.0
	if fw > maxW {
		scale = maxW / fw
	}
	if fh*scale > maxH {
		scale = maxH / fh
	}
	if scale > 1 {
		scale = 1
	}
	return fw * scale, fh * scale
}

// Embed converts a decoded image into the writer's XObject form: JPEG
// passthrough when possible, raw 8-bit RGB samples otherwise.
func (d *Decoded) Embed() *semantic.Image {
	out := &semantic.Image{Width: d.Width, Height: d.Height, Interpolate: true}
	if d.jpegData != nil {
		out.Data = d.jpegData
		out.Filter = "DCTDecode"
		return out
	}
	bounds := d.img.Bounds()
	data := make([]byte, 0, bounds.Dx()*bounds.Dy()*3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := d.img.At(x, y).RGBA()
			data = append(data, byte(r>>8), byte(g>>8), byte(b>>8))
		}
	}
	out.Data = data
	return out
}
