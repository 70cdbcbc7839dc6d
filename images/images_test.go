package images

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating png: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	return path
}

func TestLoad_PNG(t *testing.T) {
	path := writePNG(t, 4, 3)
	d, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if d.Width != 4 || d.Height != 3 {
		t.Errorf("dimensions = %dx%d, want 4x3", d.Width, d.Height)
	}

	embedded := d.Embed()
	if embedded.Filter != "" {
		t.Errorf("PNG should embed as raw RGB, got filter %q", embedded.Filter)
	}
	if len(embedded.Data) != 4*3*3 {
		t.Errorf("raw RGB data length = %d, want %d", len(embedded.Data), 4*3*3)
	}
}

func TestLoad_JPEGPassthrough(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encoding jpeg: %v", err)
	}
	path := filepath.Join(t.TempDir(), "test.jpg")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing jpeg: %v", err)
	}

	d, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	embedded := d.Embed()
	if embedded.Filter != "DCTDecode" {
		t.Errorf("JPEG filter = %q, want DCTDecode", embedded.Filter)
	}
	if !bytes.Equal(embedded.Data, buf.Bytes()) {
		t.Error("JPEG bytes not passed through verbatim")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "nope.png"))
	if !errors.Is(err, ErrFetch) {
		t.Errorf("expected ErrFetch, got %v", err)
	}
}

func TestLoad_Undecodable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("writing junk: %v", err)
	}
	_, err := NewLoader().Load(path)
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestLoad_TooLarge(t *testing.T) {
	path := writePNG(t, 16, 16)
	_, err := NewLoader(WithMaxBytes(10)).Load(path)
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}

func TestLoad_HTTP(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(buf.Bytes())
	}))
	defer srv.Close()

	d, err := NewLoader().Load(srv.URL + "/img.png")
	if err != nil {
		t.Fatalf("Load over HTTP failed: %v", err)
	}
	if d.Width != 2 || d.Height != 2 {
		t.Errorf("dimensions = %dx%d, want 2x2", d.Width, d.Height)
	}
}

func TestLoad_HTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewLoader().Load(srv.URL + "/missing.png")
	if !errors.Is(err, ErrFetch) {
		t.Errorf("expected ErrFetch, got %v", err)
	}
}

func TestFitBox(t *testing.T) {
	cases := []struct {
		name         string
		w, h         int
		maxW, maxH   float64
		wantW, wantH float64
	}{
		{"fits untouched", 100, 50, 200, 200, 100, 50},
		{"scaled by width", 400, 200, 200, 200, 200, 100},
		{"scaled by height", 200, 400, 200, 100, 50, 100},
		{"zero input", 0, 10, 100, 100, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, h := FitBox(tc.w, tc.h, tc.maxW, tc.maxH)
			if !approx(w, tc.wantW) || !approx(h, tc.wantH) {
				t.Errorf("FitBox = (%v, %v), want (%v, %v)", w, h, tc.wantW, tc.wantH)
			}
		})
	}
}

func approx(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
