package imager

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple name", input: "Logo", want: "logo"},
		{name: "spaces become hyphens", input: "Hero Image", want: "hero-image"},
		{name: "slashes and symbols collapse", input: "Icons / Arrow → Right", want: "icons-arrow-right"},
		{name: "leading and trailing junk trimmed", input: "  **Header**  ", want: "header"},
		{name: "consecutive separators collapse", input: "a -- b__c", want: "a-b-c"},
		{name: "digits preserved", input: "Frame 42", want: "frame-42"},
		{name: "empty falls back", input: "", want: "asset"},
		{name: "only symbols falls back", input: "///", want: "asset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeName(tt.input); got != tt.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDetectExtensionFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "plain png", url: "https://cdn.example.com/img/photo.png", want: "png"},
		{name: "query string ignored", url: "https://cdn.example.com/photo.jpg?token=abc&x=1", want: "jpg"},
		{name: "fragment ignored", url: "https://cdn.example.com/photo.svg#frag", want: "svg"},
		{name: "uppercase lowered", url: "https://cdn.example.com/PHOTO.PNG", want: "png"},
		{name: "no extension defaults to png", url: "https://cdn.example.com/abc123", want: "png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectExtensionFromURL(tt.url); got != tt.want {
				t.Errorf("DetectExtensionFromURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want string
	}{
		{
			name: "explicit file name",
			req:  Request{NodeID: "1:2", FileName: "logo.svg"},
			want: "logo.svg",
		},
		{
			name: "derived from node id",
			req:  Request{NodeID: "12:34"},
			want: "12-34.png",
		},
		{
			name: "suffix before extension",
			req:  Request{NodeID: "1:2", FileName: "hero.png", FilenameSuffix: "@2x"},
			want: "hero@2x.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fileName(&tt.req, "png"); got != tt.want {
				t.Errorf("fileName() = %q, want %q", got, tt.want)
			}
		})
	}
}

// encodeTestPNG produces a w x h PNG for crop tests.
func encodeTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestCropImage(t *testing.T) {
	data := encodeTestPNG(t, 100, 100)

	// Half-size window offset to the center quarter.
	transform := [][]float64{
		{0.5, 0, 0.25},
		{0, 0.5, 0.25},
	}

	cropped, wasCropped, err := cropImage(data, transform, "png")
	if err != nil {
		t.Fatal(err)
	}
	if !wasCropped {
		t.Fatal("cropImage() reported no crop for a strict sub-window")
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(cropped))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 50 || cfg.Height != 50 {
		t.Errorf("cropped dimensions = %dx%d, want 50x50", cfg.Width, cfg.Height)
	}
}

func TestCropImageIdentityWindow(t *testing.T) {
	data := encodeTestPNG(t, 40, 40)

	// The full-frame window means nothing to crop.
	transform := [][]float64{
		{1, 0, 0},
		{0, 1, 0},
	}

	_, wasCropped, err := cropImage(data, transform, "png")
	if err != nil {
		t.Fatal(err)
	}
	if wasCropped {
		t.Error("cropImage() cropped an identity window")
	}
}

func TestCropImageMalformedTransform(t *testing.T) {
	data := encodeTestPNG(t, 10, 10)

	_, wasCropped, err := cropImage(data, [][]float64{{1, 0}}, "png")
	if err != nil {
		t.Fatal(err)
	}
	if wasCropped {
		t.Error("cropImage() acted on a malformed transform")
	}
}

func TestRasterFormat(t *testing.T) {
	for format, want := range map[string]bool{
		"png": true, "jpg": true, "svg": false, "pdf": false,
	} {
		if got := rasterFormat(format); got != want {
			t.Errorf("rasterFormat(%q) = %v, want %v", format, got, want)
		}
	}
}
