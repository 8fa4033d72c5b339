package figmasimplify

import (
	"context"
	"errors"
	"testing"

	"github.com/hellenic-development/figma-simplify/pkg/assets"
	"github.com/hellenic-development/figma-simplify/pkg/figma"
)

func TestResolveFileKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "design URL",
			input: "https://www.figma.com/design/ABC123XYZ/My-Design",
			want:  "ABC123XYZ",
		},
		{
			name:  "file URL with node-id",
			input: "https://www.figma.com/file/ABC123XYZ/My-Design?node-id=1-2",
			want:  "ABC123XYZ",
		},
		{
			name:  "bare file key",
			input: "4gkABR5gEZnIvlCaXmA4KI",
			want:  "4gkABR5gEZnIvlCaXmA4KI",
		},
		{
			name:    "non-figma URL",
			input:   "https://www.example.com/file/ABC123",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveFileKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveFileKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, figma.ErrInvalidURL) {
				t.Errorf("ResolveFileKey() error = %v, want ErrInvalidURL", err)
			}
			if got != tt.want {
				t.Errorf("ResolveFileKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseExtractors(t *testing.T) {
	tests := []struct {
		name    string
		preset  string
		wantLen int
		wantErr bool
	}{
		{name: "default", preset: "", wantLen: 4},
		{name: "all", preset: "all", wantLen: 4},
		{name: "layout", preset: "layout", wantLen: 1},
		{name: "content", preset: "content", wantLen: 1},
		{name: "visuals", preset: "visuals", wantLen: 1},
		{name: "unknown", preset: "everything", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseExtractors(tt.preset)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseExtractors(%q) error = %v, wantErr %v", tt.preset, err, tt.wantErr)
			}
			if len(got) != tt.wantLen {
				t.Errorf("ParseExtractors(%q) returned %d extractors, want %d", tt.preset, len(got), tt.wantLen)
			}
		})
	}
}

func TestPathPolicySelection(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "default is filename", mode: "", path: "/a/b/c.png", want: "./c.png"},
		{name: "filename", mode: "filename", path: "/a/b/c.png", want: "./c.png"},
		{name: "absolute", mode: "absolute", path: "/a/b/c.png", want: "/a/b/c.png"},
		{name: "strip-prefix", mode: "strip-prefix", path: "/a/b/c.png", want: "./b/c.png"},
		{name: "unknown", mode: "relative", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy, err := pathPolicy(&Options{PathMode: tt.mode, StripPrefixBase: "/a"})
			if (err != nil) != tt.wantErr {
				t.Fatalf("pathPolicy() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := policy.Render(tt.path); got != tt.want {
				t.Errorf("policy.Render(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestRunRequiresCredentials(t *testing.T) {
	_, err := Run(context.Background(), Options{
		FileURL: "https://www.figma.com/design/ABC123/My-Design",
	})
	if !errors.Is(err, figma.ErrMissingCredentials) {
		t.Errorf("Run() error = %v, want ErrMissingCredentials", err)
	}
}

func TestRunRejectsInvalidExtractorPreset(t *testing.T) {
	_, err := Run(context.Background(), Options{
		AccessToken: "token",
		FileURL:     "https://www.figma.com/design/ABC123/My-Design",
		Extractors:  "bogus",
	})
	if err == nil {
		t.Fatal("Run() accepted an invalid extractor preset")
	}
}

// Compile-time check that the policy values satisfy the interface the
// enrichment merger consumes.
var (
	_ assets.PathPolicy = assets.FilenameOnly{}
	_ assets.PathPolicy = assets.Absolute{}
	_ assets.PathPolicy = assets.StripPrefix{}
)
