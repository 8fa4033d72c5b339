// Package imager is the asset renderer: it resolves download URLs for
// rendered nodes and embedded image fills, retrieves the bytes under a
// concurrency bound, optionally crops raster images to their design window,
// and reports final pixel dimensions.
package imager

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hellenic-development/figma-simplify/pkg/assets"
	"github.com/hellenic-development/figma-simplify/pkg/figma"
)

const maxNodesPerRequest = 100
const maxParallelDownloads = 5

// Request describes one asset to retrieve. Nodes with an ImageRef resolve
// through the file images endpoint; all others go through the render API.
type Request struct {
	NodeID   string
	FileName string
	ImageRef string

	// NeedsCropping applies the normalized crop window in CropTransform to
	// raster formats; vector formats pass through uncropped.
	NeedsCropping bool
	CropTransform [][]float64

	// RequiresImageDimensions asks for the original pixel dimensions to be
	// exposed as CSS variables on the result.
	RequiresImageDimensions bool

	// FilenameSuffix is inserted before the extension, e.g. "@2x".
	FilenameSuffix string
}

// Options configures one retrieval batch.
type Options struct {
	Format string  // "png", "svg", "jpg", "pdf"
	Scale  float64 // render scale for raster formats
	// Concurrency bounds simultaneous downloads; 0 uses the default of 5.
	Concurrency int
	// ReturnBuffer keeps the bytes in memory instead of writing files.
	ReturnBuffer bool
}

// RetrieveAssets resolves and downloads all requested assets, returning one
// result per request in request order. targetDir is ignored in buffer mode.
// The first failing download aborts the batch.
func RetrieveAssets(ctx context.Context, client *figma.Client, fileKey, targetDir string, requests []Request, opts Options) ([]assets.DownloadResult, error) {
	if len(requests) == 0 {
		return []assets.DownloadResult{}, nil
	}
	if opts.Format == "" {
		opts.Format = "png"
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = maxParallelDownloads
	}

	if !opts.ReturnBuffer {
		if err := os.MkdirAll(targetDir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory %q: %w", targetDir, err)
		}
	}

	urls, err := resolveURLs(client, fileKey, requests, opts)
	if err != nil {
		return nil, err
	}

	tasks := make([]assets.Task[assets.DownloadResult], len(requests))
	for i := range requests {
		req := &requests[i]
		url := urls[i]
		tasks[i] = func(ctx context.Context) (assets.DownloadResult, error) {
			return download(ctx, req, url, targetDir, opts)
		}
	}

	return assets.RunBounded(ctx, tasks, opts.Concurrency)
}

// resolveURLs produces one download URL per request: image fills through the
// file images endpoint (one call for the whole batch), rendered nodes through
// the render API in batches of at most 100 ids.
func resolveURLs(client *figma.Client, fileKey string, requests []Request, opts Options) ([]string, error) {
	urls := make([]string, len(requests))

	var fillRefs bool
	var renderIDs []string
	for i := range requests {
		if requests[i].ImageRef != "" {
			fillRefs = true
		} else {
			renderIDs = append(renderIDs, requests[i].NodeID)
		}
	}

	var fillURLs map[string]string
	if fillRefs {
		resp, err := client.GetImageFills(fileKey)
		if err != nil {
			return nil, err
		}
		fillURLs = resp.Meta.Images
	}

	renderURLs := make(map[string]string, len(renderIDs))
	for i := 0; i < len(renderIDs); i += maxNodesPerRequest {
		end := min(i+maxNodesPerRequest, len(renderIDs))
		resp, err := client.GetImages(fileKey, renderIDs[i:end], opts.Format, opts.Scale)
		if err != nil {
			return nil, err
		}
		for id, url := range resp.Images {
			renderURLs[id] = url
		}
	}

	for i := range requests {
		req := &requests[i]
		if req.ImageRef != "" {
			urls[i] = fillURLs[req.ImageRef]
			if urls[i] == "" {
				return nil, fmt.Errorf("no download URL for image fill %s (node %s)", req.ImageRef, req.NodeID)
			}
		} else {
			urls[i] = renderURLs[req.NodeID]
			if urls[i] == "" {
				return nil, fmt.Errorf("no image URL returned for node %s", req.NodeID)
			}
		}
	}

	return urls, nil
}

func download(ctx context.Context, req *Request, url, targetDir string, opts Options) (assets.DownloadResult, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return assets.DownloadResult{}, fmt.Errorf("download %s: %w", req.NodeID, err)
	}

	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		return assets.DownloadResult{}, fmt.Errorf("download %s: %w", req.NodeID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return assets.DownloadResult{}, fmt.Errorf("download %s: unexpected status %d", req.NodeID, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return assets.DownloadResult{}, fmt.Errorf("download %s: %w", req.NodeID, err)
	}

	result := assets.DownloadResult{}

	if rasterFormat(opts.Format) {
		if req.NeedsCropping && len(req.CropTransform) == 2 {
			cropped, wasCropped, err := cropImage(data, req.CropTransform, opts.Format)
			if err != nil {
				return assets.DownloadResult{}, fmt.Errorf("crop %s: %w", req.NodeID, err)
			}
			if wasCropped {
				data = cropped
				result.WasCropped = true
			}
		}

		if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
			result.Width = cfg.Width
			result.Height = cfg.Height
			if req.RequiresImageDimensions {
				result.CSSVariables = fmt.Sprintf("--original-width: %dpx; --original-height: %dpx", cfg.Width, cfg.Height)
			}
		}
	}

	if opts.ReturnBuffer {
		result.Buffer = data
		return result, nil
	}

	destPath := filepath.Join(targetDir, fileName(req, opts.Format))
	if err := os.WriteFile(destPath, data, 0o644); err != nil {
		return assets.DownloadResult{}, fmt.Errorf("write %s: %w", destPath, err)
	}
	result.FilePath = destPath

	return result, nil
}

// cropImage applies the normalized affine crop window to the decoded image
// and re-encodes it. The transform is the 2x3 matrix from a STRETCH-mode
// image fill: scale on the diagonal, translation in the last column, all
// relative to the source dimensions.
func cropImage(data []byte, transform [][]float64, format string) ([]byte, bool, error) {
	if len(transform) != 2 || len(transform[0]) != 3 || len(transform[1]) != 3 {
		return nil, false, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false, err
	}

	bounds := img.Bounds()
	w, h := float64(bounds.Dx()), float64(bounds.Dy())

	rect := image.Rect(
		bounds.Min.X+int(transform[0][2]*w),
		bounds.Min.Y+int(transform[1][2]*h),
		bounds.Min.X+int((transform[0][2]+transform[0][0])*w),
		bounds.Min.Y+int((transform[1][2]+transform[1][1])*h),
	).Intersect(bounds)

	if rect.Empty() || rect == bounds {
		return nil, false, nil
	}

	sub, ok := img.(interface {
		SubImage(image.Rectangle) image.Image
	})
	if !ok {
		return nil, false, nil
	}

	var buf bytes.Buffer
	switch format {
	case "jpg", "jpeg":
		err = jpeg.Encode(&buf, sub.SubImage(rect), nil)
	default:
		err = png.Encode(&buf, sub.SubImage(rect))
	}
	if err != nil {
		return nil, false, err
	}

	return buf.Bytes(), true, nil
}

func rasterFormat(format string) bool {
	return format != "svg" && format != "pdf"
}

func fileName(req *Request, format string) string {
	name := req.FileName
	if name == "" {
		name = SanitizeName(req.NodeID) + "." + format
	}
	if req.FilenameSuffix != "" {
		ext := filepath.Ext(name)
		name = strings.TrimSuffix(name, ext) + req.FilenameSuffix + ext
	}
	return name
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// SanitizeName derives a filesystem-safe base name from a node name:
// non-alphanumeric runs collapse to single hyphens, leading and trailing
// hyphens are trimmed, and the result is lower-cased. Distinct node names may
// sanitize to the same base name; collisions are not deduplicated and the
// last write wins at the storage layer.
func SanitizeName(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "-")
	s = strings.Trim(s, "-")
	s = strings.ToLower(s)
	if s == "" {
		return "asset"
	}
	return s
}

// DetectExtensionFromURL infers the file extension from a download URL,
// defaulting to png when the URL carries none.
func DetectExtensionFromURL(url string) string {
	trimmed := url
	if i := strings.IndexAny(trimmed, "?#"); i >= 0 {
		trimmed = trimmed[:i]
	}
	ext := strings.TrimPrefix(filepath.Ext(trimmed), ".")
	if ext == "" {
		return "png"
	}
	return strings.ToLower(ext)
}
