package assets

import (
	"fmt"
	"path"
	"strings"

	"github.com/hellenic-development/figma-simplify/pkg/simplify"
)

// DownloadResult is the Asset Renderer's output for one retrieved image:
// either a file path or an in-memory buffer, plus the final pixel dimensions
// and whether the source was cropped to match the design.
type DownloadResult struct {
	FilePath     string
	Buffer       []byte
	Width        int
	Height       int
	WasCropped   bool
	CSSVariables string
}

// PathPolicy converts an asset's absolute path (or remote URL) into the path
// embedded in generated markup.
type PathPolicy interface {
	Render(filePath string) string
}

// FilenameOnly strips all directory components, rendering "./name.ext".
// It is the default policy.
type FilenameOnly struct{}

func (FilenameOnly) Render(filePath string) string {
	return "./" + path.Base(normalizeSeparators(filePath))
}

// Absolute passes the source path through unchanged.
type Absolute struct{}

func (Absolute) Render(filePath string) string { return filePath }

// StripPrefix removes a literal leading base path, normalizing separators
// first. A path that does not start with the base falls back to
// filename-only rendering rather than failing.
type StripPrefix struct {
	Base string
}

func (p StripPrefix) Render(filePath string) string {
	norm := normalizeSeparators(filePath)
	base := strings.TrimSuffix(normalizeSeparators(p.Base), "/")

	if base == "" || !strings.HasPrefix(norm, base+"/") {
		return FilenameOnly{}.Render(filePath)
	}
	return "./" + strings.TrimPrefix(norm, base+"/")
}

func normalizeSeparators(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// Enrich attaches download results onto the discovered assets' nodes,
// matching result i to asset i in the locator's traversal order. The input
// tree is never mutated; the returned tree is a structural copy.
func Enrich(nodes []simplify.SimplifiedNode, found []ImageAsset, results []DownloadResult, policy PathPolicy) ([]simplify.SimplifiedNode, error) {
	if len(results) != len(found) {
		return nil, fmt.Errorf("%w: %d results for %d assets",
			ErrAssetCountMismatch, len(results), len(found))
	}
	if policy == nil {
		policy = FilenameOnly{}
	}

	byID := make(map[string]*simplify.DownloadedImage, len(found))
	for i := range found {
		byID[found[i].NodeID] = presentation(&found[i], &results[i], policy)
	}

	return mergeTree(nodes, byID), nil
}

// EnrichWithPaths attaches externally supplied substitute paths positionally:
// paths must have exactly one entry per discovered asset, matched by index to
// the locator's traversal order.
func EnrichWithPaths(nodes []simplify.SimplifiedNode, found []ImageAsset, paths []string, policy PathPolicy) ([]simplify.SimplifiedNode, error) {
	if len(paths) != len(found) {
		return nil, fmt.Errorf("%w: %d paths for %d assets",
			ErrAssetCountMismatch, len(paths), len(found))
	}

	results := make([]DownloadResult, len(paths))
	for i, p := range paths {
		results[i] = DownloadResult{FilePath: p}
	}
	return Enrich(nodes, found, results, policy)
}

// EnrichWithPathMap attaches substitute paths keyed by node id. Order does
// not matter, but every discovered asset id must have an entry.
func EnrichWithPathMap(nodes []simplify.SimplifiedNode, found []ImageAsset, byID map[string]string, policy PathPolicy) ([]simplify.SimplifiedNode, error) {
	results := make([]DownloadResult, len(found))
	for i := range found {
		p, ok := byID[found[i].NodeID]
		if !ok {
			return nil, fmt.Errorf("%w: node %s (%s)",
				ErrMissingAssetMapping, found[i].NodeID, found[i].Name)
		}
		results[i] = DownloadResult{FilePath: p}
	}
	return Enrich(nodes, found, results, policy)
}

func presentation(asset *ImageAsset, result *DownloadResult, policy PathPolicy) *simplify.DownloadedImage {
	rendered := policy.Render(result.FilePath)

	return &simplify.DownloadedImage{
		FilePath:     result.FilePath,
		RelativePath: rendered,
		Width:        result.Width,
		Height:       result.Height,
		WasCropped:   result.WasCropped,
		Markdown:     fmt.Sprintf("![%s](%s)", asset.Name, rendered),
		HTML: fmt.Sprintf(`<img src=%q width="%d" height="%d" alt=%q />`,
			rendered, result.Width, result.Height, asset.Name),
	}
}

// mergeTree rebuilds the tree as a copy, attaching presentation bundles to
// matching nodes. Children slices are re-allocated so the caller's tree and
// its siblings stay untouched.
func mergeTree(nodes []simplify.SimplifiedNode, byID map[string]*simplify.DownloadedImage) []simplify.SimplifiedNode {
	if len(nodes) == 0 {
		return nil
	}

	out := make([]simplify.SimplifiedNode, len(nodes))
	for i := range nodes {
		node := nodes[i] // copy
		if img, ok := byID[node.ID]; ok {
			node.DownloadedImage = img
		}
		node.Children = mergeTree(nodes[i].Children, byID)
		out[i] = node
	}
	return out
}
