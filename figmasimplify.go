package figmasimplify

import (
	"context"
	"fmt"
	"regexp"

	"github.com/hellenic-development/figma-simplify/pkg/assets"
	"github.com/hellenic-development/figma-simplify/pkg/figma"
	"github.com/hellenic-development/figma-simplify/pkg/imager"
	"github.com/hellenic-development/figma-simplify/pkg/simplify"
)

// Options configures the simplification pipeline.
type Options struct {
	AccessToken string // Figma personal access token
	OAuthToken  string // OAuth bearer token (used when set)

	FileURL string   // Figma file URL or bare file key
	NodeIDs []string // empty = entire file; otherwise specific subtrees

	// MaxDepth limits traversal depth; 0 means the full tree.
	MaxDepth int

	// Extractors selects the pipeline: "all" (default), "layout",
	// "content", or "visuals".
	Extractors string

	DownloadImages bool
	ImageFormat    string  // "png", "svg", "jpg", "pdf"
	ImageScale     float64 // render scale for raster formats
	ImageDir       string

	// PathMode selects how downloaded asset paths are rendered in markup:
	// "filename" (default), "absolute", or "strip-prefix" with
	// StripPrefixBase.
	PathMode        string
	StripPrefixBase string

	// Concurrency bounds simultaneous asset downloads.
	Concurrency int

	Logger Logger // nil = no logging
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Result contains the pipeline output.
type Result struct {
	FileKey string
	Design  *simplify.SimplifiedDesign
	Assets  []assets.ImageAsset // discovered image-bearing nodes, document order
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *Options) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

// Run executes the full pipeline: fetch, simplify, and optionally resolve
// and attach downloadable image assets.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.ImageFormat == "" {
		opts.ImageFormat = "png"
	}
	if opts.ImageScale <= 0 {
		opts.ImageScale = 1
	}
	if opts.ImageDir == "" {
		opts.ImageDir = "figma-assets"
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 5
	}

	extractors, err := ParseExtractors(opts.Extractors)
	if err != nil {
		return nil, err
	}

	opts.logInfo("Resolving file key...")
	fileKey, err := ResolveFileKey(opts.FileURL)
	if err != nil {
		return nil, err
	}
	opts.logInfo("File key: %s", fileKey)

	targetNodeIDs := opts.NodeIDs
	if len(targetNodeIDs) == 0 {
		urlNodeIDs, err := figma.ExtractNodeIDs(opts.FileURL)
		if err != nil {
			return nil, err
		}
		targetNodeIDs = urlNodeIDs
	}

	client, err := newClient(&opts)
	if err != nil {
		return nil, err
	}

	simplifyOpts := simplify.Options{Extractors: extractors}
	if opts.MaxDepth > 0 {
		simplifyOpts.MaxDepth = simplify.MaxDepth(opts.MaxDepth)
	}

	var design *simplify.SimplifiedDesign
	if len(targetNodeIDs) > 0 {
		opts.logInfo("Fetching %d node(s) from Figma...", len(targetNodeIDs))
		nodesResp, err := client.GetFileNodes(fileKey, targetNodeIDs, opts.MaxDepth)
		if err != nil {
			return nil, err
		}
		opts.logInfo("File: %s", nodesResp.Name)
		design = simplify.SimplifyNodes(nodesResp, simplifyOpts)
	} else {
		opts.logInfo("Fetching whole file from Figma...")
		fileResp, err := client.GetFile(fileKey, opts.MaxDepth)
		if err != nil {
			return nil, err
		}
		opts.logInfo("File: %s", fileResp.Name)
		design = simplify.SimplifyFile(fileResp, simplifyOpts)
	}

	found := assets.FindImageAssets(design.Nodes, design.GlobalVars)
	opts.logInfo("Found %d image-bearing node(s)", len(found))

	if opts.DownloadImages {
		if len(found) == 0 {
			opts.logWarn("No downloadable images in the design, skipping download")
		} else if err := downloadAndEnrich(ctx, &opts, client, fileKey, design, found); err != nil {
			return nil, err
		}
	}

	return &Result{
		FileKey: fileKey,
		Design:  design,
		Assets:  found,
	}, nil
}

func downloadAndEnrich(ctx context.Context, opts *Options, client *figma.Client, fileKey string, design *simplify.SimplifiedDesign, found []assets.ImageAsset) error {
	opts.logInfo("Downloading %d image(s) to %s...", len(found), opts.ImageDir)

	requests := make([]imager.Request, len(found))
	for i, a := range found {
		format := opts.ImageFormat
		if a.ImageRef != "" {
			// Image fills come from storage, not the render API; they are
			// served as raster regardless of the requested render format.
			format = "png"
		}
		requests[i] = imager.Request{
			NodeID:   a.NodeID,
			ImageRef: a.ImageRef,
			FileName: imager.SanitizeName(a.Name) + "." + format,
		}
	}

	results, err := imager.RetrieveAssets(ctx, client, fileKey, opts.ImageDir, requests, imager.Options{
		Format:      opts.ImageFormat,
		Scale:       opts.ImageScale,
		Concurrency: opts.Concurrency,
	})
	if err != nil {
		return err
	}

	policy, err := pathPolicy(opts)
	if err != nil {
		return err
	}

	enriched, err := assets.Enrich(design.Nodes, found, results, policy)
	if err != nil {
		return err
	}
	design.Nodes = enriched

	opts.logInfo("Attached %d downloaded image(s)", len(results))
	return nil
}

func newClient(opts *Options) (*figma.Client, error) {
	var client *figma.Client
	switch {
	case opts.OAuthToken != "":
		client = figma.NewOAuthClient(opts.OAuthToken)
	case opts.AccessToken != "":
		client = figma.NewClient(opts.AccessToken)
	default:
		return nil, figma.ErrMissingCredentials
	}
	return client, nil
}

func pathPolicy(opts *Options) (assets.PathPolicy, error) {
	switch opts.PathMode {
	case "", "filename":
		return assets.FilenameOnly{}, nil
	case "absolute":
		return assets.Absolute{}, nil
	case "strip-prefix":
		return assets.StripPrefix{Base: opts.StripPrefixBase}, nil
	default:
		return nil, fmt.Errorf("invalid path mode %q (must be filename, absolute, or strip-prefix)", opts.PathMode)
	}
}

// ParseExtractors resolves a preset name to an extractor pipeline.
func ParseExtractors(name string) ([]simplify.Extractor, error) {
	switch name {
	case "", "all":
		return simplify.AllExtractors(), nil
	case "layout":
		return simplify.LayoutOnly(), nil
	case "content":
		return simplify.ContentOnly(), nil
	case "visuals":
		return simplify.VisualsOnly(), nil
	default:
		return nil, fmt.Errorf("invalid extractor preset %q (must be all, layout, content, or visuals)", name)
	}
}

var bareFileKey = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// ResolveFileKey accepts either a full Figma URL or a bare file key.
func ResolveFileKey(urlOrKey string) (string, error) {
	key, err := figma.ExtractFileKey(urlOrKey)
	if err == nil {
		return key, nil
	}
	if bareFileKey.MatchString(urlOrKey) {
		return urlOrKey, nil
	}
	return "", err
}
