// Package figmasimplify turns verbose Figma API responses into a compact,
// self-describing design representation: a simplified node tree with shared
// styles deduplicated into a lookup table, plus optional download and
// attachment of the images the design references.
//
// The CLI lives in cmd/figma-simplify; this root package exposes the same
// pipeline as a Go API so that callers can embed simplification in their own
// tools without shelling out.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named figmasimplify:
//
//	import "github.com/hellenic-development/figma-simplify" // package figmasimplify
//
// # Quick start
//
//	result, err := figmasimplify.Run(context.Background(), figmasimplify.Options{
//	    AccessToken:    os.Getenv("FIGMA_API_KEY"),
//	    FileURL:        "https://www.figma.com/design/ABC123/My-Design",
//	    DownloadImages: true,
//	    ImageDir:       "figma-assets",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data, _ := yaml.Marshal(result.Design)
//	os.WriteFile("design.yaml", data, 0644)
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages. A nil Logger silences all output.
//
// # Node-scoped simplification
//
// When the file URL carries a node-id query parameter, or [Options.NodeIDs]
// is set, only those subtrees are fetched and simplified. Otherwise the whole
// file is processed.
//
// The lower-level building blocks are importable on their own:
//
//   - pkg/figma: the REST client and URL parsing
//   - pkg/simplify: the extractor pipeline and style registry
//   - pkg/assets: asset discovery, bounded execution, and tree enrichment
//   - pkg/imager: URL resolution, downloading, and cropping
//   - pkg/report: markdown summaries of simplified designs
package figmasimplify
