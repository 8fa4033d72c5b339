package assets

import "errors"

// Enrichment errors.
// The enrichment layer is strict: any mismatch between discovered assets and
// supplied results is fatal for the whole call, because a silent
// misassignment would corrupt output without any observable signal.
var (
	// ErrAssetCountMismatch is returned when a positional substitute list
	// does not have exactly one entry per discovered asset.
	ErrAssetCountMismatch = errors.New("assets: substitute count does not match discovered asset count")

	// ErrMissingAssetMapping is returned when a keyed substitute map lacks an
	// entry for a discovered asset id.
	ErrMissingAssetMapping = errors.New("assets: no substitute mapping for discovered asset")

	// ErrInvalidLimit is returned when RunBounded is called with a
	// non-positive concurrency limit.
	ErrInvalidLimit = errors.New("assets: concurrency limit must be positive")
)
