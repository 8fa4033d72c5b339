package figma

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Version is the module release version, reported by the CLI and the MCP
// server handshake.
const Version = "0.1.0"

const (
	figmaAPIBase = "https://api.figma.com/v1"

	maxRetries = 3
)

// Client is a Figma API client with HTTP settings tuned for large design
// files. It supports both credential kinds the API accepts: a personal access
// token (X-Figma-Token header) or an OAuth bearer token.
type Client struct {
	accessToken string
	oauthToken  string
	httpClient  *http.Client
}

// NewClient creates a Figma API client authenticated with a personal access
// token. The client uses connection pooling, disables HTTP/2 (stream errors
// on very large files), and allows up to 10 minutes per request.
func NewClient(accessToken string) *Client {
	return newClient(accessToken, "")
}

// NewOAuthClient creates a Figma API client authenticated with an OAuth
// bearer token.
func NewOAuthClient(oauthToken string) *Client {
	return newClient("", oauthToken)
}

func newClient(accessToken, oauthToken string) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 10,
		// Disable HTTP/2 to avoid stream errors with large files.
		ForceAttemptHTTP2: false,
	}

	return &Client{
		accessToken: accessToken,
		oauthToken:  oauthToken,
		httpClient: &http.Client{
			Timeout:   10 * time.Minute,
			Transport: transport,
		},
	}
}

// HasCredentials reports whether the client carries either credential kind.
func (c *Client) HasCredentials() bool {
	return c.accessToken != "" || c.oauthToken != ""
}

func (c *Client) authorize(req *http.Request) error {
	switch {
	case c.oauthToken != "":
		req.Header.Set("Authorization", "Bearer "+c.oauthToken)
	case c.accessToken != "":
		req.Header.Set("X-Figma-Token", c.accessToken)
	default:
		return ErrMissingCredentials
	}
	return nil
}

// getJSON performs an authenticated GET with retry on rate limits and server
// errors, decoding the response body into out.
func (c *Client) getJSON(url string, out any) error {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		req, err := http.NewRequest(http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		if err := c.authorize(req); err != nil {
			return err
		}
		// Keep large transfers on fresh connections.
		req.Header.Set("Connection", "close")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("attempt %d failed to execute request: %w", attempt, err)
			if attempt < maxRetries {
				time.Sleep(time.Duration(attempt) * 2 * time.Second)
				continue
			}
			return lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			lastErr = statusError(resp.StatusCode, body)
			if attempt < maxRetries && (resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500) {
				time.Sleep(time.Duration(attempt) * 2 * time.Second)
				continue
			}
			return lastErr
		}

		if readErr != nil {
			lastErr = fmt.Errorf("attempt %d failed to read response body: %w", attempt, readErr)
			if attempt < maxRetries {
				time.Sleep(time.Duration(attempt) * 2 * time.Second)
				continue
			}
			return lastErr
		}

		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
		return nil
	}

	return lastErr
}

// statusError maps an API status code to a sentinel error, keeping the
// response body for context.
func statusError(status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w (status %d): %s", ErrUnauthorized, status, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w (status %d): %s", ErrNotFound, status, msg)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w (status %d): %s", ErrRateLimited, status, msg)
	default:
		return fmt.Errorf("API request failed with status %d: %s", status, msg)
	}
}

// GetFile retrieves the whole document for a file, including the shared
// component and style tables. depth > 0 limits how many levels of the tree
// the API returns; depth <= 0 fetches the full tree.
func (c *Client) GetFile(fileKey string, depth int) (*FileResponse, error) {
	u := fmt.Sprintf("%s/files/%s", figmaAPIBase, fileKey)
	if depth > 0 {
		u += "?depth=" + strconv.Itoa(depth)
	}

	var fileResp FileResponse
	if err := c.getJSON(u, &fileResp); err != nil {
		return nil, fmt.Errorf("fetch file %s: %w", fileKey, err)
	}
	return &fileResp, nil
}

// GetFileNodes retrieves specific subtrees of a file keyed by node id.
// depth > 0 limits the returned tree depth below each requested node.
func (c *Client) GetFileNodes(fileKey string, nodeIDs []string, depth int) (*NodesResponse, error) {
	if len(nodeIDs) == 0 {
		return nil, fmt.Errorf("fetch nodes of %s: no node IDs given", fileKey)
	}

	q := url.Values{}
	q.Set("ids", strings.Join(deduplicateNodeIDs(nodeIDs), ","))
	if depth > 0 {
		q.Set("depth", strconv.Itoa(depth))
	}
	u := fmt.Sprintf("%s/files/%s/nodes?%s", figmaAPIBase, fileKey, q.Encode())

	var nodesResp NodesResponse
	if err := c.getJSON(u, &nodesResp); err != nil {
		return nil, fmt.Errorf("fetch nodes of %s: %w", fileKey, err)
	}
	return &nodesResp, nil
}

// GetImages asks the render API to rasterize (or vectorize, for svg/pdf) the
// given nodes and returns temporary download URLs keyed by node id.
func (c *Client) GetImages(fileKey string, nodeIDs []string, format string, scale float64) (*ImagesResponse, error) {
	q := url.Values{}
	q.Set("ids", strings.Join(nodeIDs, ","))
	q.Set("format", format)
	if format != "svg" && format != "pdf" {
		q.Set("scale", strconv.FormatFloat(scale, 'g', -1, 64))
	}
	u := fmt.Sprintf("%s/images/%s?%s", figmaAPIBase, fileKey, q.Encode())

	var imgResp ImagesResponse
	if err := c.getJSON(u, &imgResp); err != nil {
		return nil, fmt.Errorf("render images of %s: %w", fileKey, err)
	}
	if imgResp.Err != "" {
		return nil, fmt.Errorf("render images of %s: %s", fileKey, imgResp.Err)
	}
	return &imgResp, nil
}

// GetImageFills returns download URLs for all images embedded as IMAGE fills
// in the file, keyed by imageRef.
func (c *Client) GetImageFills(fileKey string) (*ImageFillsResponse, error) {
	u := fmt.Sprintf("%s/files/%s/images", figmaAPIBase, fileKey)

	var fillsResp ImageFillsResponse
	if err := c.getJSON(u, &fillsResp); err != nil {
		return nil, fmt.Errorf("fetch image fills of %s: %w", fileKey, err)
	}
	return &fillsResp, nil
}

// ExtractFileKey extracts the unique file identifier from a Figma URL.
// Supports both /file/ and /design/ URL patterns
// (e.g. figma.com/design/ABC123/Design-Name).
func ExtractFileKey(figmaURL string) (string, error) {
	// Anchored so that the entire URL must match the expected pattern.
	re := regexp.MustCompile(`^https?://(?:www\.)?figma\.com/(?:file|design)/([A-Za-z0-9]+)(?:/|$)`)
	matches := re.FindStringSubmatch(figmaURL)

	if len(matches) < 2 {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, figmaURL)
	}

	return matches[1], nil
}

// ExtractNodeIDs extracts node ids from a Figma URL. It supports the
// node-id query parameter (colon or URL-encoded dash separator), hash
// fragments, and /nodes/ path segments; results are deduplicated preserving
// first occurrence.
func ExtractNodeIDs(figmaURL string) ([]string, error) {
	var raw string

	patterns := []*regexp.Regexp{
		regexp.MustCompile(`[?&]node-id=([^&#]*)`),
		regexp.MustCompile(`/nodes/([^?&#]+)`),
		regexp.MustCompile(`#([0-9]+:[0-9]+(?:,\s*[0-9]+:[0-9]+)*)`),
	}
	for _, re := range patterns {
		if m := re.FindStringSubmatch(figmaURL); len(m) == 2 {
			raw = m[1]
			break
		}
	}

	if raw == "" {
		return []string{}, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}
		// The web app URL-encodes "123:456" as "123-456".
		if !strings.Contains(id, ":") {
			id = strings.Replace(id, "-", ":", 1)
		}
		ids = append(ids, id)
	}

	return deduplicateNodeIDs(ids), nil
}

// deduplicateNodeIDs removes duplicate ids preserving first-occurrence order.
func deduplicateNodeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			result = append(result, id)
		}
	}
	return result
}
