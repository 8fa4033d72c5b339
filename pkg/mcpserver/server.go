// Package mcpserver exposes the simplification pipeline to coding agents
// over the Model Context Protocol. The server speaks stdio only: it is meant
// to be spawned by an MCP client, not reached over the network.
package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	figmasimplify "github.com/hellenic-development/figma-simplify"
	"github.com/hellenic-development/figma-simplify/pkg/config"
	"github.com/hellenic-development/figma-simplify/pkg/simplify"
)

// Server wraps the pipeline and exposes it as an MCP server.
type Server struct {
	cfg       *config.Config
	logger    figmasimplify.Logger
	mcpServer *server.MCPServer
}

// New creates an MCP server backed by the given configuration. The logger may
// be nil; progress then goes unreported.
func New(cfg *config.Config, logger figmasimplify.Logger, version string) *Server {
	s := &Server{
		cfg:       cfg,
		logger:    logger,
		mcpServer: server.NewMCPServer("figma-simplify", version),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on stdin/stdout and blocks until the client
// disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	// TOOL: get_design_data
	getDesignTool := mcp.NewTool("get_design_data",
		mcp.WithDescription("Fetch a Figma file or specific nodes and return a compact YAML representation: simplified node tree, deduplicated style table, and component metadata."),
		mcp.WithString("file_url", mcp.Required(), mcp.Description("Figma file URL or bare file key. A node-id query parameter scopes the fetch to that subtree.")),
		mcp.WithString("node_ids", mcp.Description("Comma-separated node ids to fetch instead of the whole file (optional)")),
		mcp.WithNumber("max_depth", mcp.Description("Maximum tree depth to traverse; omit for the full tree")),
		mcp.WithString("extractors", mcp.Description("Extractor preset: all (default), layout, content, or visuals")),
	)
	s.mcpServer.AddTool(getDesignTool, s.handleGetDesignData)

	// TOOL: download_design_images
	downloadTool := mcp.NewTool("download_design_images",
		mcp.WithDescription("Download all images a design references (collapsed vector graphics and image fills) to a local directory and return the resulting file paths with ready-to-embed markdown."),
		mcp.WithString("file_url", mcp.Required(), mcp.Description("Figma file URL or bare file key")),
		mcp.WithString("image_dir", mcp.Description("Target directory for downloaded files (default: figma-assets)")),
		mcp.WithString("format", mcp.Description("Render format for vector graphics: png (default), svg, jpg, or pdf")),
		mcp.WithNumber("scale", mcp.Description("Render scale for raster formats (default: 1)")),
		mcp.WithString("path_mode", mcp.Description("How paths appear in generated markup: filename (default), absolute, or strip-prefix")),
		mcp.WithString("strip_prefix_base", mcp.Description("Base directory to strip when path_mode is strip-prefix")),
	)
	s.mcpServer.AddTool(downloadTool, s.handleDownloadImages)
}

func (s *Server) handleGetDesignData(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fileURL, err := request.RequireString("file_url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	opts := figmasimplify.Options{
		AccessToken: s.cfg.AccessToken,
		OAuthToken:  s.cfg.OAuthToken,
		FileURL:     fileURL,
		MaxDepth:    int(request.GetFloat("max_depth", 0)),
		Extractors:  request.GetString("extractors", ""),
		Logger:      s.logger,
	}
	if ids := request.GetString("node_ids", ""); ids != "" {
		opts.NodeIDs = splitNodeIDs(ids)
	}

	result, err := figmasimplify.Run(ctx, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("get design data: %v", err)), nil
	}

	data, err := yaml.Marshal(result.Design)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode design: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleDownloadImages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fileURL, err := request.RequireString("file_url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	opts := figmasimplify.Options{
		AccessToken:     s.cfg.AccessToken,
		OAuthToken:      s.cfg.OAuthToken,
		FileURL:         fileURL,
		DownloadImages:  true,
		ImageFormat:     request.GetString("format", s.cfg.ImageFormat),
		ImageScale:      request.GetFloat("scale", s.cfg.ImageScale),
		ImageDir:        request.GetString("image_dir", s.cfg.ImageDir),
		PathMode:        request.GetString("path_mode", ""),
		StripPrefixBase: request.GetString("strip_prefix_base", ""),
		Concurrency:     s.cfg.Concurrency,
		Logger:          s.logger,
	}

	result, err := figmasimplify.Run(ctx, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("download design images: %v", err)), nil
	}

	var sb strings.Builder
	count := 0
	walkDownloaded(result.Design.Nodes, func(n *simplify.SimplifiedNode) {
		count++
		fmt.Fprintf(&sb, "- %s: %s (%s)\n", n.Name, n.DownloadedImage.FilePath, n.DownloadedImage.Markdown)
	})

	if count == 0 {
		return mcp.NewToolResultText("No downloadable images found in the design."), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Downloaded %d image(s):\n%s", count, sb.String())), nil
}

func walkDownloaded(nodes []simplify.SimplifiedNode, visit func(*simplify.SimplifiedNode)) {
	for i := range nodes {
		if nodes[i].DownloadedImage != nil {
			visit(&nodes[i])
		}
		walkDownloaded(nodes[i].Children, visit)
	}
}

func splitNodeIDs(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			// Accept the URL form "1-23" as well as the API form "1:23".
			out = append(out, strings.ReplaceAll(p, "-", ":"))
		}
	}
	return out
}
