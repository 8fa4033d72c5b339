package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	figmasimplify "github.com/hellenic-development/figma-simplify"
	"github.com/hellenic-development/figma-simplify/pkg/config"
	"github.com/hellenic-development/figma-simplify/pkg/figma"
	"github.com/hellenic-development/figma-simplify/pkg/mcpserver"
	"github.com/hellenic-development/figma-simplify/pkg/report"
)

const version = figma.Version

var (
	figmaURL        string
	accessToken     string
	oauthToken      string
	configFile      string
	outputFile      string
	outputFormat    string
	nodeIDs         string
	maxDepth        int
	extractors      string
	downloadImages  bool
	imageFormat     string
	imageScale      float64
	imageDir        string
	pathMode        string
	stripPrefixBase string
	concurrency     int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "figma-simplify",
		Short: "Simplify Figma designs into compact, agent-friendly form",
		Long:  "A tool that fetches Figma files via the Figma API and distills them into a compact node tree with deduplicated styles, suitable for LLM-driven code generation",
		Run:   run,
	}

	rootCmd.Flags().StringVarP(&figmaURL, "url", "u", "", "Figma file URL or bare file key (required)")
	rootCmd.Flags().StringVarP(&accessToken, "token", "t", "", "Figma Personal Access Token (overrides config and "+config.EnvAccessToken+")")
	rootCmd.Flags().StringVar(&oauthToken, "oauth-token", "", "Figma OAuth bearer token (overrides config and "+config.EnvOAuthToken+")")
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "Configuration file (default: "+config.DefaultConfigFile+" in cwd or home)")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	rootCmd.Flags().StringVarP(&outputFormat, "format", "f", "yaml", "Output format: yaml, json, or markdown")
	rootCmd.Flags().StringVarP(&nodeIDs, "node-ids", "n", "", "Comma-separated node IDs to fetch instead of the entire file")
	rootCmd.Flags().IntVarP(&maxDepth, "depth", "d", 0, "Maximum tree depth to traverse (0 = full tree)")
	rootCmd.Flags().StringVar(&extractors, "extractors", "all", "Extractor preset: all, layout, content, or visuals")
	rootCmd.Flags().BoolVar(&downloadImages, "download-images", false, "Download referenced images and attach them to the output")
	rootCmd.Flags().StringVar(&imageFormat, "image-format", "", "Render format for vector graphics: png, svg, jpg, pdf")
	rootCmd.Flags().Float64Var(&imageScale, "image-scale", 0, "Render scale for raster formats")
	rootCmd.Flags().StringVar(&imageDir, "image-dir", "", "Output directory for downloaded images")
	rootCmd.Flags().StringVar(&pathMode, "path-mode", "filename", "Asset path rendering: filename, absolute, or strip-prefix")
	rootCmd.Flags().StringVar(&stripPrefixBase, "strip-prefix-base", "", "Base directory to strip when --path-mode=strip-prefix")
	rootCmd.Flags().IntVar(&concurrency, "concurrency", 0, "Maximum parallel image downloads")

	rootCmd.MarkFlagRequired("url")

	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run as a Model Context Protocol server on stdio",
		RunE:  runMCP,
	}
	mcpCmd.Flags().StringVarP(&configFile, "config", "c", "", "Configuration file (default: "+config.DefaultConfigFile+" in cwd or home)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("figma-simplify version %s\n", version)
		},
	}

	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadConfig builds the effective configuration: file (if any) over defaults
// and environment, CLI flags over everything.
func loadConfig() (*config.Config, error) {
	cfg := config.New()
	if path := config.Find(configFile); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if accessToken != "" {
		cfg.AccessToken = accessToken
	}
	if oauthToken != "" {
		cfg.OAuthToken = oauthToken
	}
	if imageFormat != "" {
		cfg.ImageFormat = imageFormat
	}
	if imageScale > 0 {
		cfg.ImageScale = imageScale
	}
	if imageDir != "" {
		cfg.ImageDir = imageDir
	}
	if concurrency > 0 {
		cfg.Concurrency = concurrency
	}

	return cfg, cfg.Validate()
}

func run(cmd *cobra.Command, args []string) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)

	cyan.Println("\n🎨 Figma Design Simplifier")
	cyan.Println("===========================")
	cyan.Println()

	cfg, err := loadConfig()
	if err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	var parsedNodeIDs []string
	if nodeIDs != "" {
		for _, id := range strings.Split(nodeIDs, ",") {
			id = strings.TrimSpace(id)
			if id != "" {
				parsedNodeIDs = append(parsedNodeIDs, strings.ReplaceAll(id, "-", ":"))
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := figmasimplify.Run(ctx, figmasimplify.Options{
		AccessToken:     cfg.AccessToken,
		OAuthToken:      cfg.OAuthToken,
		FileURL:         figmaURL,
		NodeIDs:         parsedNodeIDs,
		MaxDepth:        maxDepth,
		Extractors:      extractors,
		DownloadImages:  downloadImages,
		ImageFormat:     cfg.ImageFormat,
		ImageScale:      cfg.ImageScale,
		ImageDir:        cfg.ImageDir,
		PathMode:        pathMode,
		StripPrefixBase: stripPrefixBase,
		Concurrency:     cfg.Concurrency,
		Logger:          &cliLogger{},
	})
	if err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	design := result.Design
	cyan.Println("\n📊 Simplification Summary:")
	fmt.Printf("  • File: %s\n", design.Name)
	fmt.Printf("  • Top-level nodes: %d\n", len(design.Nodes))
	fmt.Printf("  • Shared styles: %d\n", len(design.GlobalVars.Styles))
	fmt.Printf("  • Components: %d\n", len(design.Components))
	fmt.Printf("  • Image-bearing nodes: %d\n", len(result.Assets))

	out, err := encodeOutput(result)
	if err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if outputFile == "" {
		fmt.Println()
		os.Stdout.Write(out)
		return
	}

	green.Printf("\n💾 Writing to %s... ", outputFile)
	if err := os.WriteFile(outputFile, out, 0644); err != nil {
		red.Printf("✗\n")
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	green.Println("✓")

	green.Printf("\n✨ Successfully simplified design to %s\n\n", outputFile)
}

func encodeOutput(result *figmasimplify.Result) ([]byte, error) {
	switch outputFormat {
	case "yaml":
		return yaml.Marshal(result.Design)
	case "json":
		return json.MarshalIndent(result.Design, "", "  ")
	case "markdown", "md":
		var sb strings.Builder
		if err := report.WriteDesign(&sb, result.Design); err != nil {
			return nil, err
		}
		return []byte(sb.String()), nil
	default:
		return nil, fmt.Errorf("invalid output format %q (must be yaml, json, or markdown)", outputFormat)
	}
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// stdout carries the protocol; log to stderr only.
	srv := mcpserver.New(cfg, &stderrLogger{}, version)
	return srv.ServeStdio()
}

// cliLogger implements figmasimplify.Logger with colored terminal output.
type cliLogger struct{}

func (l *cliLogger) Infof(format string, args ...any) {
	color.New(color.FgYellow).Printf(format+"\n", args...)
}

func (l *cliLogger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Printf("⚠ "+format+"\n", args...)
}

func (l *cliLogger) Errorf(format string, args ...any) {
	color.New(color.FgRed).Printf("✗ "+format+"\n", args...)
}

// stderrLogger keeps stdout clean for the MCP protocol stream.
type stderrLogger struct{}

func (l *stderrLogger) Infof(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

func (l *stderrLogger) Warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}

func (l *stderrLogger) Errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
