package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/briefing/backend/internal/application/summary"
	"github.com/briefing/backend/internal/domain/document"
	"github.com/briefing/backend/internal/infrastructure/config"
	"github.com/briefing/backend/internal/infrastructure/content"
	"github.com/briefing/backend/internal/infrastructure/layout"
	"github.com/briefing/backend/internal/infrastructure/logger"
	infra "github.com/briefing/backend/internal/infrastructure/printing"
	"github.com/briefing/backend/internal/infrastructure/render"
	"go.uber.org/zap"
)

func main() {
	var (
		configPath  string
		outPath     string
		format      string
		paperSize   string
		orientation string
		margin      int
		timeout     time.Duration
		strict      bool
		logLevel    string
	)

	flag.StringVar(&configPath, "config", "", "Path to config.toml (default: ./config.toml if present)")
	flag.StringVar(&outPath, "out", "", "Output file (default: <title>.pdf, .html or .json by format)")
	flag.StringVar(&format, "format", "pdf", "Output format: pdf, html, outline-screen, outline-print")
	flag.StringVar(&paperSize, "paper", "", "Override paper size (A4, A5, Letter, Legal)")
	flag.StringVar(&orientation, "orientation", "", "Override orientation (portrait, landscape)")
	flag.IntVar(&margin, "margin", -1, "Override page margin in millimeters")
	flag.DurationVar(&timeout, "timeout", 0, "Print timeout (default: chrome.timeout)")
	flag.BoolVar(&strict, "strict", false, "Fail when exported pages do not match the configured sheet")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stderr",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	if paperSize != "" {
		cfg.Summary.PaperSize = paperSize
	}
	if orientation != "" {
		cfg.Summary.Orientation = strings.ToLower(orientation)
	}
	if margin >= 0 {
		cfg.Summary.MarginMM = margin
	}
	if timeout > 0 {
		cfg.Chrome.Timeout = timeout
	}

	if err := run(cfg, format, outPath, strict, log); err != nil {
		log.Error("Export failed", zap.Error(err))
		_ = logger.Sync(log)
		os.Exit(1)
	}
}

func run(cfg *config.Config, format, outPath string, strict bool, log *zap.Logger) error {
	geometry, err := cfg.Summary.Geometry()
	if err != nil {
		return err
	}
	payload, err := content.Load(cfg.Summary.ContentPath)
	if err != nil {
		return err
	}
	renderer, err := render.NewRenderer(render.NewTemplateEngine(), render.Options{
		BackLink:    cfg.Summary.BackLink,
		Geometry:    geometry,
		AssetPrefix: cfg.Summary.AssetPrefix,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Chrome.Timeout)
	defer cancel()

	switch format {
	case "html":
		svc := summary.NewService(payload, renderer, layout.NewEngine(), summary.WithLogger(log))
		page, err := svc.Page(ctx)
		if err != nil {
			return err
		}
		return writeOutput(outputPath(outPath, payload, ".html"), page.HTML, log)

	case "outline-screen", "outline-print":
		svc := summary.NewService(payload, renderer, layout.NewEngine(), summary.WithLogger(log))
		outline, err := svc.OutlineFor(ctx, summary.OutlineRequest{Mode: strings.TrimPrefix(format, "outline-")})
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(outline, "", "  ")
		if err != nil {
			return err
		}
		return writeOutput(outputPath(outPath, payload, ".json"), append(data, '\n'), log)

	case "pdf":
		host := infra.NewChromeHost(&infra.ChromedpConfig{
			DefaultTimeout: cfg.Chrome.Timeout,
			RemoteURL:      cfg.Chrome.RemoteURL,
			ExecPath:       cfg.Chrome.ExecPath,
			NoSandbox:      cfg.Chrome.NoSandbox,
			Logger:         logger.Named(log, "chrome"),
		})
		defer func() {
			_ = host.Close()
		}()

		svc := summary.NewService(payload, renderer, layout.NewEngine(),
			summary.WithLogger(log), summary.WithExporter(host))
		result, err := svc.Export(ctx)
		if err != nil {
			return err
		}

		log.Info("Summary exported",
			zap.Int("pages", result.PageCount),
			zap.Duration("duration", result.Duration),
			zap.String("sheet", geometry.String()),
		)
		info := &infra.PDFInfo{PageCount: result.PageCount, PageSizes: result.PageSizes}
		if mismatch := sheetMismatch(info, geometry.Width, geometry.Height); mismatch != "" {
			if strict {
				return fmt.Errorf("exported pages do not match the configured sheet: %s", mismatch)
			}
			log.Warn("Exported pages do not match the configured sheet", zap.String("detail", mismatch))
		}
		return writeOutput(outputPath(outPath, payload, ".pdf"), result.PDFData, log)

	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// sheetMismatch describes the first page whose size differs from the sheet by more than 1mm
func sheetMismatch(info *infra.PDFInfo, width, height float64) string {
	sizes := info.PageSizes
	if len(sizes) > 1 && info.UniformPageSize() {
		sizes = sizes[:1]
	}
	for i, size := range sizes {
		if math.Abs(size.Width-width) > 1 || math.Abs(size.Height-height) > 1 {
			return fmt.Sprintf("page %d is %gx%gmm, expected %gx%gmm", i+1, size.Width, size.Height, width, height)
		}
	}
	return ""
}

func outputPath(path string, payload *document.Payload, ext string) string {
	if path != "" {
		return path
	}
	name := strings.ToLower(strings.Join(strings.Fields(payload.Title()), "-"))
	if name == "" {
		name = "summary"
	}
	return name + ext
}

func writeOutput(path string, data []byte, log *zap.Logger) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Info("Output written", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}
