package printing

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultOutputDir = "exports"
	pdfExt           = ".pdf"
)

// ExportStoreConfig contains configuration for the export directory
type ExportStoreConfig struct {
	// Dir is where exported PDFs are saved
	// Default: exports
	Dir string
	// Retention is how long to keep exports (0 = forever)
	Retention time.Duration
	// Logger for operations
	Logger *zap.Logger
}

// ExportStore is the directory the headless host saves its PDFs to.
// Files are named "<prefix>-<uuid>.pdf".
type ExportStore struct {
	config *ExportStoreConfig
	logger *zap.Logger
}

// StoredExport describes a saved export
type StoredExport struct {
	ID   uuid.UUID
	Name string
	Path string
	Size int64
}

// NewExportStore creates the export directory if needed
func NewExportStore(config *ExportStoreConfig) (*ExportStore, error) {
	if config == nil {
		config = &ExportStoreConfig{}
	}
	if config.Dir == "" {
		config.Dir = defaultOutputDir
	}

	if err := os.MkdirAll(config.Dir, 0o755); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to create export directory: "+config.Dir, err)
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ExportStore{
		config: config,
		logger: logger,
	}, nil
}

// Dir returns the export directory
func (s *ExportStore) Dir() string {
	return s.config.Dir
}

// Store saves a PDF under a new unique name
func (s *ExportStore) Store(ctx context.Context, prefix string, data []byte) (*StoredExport, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "operation cancelled", err)
	}
	if len(data) == 0 {
		return nil, NewRenderError(ErrCodeStorageFailed, "PDF data is empty", nil)
	}

	id := uuid.New()
	name := exportName(prefix, id)
	path := filepath.Join(s.config.Dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to write PDF file", err)
	}

	s.logger.Info("export saved",
		zap.String("path", path),
		zap.Int("size", len(data)))

	return &StoredExport{
		ID:   id,
		Name: name,
		Path: path,
		Size: int64(len(data)),
	}, nil
}

// Open opens a stored export by name. Names that were not produced by Store are rejected.
func (s *ExportStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "operation cancelled", err)
	}
	if _, ok := parseExportName(name); !ok {
		s.logger.Warn("blocked invalid export name", zap.String("name", name))
		return nil, NewRenderError(ErrCodeExportNotFound, "invalid export name", nil)
	}

	file, err := os.Open(filepath.Join(s.config.Dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewRenderError(ErrCodeExportNotFound, "export not found", err)
		}
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to open export", err)
	}
	return file, nil
}

// List returns the names of stored exports
func (s *ExportStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.config.Dir)
	if err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to read export directory", err)
	}
	var names []string
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, NewRenderError(ErrCodeStorageFailed, "operation cancelled", err)
		}
		if _, ok := parseExportName(e.Name()); ok && !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// Cleanup removes exports older than the configured retention
func (s *ExportStore) Cleanup(ctx context.Context) (int, error) {
	if s.config.Retention <= 0 {
		return 0, nil
	}
	return s.CleanupOlderThan(ctx, s.config.Retention)
}

// CleanupOlderThan removes exports older than the specified duration
func (s *ExportStore) CleanupOlderThan(ctx context.Context, age time.Duration) (int, error) {
	cutoff := time.Now().Add(-age)
	deleted := 0

	names, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	for _, name := range names {
		path := filepath.Join(s.config.Dir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err == nil {
				deleted++
				s.logger.Debug("deleted old export", zap.String("path", path))
			}
		}
	}

	s.logger.Info("export cleanup completed",
		zap.Int("deleted", deleted),
		zap.Duration("age", age))

	return deleted, nil
}

func exportName(prefix string, id uuid.UUID) string {
	prefix = strings.Trim(strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, prefix), "-")
	if prefix == "" {
		prefix = "export"
	}
	return prefix + "-" + id.String() + pdfExt
}

func parseExportName(name string) (uuid.UUID, bool) {
	if filepath.Base(name) != name || !strings.HasSuffix(name, pdfExt) {
		return uuid.Nil, false
	}
	stem := strings.TrimSuffix(name, pdfExt)
	// a uuid string is 36 characters
	if len(stem) < 38 || stem[len(stem)-37] != '-' {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(stem[len(stem)-36:])
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
