package scan

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/planoscan/planoscan/internal/extract"
	"github.com/planoscan/planoscan/internal/ocr"
)

// IDGenerator generates unique IDs for scans
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

type defaultIDGenerator struct{}

func (g *defaultIDGenerator) Generate() string {
	return uuid.NewString()
}

type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service handles scan operations
type Service struct {
	db          DB
	ocr         ocr.Client
	storage     Storage
	engine      *extract.Engine
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new Service with default ID generator and time source
func NewService(db DB, client ocr.Client, storage Storage, engine *extract.Engine) *Service {
	return &Service{
		db:          db,
		ocr:         client,
		storage:     storage,
		engine:      engine,
		idGenerator: &defaultIDGenerator{},
		timeSource:  &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, client ocr.Client, storage Storage, engine *extract.Engine, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		db:          db,
		ocr:         client,
		storage:     storage,
		engine:      engine,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// sanitizeFilename cleans up a filename by removing special characters and truncating length
func sanitizeFilename(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	// Keep only alphanumeric, spaces, hyphens, and underscores
	reg := regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)
	base = reg.ReplaceAllString(base, "")

	reg = regexp.MustCompile(`\s+`)
	base = reg.ReplaceAllString(base, " ")
	base = strings.TrimSpace(base)

	// Phone cameras produce very long names, truncate the base
	maxLen := 50
	if len(base) > maxLen {
		base = base[:maxLen]
	}

	if base == "" {
		base = "scan"
	}

	return base + ext
}

// ExtractScan uploads a sheet, recognizes its text and extracts product
// records from it. The returned scan is a draft: nothing is persisted until
// the operator reviews it and calls CreateScan, possibly after correcting
// the records by hand. A recognition processing failure is not an error, it
// yields a draft with no products for manual entry.
func (s *Service) ExtractScan(filename string, data []byte, contentType string) (*Scan, error) {
	id := s.idGenerator.Generate()
	now := s.timeSource.Now()

	// Sanitize filename to clean up phone-generated long filenames
	cleanFilename := sanitizeFilename(filename)

	savedPath, err := s.storage.Save(fmt.Sprintf("%s_%s", id, cleanFilename), data)
	if err != nil {
		return nil, fmt.Errorf("saving file: %w", err)
	}

	rec, err := s.ocr.Recognize(data, contentType)
	if err != nil {
		slog.Error("Failed to recognize scan",
			"filename", filename,
			"content_type", contentType,
			"file_size", len(data),
			"error", err,
		)
		// Clean up the saved file since recognition failed
		s.storage.Delete(savedPath)
		return nil, fmt.Errorf("recognizing scan: %w", err)
	}
	if rec.ErrorMessage != "" {
		slog.Warn("Recognition reported a processing failure",
			"filename", filename,
			"message", rec.ErrorMessage,
		)
	}

	result := s.engine.Extract(rec.Text)
	slog.Info("Extracted scan",
		"filename", filename,
		"products", len(result.Products),
		"confidence", result.Confidence,
	)

	return &Scan{
		ID:               id,
		Filename:         savedPath,
		ContentType:      contentType,
		RawText:          rec.Text,
		Products:         result.Products,
		Confidence:       result.Confidence,
		ProcessingTimeMs: rec.Millis + result.ProcessingTimeMs,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// CreateScan persists a scan, typically a reviewed draft from ExtractScan.
// Hand-corrected records pass through unchanged, they are indistinguishable
// from engine output from here on.
func (s *Service) CreateScan(scan *Scan) (*Scan, error) {
	if scan == nil {
		return nil, fmt.Errorf("scan is required")
	}

	now := s.timeSource.Now()
	if scan.ID == "" {
		scan.ID = s.idGenerator.Generate()
	}
	if scan.CreatedAt.IsZero() {
		scan.CreatedAt = now
	}
	scan.UpdatedAt = now
	if scan.Products == nil {
		scan.Products = []extract.Product{}
	}

	if err := s.db.SaveScan(scan); err != nil {
		return nil, fmt.Errorf("saving scan to database: %w", err)
	}
	return scan, nil
}

// GetScan retrieves a scan by ID
func (s *Service) GetScan(id string) (*Scan, error) {
	scan, err := s.db.GetScan(id)
	if err != nil {
		return nil, fmt.Errorf("getting scan: %w", err)
	}
	return scan, nil
}

// ListScans returns all scans
func (s *Service) ListScans() ([]*Scan, error) {
	scans, err := s.db.ListScans()
	if err != nil {
		return nil, fmt.Errorf("listing scans: %w", err)
	}
	return scans, nil
}

// DeleteScan removes a scan and its stored file
func (s *Service) DeleteScan(id string) error {
	scan, err := s.db.GetScan(id)
	if err != nil {
		return fmt.Errorf("getting scan for deletion: %w", err)
	}

	if scan.Filename != "" {
		if err := s.storage.Delete(scan.Filename); err != nil {
			// Log error but continue with database deletion
			slog.Warn("Failed to delete file", "filename", scan.Filename, "error", err)
		}
	}

	if err := s.db.DeleteScan(id); err != nil {
		return fmt.Errorf("deleting scan from database: %w", err)
	}
	return nil
}

// GetScanFile retrieves the stored source file for a scan
func (s *Service) GetScanFile(id string) ([]byte, string, error) {
	scan, err := s.db.GetScan(id)
	if err != nil {
		return nil, "", fmt.Errorf("getting scan: %w", err)
	}

	data, err := s.storage.Get(scan.Filename)
	if err != nil {
		return nil, "", fmt.Errorf("getting scan file: %w", err)
	}

	return data, scan.ContentType, nil
}

// ExportScan renders a stored scan's records as TSV
func (s *Service) ExportScan(id string) (string, error) {
	scan, err := s.db.GetScan(id)
	if err != nil {
		return "", fmt.Errorf("getting scan: %w", err)
	}
	return TSV(scan.Products), nil
}

// ExtractText runs the extraction engine over already-recognized text,
// bypassing upload and recognition
func (s *Service) ExtractText(text string) extract.Result {
	return s.engine.Extract(text)
}
