// Package mirror maintains the spreadsheet-style record human staff read
// outside the engine. The artifact is a CSV file whose rows the trip store
// references by index; after every write the whole file is handed to an
// uploader for its cloud backing store.
package mirror

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/friomar/dispatch/infra/logger"
)

// Config locates the mirror artifact.
type Config struct {
	Path string `json:"path"`
	// DriverColumn is the zero-based index of the carrier column.
	DriverColumn int `json:"driver_column"`
	// UploadURL receives the artifact via HTTP PUT after each write. Empty
	// disables uploading.
	UploadURL string `json:"upload_url"`
}

// SetDefaults applies sane defaults. Column 21 is the carrier column of the
// company sheet.
func (c *Config) SetDefaults() {
	if c.DriverColumn <= 0 {
		c.DriverColumn = 21
	}
}

// Uploader pushes the mirror artifact to its backing store.
type Uploader interface {
	Upload(ctx context.Context, path string) error
}

// CSVMirror edits the mirror file in place.
type CSVMirror struct {
	path     string
	column   int
	uploader Uploader
	log      logger.Logger
	mu       sync.Mutex
}

// New creates a mirror over the configured file. A nil uploader makes Upload
// a no-op.
func New(cfg Config, uploader Uploader) *CSVMirror {
	return &CSVMirror{
		path:     cfg.Path,
		column:   cfg.DriverColumn,
		uploader: uploader,
		log:      logger.New("mirror"),
	}
}

// SetDriver writes the driver name into the row's carrier column and saves
// the file.
func (m *CSVMirror) SetDriver(_ context.Context, row int, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.path)
	if err != nil {
		return fmt.Errorf("read mirror: %w", err)
	}
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("parse mirror: %w", err)
	}
	if row < 0 || row >= len(records) {
		return fmt.Errorf("mirror row %d out of range (%d rows)", row, len(records))
	}
	for len(records[row]) <= m.column {
		records[row] = append(records[row], "")
	}
	prev := records[row][m.column]
	records[row][m.column] = name

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("encode mirror: %w", err)
	}
	if err := os.WriteFile(m.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write mirror: %w", err)
	}
	m.log.Infof("mirror row %d: carrier %q (was %q)", row, name, prev)
	return nil
}

// Upload hands the artifact to the configured uploader.
func (m *CSVMirror) Upload(ctx context.Context) error {
	if m.uploader == nil {
		return nil
	}
	return m.uploader.Upload(ctx, m.path)
}

// HTTPUploader PUTs the artifact to a fixed URL.
type HTTPUploader struct {
	URL    string
	Client *http.Client
}

// Upload sends the file body.
func (u *HTTPUploader) Upload(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u.URL, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/csv")
	cli := u.Client
	if cli == nil {
		cli = http.DefaultClient
	}
	resp, err := cli.Do(req)
	if err != nil {
		return fmt.Errorf("upload mirror: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("upload mirror: status %s", resp.Status)
	}
	return nil
}
