package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"sjsage522/dealcollector/internal/crawler"
	"sjsage522/dealcollector/logger"
	crawlerrors "sjsage522/dealcollector/pkg/errors"
)

const utf8BOM = "\ufeff"

// Header is the column row of the output file
var Header = []string{
	"category", "platform", "productName", "currentPrice", "originalPrice",
	"badge", "sourceSite", "link", "image", "color",
}

// CSVSink buffers records and writes them to path in one atomic step.
// It is safe for concurrent use.
type CSVSink struct {
	mu      sync.Mutex
	path    string
	records []crawler.ListingRecord
}

// NewCSVSink creates a sink for path. Nothing touches the disk before Flush.
func NewCSVSink(path string) *CSVSink {
	return &CSVSink{path: path}
}

// Append buffers records in order
func (s *CSVSink) Append(records ...crawler.ListingRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
}

// Flush writes every buffered record to a temp file next to path and renames
// it over path. An empty buffer is an error and leaves path untouched.
func (s *CSVSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.records) == 0 {
		return crawlerrors.NewSink("refusing to write an empty batch", nil)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return crawlerrors.NewSink("create output dir", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+"-*.tmp")
	if err != nil {
		return crawlerrors.NewSink("create temp file", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := writeRecords(tmp, s.records); err != nil {
		_ = tmp.Close()
		return crawlerrors.NewSink("write records", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return crawlerrors.NewSink("sync temp file", err)
	}
	if err := tmp.Close(); err != nil {
		return crawlerrors.NewSink("close temp file", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return crawlerrors.NewSink("chmod temp file", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return crawlerrors.NewSink(fmt.Sprintf("rename to %s", s.path), err)
	}

	logger.ForSink().Info().
		Str("path", s.path).
		Int("records", len(s.records)).
		Msg("output written")

	s.records = nil
	return nil
}

func writeRecords(f *os.File, records []crawler.ListingRecord) error {
	if _, err := f.WriteString(utf8BOM); err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	for _, r := range records {
		if err := w.Write(row(r)); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func row(r crawler.ListingRecord) []string {
	return []string{
		r.Category,
		r.Platform,
		r.ProductName,
		strconv.Itoa(r.CurrentPrice),
		strconv.Itoa(r.OriginalPrice),
		string(r.Badge),
		r.SourceSite,
		r.Link,
		r.Image,
		r.Color,
	}
}
