package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/formica/config"
)

// csvFile appends records to a CSV file, writing the header once.
type csvFile struct {
	f             *os.File
	headerWritten bool
}

func openCSV(dir, name string) (*csvFile, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvFile{f: f}, nil
}

// write marshals records, a slice of csv-tagged structs.
func (c *csvFile) write(records any) error {
	var w io.Writer = c.f
	if !c.headerWritten {
		if err := gocsv.Marshal(records, w); err != nil {
			return err
		}
		c.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, w)
}

func (c *csvFile) close() error {
	if c == nil || c.f == nil {
		return nil
	}
	return c.f.Close()
}

// OutputManager writes run output: telemetry.csv, perf.csv, bookmarks.csv
// and a config.yaml snapshot.
type OutputManager struct {
	dir       string
	telemetry *csvFile
	perf      *csvFile
	bookmarks *csvFile
}

// NewOutputManager creates the output directory and files.
// Returns nil if dir is empty (output disabled); all methods accept a nil receiver.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	var err error
	if om.telemetry, err = openCSV(dir, "telemetry.csv"); err != nil {
		return nil, err
	}
	if om.perf, err = openCSV(dir, "perf.csv"); err != nil {
		om.Close()
		return nil, err
	}
	if om.bookmarks, err = openCSV(dir, "bookmarks.csv"); err != nil {
		om.Close()
		return nil, err
	}
	return om, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry appends a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := om.telemetry.write([]WindowStats{stats}); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// WritePerf appends a performance record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int64) error {
	if om == nil {
		return nil
	}
	if err := om.perf.write([]PerfStatsCSV{stats.ToCSV(windowEnd)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteBookmark appends a bookmark record to bookmarks.csv.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	if err := om.bookmarks.write([]Bookmark{b}); err != nil {
		return fmt.Errorf("writing bookmark: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes all output files and returns the first error.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	for _, c := range []*csvFile{om.telemetry, om.perf, om.bookmarks} {
		if err := c.close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
