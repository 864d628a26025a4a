package interaction

import (
	"encoding/csv"
	"errors"
	"faqbot/app/config"
	"faqbot/app/service/resolver"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/samber/do"
)

var _ Log = (*FileLog)(nil)

// FileLog keeps records in a CSV file with a date,time,question,match_type header.
// The mutex only serializes access inside this process.
type FileLog struct {
	path string
	mu   sync.RWMutex
}

func New(di *do.Injector) (*FileLog, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return NewFileLog(cfg.Analytics.Path)
}

func NewFileLog(path string) (*FileLog, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create analytics directory: %w", err)
		}
	}

	return &FileLog{path: path}, nil
}

func (l *FileLog) Path() string {
	return l.path
}

// Append adds one row, writing the header first when the file is new or empty.
func (l *FileLog) Append(rec Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open analytics file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat analytics file: %w", err)
	}

	writer := csv.NewWriter(file)

	if info.Size() == 0 {
		if err = writer.Write(header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	if err = writer.Write(rec.row()); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	writer.Flush()
	if err = writer.Error(); err != nil {
		return fmt.Errorf("failed to flush writer: %w", err)
	}

	return nil
}

// LoadAll reads the whole file in order. A missing file is an empty log.
// Rows with a wrong field count or an unknown match type are skipped.
func (l *FileLog) LoadAll() ([]Record, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]Record, 0)

	file, err := os.Open(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open analytics file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headerRow, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns, err := columnIndex(headerRow)
	if err != nil {
		return nil, err
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		line, _ := reader.FieldPos(0)

		if len(row) != len(headerRow) {
			slog.Warn("Skipping malformed analytics row", "line", line, "fields", len(row))
			continue
		}

		category, err := resolver.ParseCategory(row[columns["match_type"]])
		if err != nil {
			slog.Warn("Skipping analytics row", "line", line, "error", err)
			continue
		}

		result = append(result, Record{
			Date:      row[columns["date"]],
			Time:      row[columns["time"]],
			Question:  row[columns["question"]],
			MatchType: category,
		})
	}

	return result, nil
}

// Clear removes the file. Clearing an absent log is not an error.
func (l *FileLog) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.Remove(l.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove analytics file: %w", err)
	}

	slog.Info("Analytics cleared", "path", l.path, "telegram", true)

	return nil
}

func columnIndex(headerRow []string) (map[string]int, error) {
	columns := make(map[string]int, len(headerRow))
	for i, name := range headerRow {
		columns[name] = i
	}

	for _, name := range header {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("analytics file has no %q column", name)
		}
	}

	return columns, nil
}
