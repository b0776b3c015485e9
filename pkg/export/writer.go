package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// timestampLayout is the fixed layout for backup filenames.
const timestampLayout = "20060102_150405"

// writeCSV writes one complete backup file for a database and returns its
// path. The file is named <database>_<timestamp>.csv so re-running a
// backup never mutates a prior output file.
//
// The rows are written to a temporary file first and renamed into place
// only after a successful flush, so a failed export never leaves a
// partial file that could be mistaken for a complete backup.
func writeCSV(dir, database string, start time.Time, header []string, rows [][]string) (string, error) {
	filename := fmt.Sprintf("%s_%s.csv", database, start.Format(timestampLayout))
	path := filepath.Join(dir, filename)
	tmpPath := path + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}

	writer := csv.NewWriter(f)
	writeErr := writer.Write(header)
	if writeErr == nil {
		writeErr = writer.WriteAll(rows)
	}
	if writeErr == nil {
		writer.Flush()
		writeErr = writer.Error()
	}

	if closeErr := f.Close(); writeErr == nil {
		writeErr = closeErr
	}

	if writeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write backup file: %w", writeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to finalize backup file: %w", err)
	}

	return path, nil
}
