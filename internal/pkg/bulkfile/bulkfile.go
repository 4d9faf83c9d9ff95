// Package bulkfile extracts candidate matriculation numbers from
// admin-supplied files for bulk student operations. Identifiers are
// treated as opaque strings; lookup and validation happen downstream.
package bulkfile

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/campusgate/admissions/internal/pkg/apperrors"
)

// AcceptedExtensions lists the file types bulk import understands
var AcceptedExtensions = []string{".txt", ".csv"}

// ExtractIdentifiers reads one identifier per line (.txt) or per record
// (.csv, first field) from the given file.
func ExtractIdentifiers(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("file not found: %s", path))
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt":
		return extractFromText(path)
	case ".csv":
		return extractFromCSV(path)
	default:
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("invalid file type %q, accepted: %s", ext, strings.Join(AcceptedExtensions, ", ")))
	}
}

func extractFromText(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	defer f.Close()

	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			ids = append(ids, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	return ids, nil
}

func extractFromCSV(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // ragged rows are fine, only the first field matters

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	var ids []string
	for _, record := range records {
		if len(record) == 0 {
			continue
		}
		id := strings.TrimSpace(record[0])
		if id != "" {
			ids = append(ids, id)
		}
	}

	return ids, nil
}
