package bulkfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusgate/admissions/internal/pkg/bulkfile"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExtractIdentifiers_Text(t *testing.T) {
	path := writeFile(t, "students.txt", "2026/1/00001cs\n  2026/1/00002cs  \n\n2026/1/00003cy\n")

	ids, err := bulkfile.ExtractIdentifiers(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026/1/00001cs", "2026/1/00002cs", "2026/1/00003cy"}, ids)
}

func TestExtractIdentifiers_CSV(t *testing.T) {
	// only the first column carries the identifier
	path := writeFile(t, "students.csv", "2026/1/00001cs,adaeze okafor\n2026/1/00002cs,ngozi eze\n")

	ids, err := bulkfile.ExtractIdentifiers(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026/1/00001cs", "2026/1/00002cs"}, ids)
}

func TestExtractIdentifiers_RejectsOtherExtensions(t *testing.T) {
	path := writeFile(t, "students.xlsx", "whatever")

	_, err := bulkfile.ExtractIdentifiers(path)
	require.Error(t, err)
}

func TestExtractIdentifiers_MissingFile(t *testing.T) {
	_, err := bulkfile.ExtractIdentifiers(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}
