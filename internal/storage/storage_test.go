package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixed = time.Date(2024, time.March, 20, 10, 15, 0, 0, time.UTC)

func TestNormalizeFilename(t *testing.T) {
	assert.Equal(t, "prayer_history_20240320_101500.csv", normalizeFilename("prayer history.csv", fixed))
	assert.Equal(t, "file_20240320_101500.csv", normalizeFilename("%%%.csv", fixed))
}

func TestGetContentType(t *testing.T) {
	assert.Equal(t, "text/csv", getContentType("a.CSV"))
	assert.Equal(t, "application/octet-stream", getContentType("a.bin"))
}

func TestLocalStorageSaveObject(t *testing.T) {
	dir := t.TempDir()
	ls := NewLocalStorage(filepath.Join(dir, "exports"))
	ls.now = func() time.Time { return fixed }

	location, err := ls.SaveObject(context.Background(), "history.csv", strings.NewReader("Date,Fajr\n"))
	require.NoError(t, err)
	assert.Equal(t, "/exports/history_20240320_101500.csv", location)

	data, err := os.ReadFile(filepath.Join(dir, "exports", "history_20240320_101500.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Date,Fajr\n", string(data))
}
