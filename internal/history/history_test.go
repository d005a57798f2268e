package history

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/model"
)

var today = time.Date(2024, time.March, 20, 9, 0, 0, 0, time.UTC)

func TestGenerate(t *testing.T) {
	records := Generate(today, DefaultDays)
	require.Len(t, records, 30)

	oldest := records[0] // i = 29
	assert.Equal(t, "2024-02-20", oldest.Date)
	assert.Equal(t, "5:35", oldest.Fajr)
	assert.Equal(t, "12:47", oldest.Dhuhr)
	assert.Equal(t, "4:35", oldest.Asr)
	assert.Equal(t, "6:52", oldest.Maghrib)
	assert.Equal(t, "8:20", oldest.Isha)

	newest := records[29] // i = 0
	assert.Equal(t, "2024-03-20", newest.Date)
	assert.Equal(t, "5:30", newest.Fajr)
	assert.Equal(t, "12:45", newest.Dhuhr)
	assert.Equal(t, "8:15", newest.Isha)
}

func TestRecentAndTail(t *testing.T) {
	records := Generate(today, DefaultDays)

	recent := Recent(records, RecentCount)
	require.Len(t, recent, 10)
	assert.Equal(t, "2024-03-20", recent[0].Date)
	assert.Equal(t, "2024-03-11", recent[9].Date)

	tail := Tail(records, ChartCount)
	require.Len(t, tail, 7)
	assert.Equal(t, "2024-03-14", tail[0].Date)

	assert.Len(t, Recent(records[:3], RecentCount), 3)
}

func TestSelectAndVariation(t *testing.T) {
	records := Generate(today, DefaultDays)

	sel, err := Select(records, "2024-03-19")
	require.NoError(t, err)
	v := VariationOf(records, sel, model.Fajr)
	assert.Equal(t, Variation{Prayer: model.Fajr, Min: "5:35", Max: "5:30", Avg: "5:35"}, v)

	_, err = Select(records, "1999-01-01")
	assert.ErrorIs(t, err, ErrNoRecord)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, Generate(today, 2)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Fajr,Dhuhr,Asr,Maghrib,Isha", lines[0])
	assert.Equal(t, "2024-03-20,5:30,12:45,4:30,6:50,8:15", lines[2])
}

type memStorage struct {
	name string
	body string
}

func (m *memStorage) SaveObject(_ context.Context, name string, body io.ReadSeeker) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.name, m.body = name, string(data)
	return "mem://" + name, nil
}

func TestExporter(t *testing.T) {
	store := &memStorage{}
	location, err := NewExporter(store).Export(context.Background(), Generate(today, 3))
	require.NoError(t, err)
	assert.Equal(t, "mem://prayer-history.csv", location)
	assert.True(t, strings.HasPrefix(store.body, "Date,Fajr"))
}
