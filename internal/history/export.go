package history

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/model"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/storage"
)

var csvHeader = []string{"Date", "Fajr", "Dhuhr", "Asr", "Maghrib", "Isha"}

// WriteCSV writes records with a header row.
func WriteCSV(w io.Writer, records []model.PrayerTimeRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write([]string{r.Date, r.Fajr, r.Dhuhr, r.Asr, r.Maghrib, r.Isha}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type Exporter struct {
	store storage.Storage
}

func NewExporter(store storage.Storage) *Exporter {
	return &Exporter{store: store}
}

// Export renders records as CSV and saves them, returning the stored location.
func (e *Exporter) Export(ctx context.Context, records []model.PrayerTimeRecord) (string, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		return "", fmt.Errorf("render csv: %w", err)
	}

	location, err := e.store.SaveObject(ctx, "prayer-history.csv", bytes.NewReader(buf.Bytes()))
	if err != nil {
		return "", fmt.Errorf("save export: %w", err)
	}

	log.Info().Int("records", len(records)).Str("location", location).Msg("[history] export saved")
	return location, nil
}
