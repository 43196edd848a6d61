package loader

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/jwtly10/barlens/internal/types"
)

// LoadCSV reads bars from a CSV file with a header row of
// timestamp,open,high,low,close,volume. Timestamps are RFC 3339 and must be
// in ascending order.
func LoadCSV(path string) ([]types.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bar data: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read bar data: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("bar data %s has no rows", path)
	}

	bars := make([]types.Bar, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != 6 {
			return nil, fmt.Errorf("row %d: expected 6 columns, got %d", i+2, len(rec))
		}

		ts, err := time.Parse(time.RFC3339, rec[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: parse timestamp: %w", i+2, err)
		}

		fields := make([]float64, 5)
		for j, raw := range rec[1:] {
			fields[j], err = strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: parse %q: %w", i+2, raw, err)
			}
		}

		if len(bars) > 0 && !ts.After(bars[len(bars)-1].Timestamp) {
			return nil, fmt.Errorf("row %d: timestamps must be strictly increasing", i+2)
		}

		bars = append(bars, types.Bar{
			Timestamp: ts,
			Open:      fields[0],
			High:      fields[1],
			Low:       fields[2],
			Close:     fields[3],
			Volume:    fields[4],
		})
	}

	slog.Info("Loaded bars", "path", path, "count", len(bars))
	return bars, nil
}
