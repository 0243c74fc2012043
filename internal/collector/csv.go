package collector

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"IchiVSA/internal/model"
)

// CSVFetcher loads a bar series from a local CSV file, for analysis of
// recorded or exported data. Expected header:
// date,open,high,low,close,volume with dates in 2006-01-02 form.
type CSVFetcher struct {
	Path string
}

// NewCSVFetcher creates a fetcher reading from the given file.
func NewCSVFetcher(path string) *CSVFetcher {
	return &CSVFetcher{Path: path}
}

func (f *CSVFetcher) Name() string { return "csv" }

// FetchBars reads the file and returns the last days bars, oldest first.
// The symbol argument is ignored; the file is the source of truth.
func (f *CSVFetcher) FetchBars(_ string, days int) ([]model.OHLCV, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("csv %s: no data rows", f.Path)
	}

	bars := make([]model.OHLCV, 0, len(rows)-1)
	for i, row := range rows[1:] { // skip header
		if len(row) < 6 {
			return nil, fmt.Errorf("csv row %d: want 6 columns, got %d", i+2, len(row))
		}
		ts, err := time.Parse("2006-01-02", row[0])
		if err != nil {
			return nil, fmt.Errorf("csv row %d: parse date %q: %w", i+2, row[0], err)
		}
		vals := make([]float64, 5)
		for j := 0; j < 5; j++ {
			v, err := strconv.ParseFloat(row[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("csv row %d col %d: parse %q: %w", i+2, j+2, row[j+1], err)
			}
			vals[j] = v
		}
		bars = append(bars, model.OHLCV{
			Time:   ts,
			Open:   vals[0],
			High:   vals[1],
			Low:    vals[2],
			Close:  vals[3],
			Volume: vals[4],
		})
	}

	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}
