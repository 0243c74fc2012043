package collector

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"IchiVSA/internal/model"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bars.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const sampleCSV = `date,open,high,low,close,volume
2024-01-02,100,102,99,101,1500
2024-01-03,101,103,100,102,1600
2024-01-04,102,104,101,103,1700
`

func TestCSVFetcher_Parse(t *testing.T) {
	f := NewCSVFetcher(writeCSV(t, sampleCSV))
	bars, err := f.FetchBars("ignored", 300)
	if err != nil {
		t.Fatal(err)
	}
	if len(bars) != 3 {
		t.Fatalf("expected 3 bars, got %d", len(bars))
	}

	first := bars[0]
	wantTime := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	if !first.Time.Equal(wantTime) {
		t.Errorf("time: expected %v, got %v", wantTime, first.Time)
	}
	if first.Open != 100 || first.High != 102 || first.Low != 99 || first.Close != 101 || first.Volume != 1500 {
		t.Errorf("first bar fields wrong: %+v", first)
	}
}

func TestCSVFetcher_TrimsToDays(t *testing.T) {
	f := NewCSVFetcher(writeCSV(t, sampleCSV))
	bars, err := f.FetchBars("ignored", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(bars) != 2 {
		t.Fatalf("expected trim to 2 bars, got %d", len(bars))
	}
	if bars[1].Close != 103 {
		t.Errorf("trim should keep the most recent bars, got last close %v", bars[1].Close)
	}
}

func TestCSVFetcher_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"header only", "date,open,high,low,close,volume\n"},
		{"bad date", "date,open,high,low,close,volume\n01/02/2024,100,102,99,101,1500\n"},
		{"bad number", "date,open,high,low,close,volume\n2024-01-02,100,102,99,abc,1500\n"},
		{"missing columns", "date,open,high,low,close\n2024-01-02,100,102,99,101\n"},
	}
	for _, tt := range tests {
		f := NewCSVFetcher(writeCSV(t, tt.content))
		if _, err := f.FetchBars("ignored", 300); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}

	if _, err := NewCSVFetcher("/nonexistent/bars.csv").FetchBars("ignored", 300); err == nil {
		t.Error("missing file: expected error")
	}
}

func TestCollect_Validates(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	good := []model.OHLCV{
		{Time: t0, Open: 100, High: 101, Low: 99, Close: 100.5, Volume: 1000},
		{Time: t0.AddDate(0, 0, 1), Open: 100.5, High: 102, Low: 100, Close: 101, Volume: 1100},
	}

	c := NewCollector(&MockFetcher{Bars: good}, "TEST", 300)
	bars, err := c.Collect()
	if err != nil {
		t.Fatal(err)
	}
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}

	bad := make([]model.OHLCV, len(good))
	copy(bad, good)
	bad[1].Time = bad[0].Time
	c = NewCollector(&MockFetcher{Bars: bad}, "TEST", 300)
	if _, err := c.Collect(); err == nil {
		t.Error("expected error for unordered series")
	}
}

func TestCollect_FetchError(t *testing.T) {
	c := NewCollector(&failingFetcher{}, "TEST", 300)
	if _, err := c.Collect(); !errors.Is(err, errFetchFailed) {
		t.Errorf("expected wrapped fetch error, got %v", err)
	}
}

var errFetchFailed = errors.New("fetch failed")

type failingFetcher struct{}

func (f *failingFetcher) Name() string { return "failing" }

func (f *failingFetcher) FetchBars(string, int) ([]model.OHLCV, error) {
	return nil, errFetchFailed
}

func TestGenerateMockBars(t *testing.T) {
	bars := GenerateMockBars(5000, 100)
	if len(bars) != 100 {
		t.Fatalf("expected 100 bars, got %d", len(bars))
	}
	if err := model.ValidateSeries(bars); err != nil {
		t.Errorf("mock series should validate: %v", err)
	}
}
