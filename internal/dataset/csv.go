// Package dataset loads NOAA daily-summary CSV exports into clean wind
// samples.
package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/jmwalls/windy/internal/domain"
)

// nanMarkers are cell values treated as missing in the numeric columns.
// NOAA exports leave missing measurements empty; some station archives
// use sentinel fill values instead.
var nanMarkers = []string{"", "NA", "NaN", "nan", "-9999", "9999"}

// Columns names the three consulted CSV columns. Every other column in
// the export is ignored.
type Columns struct {
	Date      string
	Direction string
	Speed     string
}

// DefaultColumns selects the fastest-5-second wind pair from a NOAA
// daily-summaries export.
func DefaultColumns() Columns {
	return Columns{Date: "DATE", Direction: "WDF5", Speed: "WSF5"}
}

// Result holds the cleaned samples from one load along with row accounting.
type Result struct {
	Samples []domain.Sample
	Rows    int // data rows in the source table
	Dropped int // rows discarded for a missing direction or speed
}

// Load parses a daily-summary CSV from r and cleans it down to rows where
// both wind fields are present. A table with a header but no qualifying
// rows yields an empty, non-error Result; a missing required column is an
// error.
func Load(r io.Reader, cols Columns) (Result, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("read csv: %w", err)
	}

	// Validate the header and detect a table with no data rows up front.
	// The dataframe layer treats a header-only table as an error, but for
	// us it is just an empty station export.
	hasRows, err := checkHeader(raw, cols.Date, cols.Direction, cols.Speed)
	if err != nil {
		return Result{}, err
	}
	if !hasRows {
		return Result{}, nil
	}

	df := dataframe.ReadCSV(bytes.NewReader(raw),
		dataframe.HasHeader(true),
		dataframe.WithTypes(map[string]series.Type{
			cols.Date:      series.String,
			cols.Direction: series.Float,
			cols.Speed:     series.Float,
		}),
		dataframe.NaNValues(nanMarkers),
	)
	if df.Err != nil {
		return Result{}, fmt.Errorf("read csv: %w", df.Err)
	}

	dates := df.Col(cols.Date).Records()
	directions := df.Col(cols.Direction).Float()
	speeds := df.Col(cols.Speed).Float()

	samples, err := domain.CleanColumns(dates, directions, speeds)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Samples: samples,
		Rows:    df.Nrow(),
		Dropped: df.Nrow() - len(samples),
	}, nil
}

// LoadFile opens and loads a daily-summary CSV from disk.
func LoadFile(path string, cols Columns) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	return Load(f, cols)
}

// checkHeader verifies that every required column appears in the header
// row and reports whether at least one data row follows it.
func checkHeader(raw []byte, names ...string) (bool, error) {
	cr := csv.NewReader(bytes.NewReader(raw))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return false, errors.New("read csv: empty input")
	}
	if err != nil {
		return false, fmt.Errorf("read csv: %w", err)
	}

	present := make(map[string]bool, len(header))
	for _, n := range header {
		present[n] = true
	}
	for _, n := range names {
		if !present[n] {
			return false, fmt.Errorf("missing required column %q", n)
		}
	}

	if _, err := cr.Read(); errors.Is(err, io.EOF) {
		return false, nil
	}
	return true, nil
}
