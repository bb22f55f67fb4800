// Command genmock generates a synthetic NOAA-style daily-summary CSV for
// demos and manual testing: one year of rows with a seasonally drifting
// prevailing wind direction and a sprinkling of missing measurements.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/karb_2017.csv -year 2017 -station USW00094889
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output CSV path")
	year := flag.Int("year", 2017, "calendar year to generate")
	station := flag.String("station", "USW00094889", "station identifier")
	seed := flag.Int64("seed", 1, "PRNG seed, fixed for reproducible fixtures")
	missing := flag.Float64("missing", 0.08, "probability that a wind field is missing on a given day")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if *missing < 0 || *missing > 1 {
		return fmt.Errorf("-missing must be in [0, 1], got %g", *missing)
	}

	if dir := filepath.Dir(*out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"STATION", "DATE", "AWND", "WDF2", "WDF5", "WSF2", "WSF5", "PRCP", "TMAX", "TMIN"}); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(*seed))

	day := time.Date(*year, time.January, 1, 0, 0, 0, 0, time.UTC)
	rows, complete := 0, 0
	for day.Year() == *year {
		rec := generateDay(rng, *station, day, *missing)
		if err := w.Write(rec); err != nil {
			return err
		}
		rows++
		if rec[4] != "" && rec[6] != "" {
			complete++
		}
		day = day.AddDate(0, 0, 1)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	log.Printf("wrote %s: %d rows, %d with complete WDF5/WSF5", *out, rows, complete)
	return nil
}

// generateDay produces one CSV row. The prevailing direction swings from
// southwesterly in winter to southerly in summer, with heavy scatter.
func generateDay(rng *rand.Rand, station string, day time.Time, missing float64) []string {
	phase := 2 * math.Pi * float64(day.YearDay()) / 365
	meanDir := 225 - 45*math.Sin(phase)
	dir := math.Mod(meanDir+rng.NormFloat64()*60+360, 360)

	speed := 15 + 8*rng.NormFloat64() + 5*math.Cos(phase)
	if speed < 3 {
		speed = 3
	}

	wdf5, wsf5 := fmt.Sprintf("%d", int(dir)), fmt.Sprintf("%.1f", speed)
	if rng.Float64() < missing {
		wdf5 = ""
	}
	if rng.Float64() < missing {
		wsf5 = ""
	}

	// The 2-minute pair tracks the 5-second pair with its own jitter.
	wdf2 := fmt.Sprintf("%d", int(math.Mod(dir+rng.NormFloat64()*15+360, 360)))
	wsf2 := fmt.Sprintf("%.1f", speed*0.85)

	return []string{
		station,
		day.Format("2006-01-02"),
		fmt.Sprintf("%.1f", speed*0.5),
		wdf2,
		wdf5,
		wsf2,
		wsf5,
		fmt.Sprintf("%.2f", math.Abs(rng.NormFloat64())*0.1),
		fmt.Sprintf("%d", 55+int(25*math.Sin(phase-math.Pi/2))+rng.Intn(10)),
		fmt.Sprintf("%d", 35+int(25*math.Sin(phase-math.Pi/2))+rng.Intn(10)),
	}
}
