package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jwtly10/barlens/internal/config"
	"github.com/jwtly10/barlens/internal/loader"
	"github.com/jwtly10/barlens/internal/pattern"
	"github.com/jwtly10/barlens/internal/profile"
	"github.com/jwtly10/barlens/internal/series"
	"github.com/jwtly10/barlens/internal/symbol"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid config", "error", err)
		os.Exit(1)
	}

	sym, err := symbol.NewSpec(cfg.Symbol.PipSize, cfg.Symbol.TickSize, cfg.Symbol.Digits)
	if err != nil {
		slog.Error("Invalid symbol metadata", "symbol", cfg.Symbol.Name, "error", err)
		os.Exit(1)
	}

	bars, err := loader.LoadCSV(cfg.Data.CSVPath)
	if err != nil {
		slog.Error("Failed to load bar data", "error", err)
		os.Exit(1)
	}

	s := series.Slice(bars)
	last := series.LastIndex(s)

	// Pattern hits over the tail of the series
	start := last - cfg.Patterns.Lookback + 1
	if start < 2 {
		start = 2
	}
	fmt.Printf("=== Pattern hits (%s, last %d bars) ===\n", cfg.Symbol.Name, last-start+1)
	for i := start; i <= last; i++ {
		matched, err := pattern.PatternsOf(s, i)
		if err != nil {
			slog.Error("Pattern classification failed", "index", i, "error", err)
			os.Exit(1)
		}
		if len(matched) == 0 {
			continue
		}
		b := s.At(i)
		fmt.Printf("%s | %-7s | %v\n", b.Timestamp.Format("2006-01-02 15:04"), pattern.TypeOf(b), matched)
	}

	periods := cfg.Profile.Periods
	if periods > last+1 {
		periods = last + 1
	}

	levels, err := profile.VolumeProfile(s, sym, last, periods, cfg.Profile.StepInPips)
	if err != nil {
		slog.Error("Volume profile failed", "error", err)
		os.Exit(1)
	}

	bands, err := profile.Combine(levels, cfg.Profile.CombineWidth)
	if err != nil {
		slog.Error("Level combination failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("\n=== Volume profile (%d bars, %d bands) ===\n", periods, len(bands))
	for _, band := range bands {
		fmt.Printf("%.*f | bull: %8d | bear: %8d\n", cfg.Symbol.Digits, band.Level, band.BullishVolume, band.BearishVolume)
	}
}
