// Command magicgen searches magic multipliers for every square and prints
// them as Go arrays.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"chess-position/bitboard"
)

func main() {
	seed := flag.Int64("seed", 0xC0DE, "Random seed; each square derives its own stream from it")
	slider := flag.String("slider", "both", "rook, bishop or both")
	tries := flag.Int("tries", 0, "Give up on a square after this many candidates (0 for no limit)")
	workers := flag.Int("workers", runtime.GOMAXPROCS(0), "Squares searched concurrently")
	out := flag.String("out", "", "Write the tables to this file instead of stdout")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()

	var sliders []bitboard.Slider
	switch *slider {
	case "rook":
		sliders = []bitboard.Slider{bitboard.Rook}
	case "bishop":
		sliders = []bitboard.Slider{bitboard.Bishop}
	case "both":
		sliders = []bitboard.Slider{bitboard.Rook, bitboard.Bishop}
	default:
		fmt.Fprintf(os.Stderr, "unknown -slider %q\n", *slider)
		os.Exit(2)
	}

	if err := run(log, sliders, *seed, *tries, *workers, *out); err != nil {
		log.Fatal().Err(err).Msg("magicgen")
	}
}

// run writes the tables for sliders to out, or stdout when out is empty. A
// failed search removes the partial output file.
func run(log zerolog.Logger, sliders []bitboard.Slider, seed int64, tries, workers int, out string) (err error) {
	w := io.Writer(os.Stdout)
	if out != "" {
		f, cerr := os.Create(out)
		if cerr != nil {
			return fmt.Errorf("create output: %w", cerr)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				os.Remove(out)
			}
		}()
		w = f
	}

	for _, s := range sliders {
		start := time.Now()
		magics, err := findAll(context.Background(), s, seed, tries, workers)
		if err != nil {
			return fmt.Errorf("%s magic search: %w", s, err)
		}
		log.Info().Stringer("slider", s).Dur("elapsed", time.Since(start)).Msg("found magics")
		if err := writeTable(w, s, magics); err != nil {
			return fmt.Errorf("write table: %w", err)
		}
	}
	return nil
}

// findAll runs FindMagic for all 64 squares of slider s. Square sq draws from
// its own generator seeded with seed+sq, so the result does not depend on
// scheduling.
func findAll(ctx context.Context, s bitboard.Slider, seed int64, tries, workers int) ([64]uint64, error) {
	var magics [64]uint64
	if workers <= 0 {
		workers = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	squares := make(chan bitboard.Square)
	g.Go(func() error {
		defer close(squares)
		for sq := bitboard.A1; sq <= bitboard.H8; sq++ {
			select {
			case squares <- sq:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for sq := range squares {
				rng := rand.New(rand.NewSource(seed + int64(sq)))
				m, err := bitboard.FindMagic(sq, s, rng, tries)
				if err != nil {
					return fmt.Errorf("%s %s: %w", s, sq, err)
				}
				// Each goroutine writes distinct elements.
				magics[sq] = m
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return magics, err
	}
	return magics, nil
}

func writeTable(w io.Writer, s bitboard.Slider, magics [64]uint64) error {
	if _, err := fmt.Fprintf(w, "var %sMagicNumbers = [64]uint64{\n", s); err != nil {
		return err
	}
	for i := 0; i < 64; i += 4 {
		if _, err := fmt.Fprintf(w, "\t0x%016X, 0x%016X, 0x%016X, 0x%016X,\n",
			magics[i], magics[i+1], magics[i+2], magics[i+3]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}
