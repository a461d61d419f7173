package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"

	"chess-position/board"
)

func main() {
	fen := flag.String("fen", board.FENStartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required unless -suite is given)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	workers := flag.Int("workers", 0, "Split root moves over N goroutines (0 runs serially)")
	verify := flag.Bool("verify", false, "Compare the divide table against dragontoothmg")
	suite := flag.String("suite", "", "EPD suite with ;D<n> <nodes> fields (.zst files are decompressed)")
	maxDepth := flag.Int("maxdepth", 0, "Skip suite entries deeper than this (0 keeps all)")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *suite != "" {
		failed, err := runSuite(ctx, log, *suite, *maxDepth, *workers)
		if err != nil {
			log.Fatal().Err(err).Str("suite", *suite).Msg("suite aborted")
		}
		if failed > 0 {
			log.Error().Int("failed", failed).Msg("suite finished with mismatches")
			os.Exit(1)
		}
		log.Info().Msg("suite passed")
		return
	}

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		log.Fatal().Err(err).Msg("parse FEN")
	}

	if *verify {
		diffs, err := verifyDivide(*fen, pos, *depth)
		if err != nil {
			log.Fatal().Err(err).Msg("verify")
		}
		for _, d := range diffs {
			log.Error().Str("move", d.move).Uint64("nodes", d.got).Uint64("reference", d.want).Msg("divide mismatch")
		}
		if len(diffs) > 0 {
			os.Exit(1)
		}
		log.Info().Int("depth", *depth).Msg("divide agrees with dragontoothmg")
		return
	}

	// Optional divide output
	if *divide {
		var div map[board.Move]uint64
		if *workers > 0 {
			div, err = board.PerftParallel(ctx, pos, *depth, *workers)
			if err != nil {
				log.Fatal().Err(err).Msg("parallel divide")
			}
		} else {
			div = board.PerftDivide(pos, *depth)
		}
		printDivide(os.Stdout, div)
		return
	}

	// Optional CPU profiling
	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			log.Fatal().Err(err).Msg("creating cpuprofile")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("start cpu profile")
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	// Timing loop
	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		if *workers > 0 {
			div, err := board.PerftParallel(ctx, pos, *depth, *workers)
			if err != nil {
				log.Error().Err(err).Int("iteration", i).Msg("perft interrupted")
				break
			}
			totalNodes += board.Sum(div)
		} else {
			totalNodes += board.Perft(pos, *depth)
		}
		log.Debug().Int("iteration", i).Uint64("nodes", totalNodes).Msg("perft done")
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	// Optional heap profile after run
	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			log.Fatal().Err(err).Msg("creating memprofile")
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal().Err(err).Msg("write heap profile")
		}
		_ = f.Close()
	}
}
