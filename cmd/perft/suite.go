package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"chess-position/board"
)

// suiteEntry is one EPD line: a position and its expected perft counts.
type suiteEntry struct {
	line   int
	fen    string
	depths []int
	nodes  []uint64
}

// parseSuite reads lines of the form
//
//	<fen> ;D1 20 ;D2 400 ;D3 8902
//
// Blank lines and lines starting with # are skipped.
func parseSuite(r io.Reader) ([]suiteEntry, error) {
	var entries []suiteEntry
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ";")
		e := suiteEntry{line: n, fen: strings.TrimSpace(fields[0])}
		for _, f := range fields[1:] {
			parts := strings.Fields(f)
			if len(parts) != 2 || len(parts[0]) < 2 || parts[0][0] != 'D' {
				return nil, fmt.Errorf("line %d: bad field %q", n, f)
			}
			d, err := strconv.Atoi(parts[0][1:])
			if err != nil || d <= 0 {
				return nil, fmt.Errorf("line %d: bad depth %q", n, parts[0])
			}
			nodes, err := strconv.ParseUint(parts[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad node count %q: %w", n, parts[1], err)
			}
			e.depths = append(e.depths, d)
			e.nodes = append(e.nodes, nodes)
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// openSuite opens path, decompressing it when it ends in .zst.
func openSuite(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".zst") {
		return f, nil
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &zstdFile{Decoder: dec, f: f}, nil
}

type zstdFile struct {
	*zstd.Decoder
	f *os.File
}

func (z *zstdFile) Close() error {
	z.Decoder.Close()
	return z.f.Close()
}

// runSuite checks every entry of the suite at path and returns the number of
// mismatching depths. Entries are spread over workers goroutines.
func runSuite(ctx context.Context, log zerolog.Logger, path string, maxDepth, workers int) (int, error) {
	rc, err := openSuite(path)
	if err != nil {
		return 0, err
	}
	entries, err := parseSuite(rc)
	rc.Close()
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	log.Info().Int("entries", len(entries)).Int("workers", workers).Msg("running suite")

	var failed atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan suiteEntry)
	g.Go(func() error {
		defer close(jobs)
		for _, e := range entries {
			select {
			case jobs <- e:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < workers; w++ {
		wlog := log.With().Int("worker_id", w).Logger()
		g.Go(func() error {
			for e := range jobs {
				n, err := checkEntry(ctx, wlog, e, maxDepth)
				if err != nil {
					return err
				}
				failed.Add(int64(n))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return int(failed.Load()), err
	}
	return int(failed.Load()), nil
}

func checkEntry(ctx context.Context, log zerolog.Logger, e suiteEntry, maxDepth int) (int, error) {
	pos, err := board.ParseFEN(e.fen)
	if err != nil {
		return 0, fmt.Errorf("line %d: %w", e.line, err)
	}
	failed := 0
	for i, d := range e.depths {
		if maxDepth > 0 && d > maxDepth {
			continue
		}
		if err := ctx.Err(); err != nil {
			return failed, err
		}
		start := time.Now()
		got := board.Perft(pos, d)
		ev := log.Debug()
		if got != e.nodes[i] {
			failed++
			ev = log.Error()
		}
		ev.Int("line", e.line).Str("fen", e.fen).Int("depth", d).
			Uint64("nodes", got).Uint64("expected", e.nodes[i]).
			Dur("elapsed", time.Since(start)).Msg("perft")
	}
	return failed, nil
}
