// Package stream implements the line-oriented harness around the cusip
// library: it reads newline-delimited candidate identifiers, classifies
// each via cusip.Parse, optionally repairs check-digit defects, and
// accumulates a Tally for the run summary and exit status.
//
// The library itself stays pure; all I/O, logging, and counting live
// here.
package stream

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/finwire/cusip"
)

// Processor validates a stream of candidate identifiers, one per line.
//
// Each line is independent, so with Jobs > 1 lines are fanned out to a
// pool of workers; every worker keeps its own Tally, merged after the
// pool drains. Output line order is preserved only in sequential mode.
type Processor struct {
	// Fix enables repair mode: valid lines and lines whose only defect
	// is an incorrect check digit are written to Out, the latter with a
	// freshly computed check digit. Lines with any other defect are
	// omitted; no repair is attempted for them.
	Fix bool
	// Jobs is the number of concurrent workers. Values below 2 select
	// the sequential path.
	Jobs int
	// Out receives validated and repaired identifiers in fix mode.
	Out io.Writer
	// Log receives per-line diagnostics for structurally invalid input.
	// Nil disables logging.
	Log *zap.Logger
}

// Run processes in until EOF and returns the run's tally. The returned
// error reports an I/O failure or context cancellation, never a
// malformed input line: those are counted and logged instead.
func (p *Processor) Run(ctx context.Context, in io.Reader) (Tally, error) {
	if p.Jobs > 1 {
		return p.runParallel(ctx, in)
	}

	var t Tally
	err := eachLine(in, func(line string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return p.processLine(line, &t, p.Out)
	})
	return t, err
}

// eachLine invokes fn for every newline-delimited line of in, without
// any line-length limit: an over-long line is still a line, to be
// counted bad by the caller rather than aborting the run. Trailing \n
// and \r\n are stripped; a final unterminated line is still delivered.
func eachLine(in io.Reader, fn func(string) error) error {
	r := bufio.NewReader(in)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			trimmed := strings.TrimSuffix(line, "\n")
			trimmed = strings.TrimSuffix(trimmed, "\r")
			if ferr := fn(trimmed); ferr != nil {
				return ferr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("stream: read input: %w", err)
		}
	}
}

// runParallel fans lines out to Jobs workers. A reader goroutine feeds
// the channel; each worker tallies locally and merges once on exit.
func (p *Processor) runParallel(ctx context.Context, in io.Reader) (Tally, error) {
	g, ctx := errgroup.WithContext(ctx)
	lines := make(chan string, p.Jobs)

	g.Go(func() error {
		defer close(lines)
		return eachLine(in, func(line string) error {
			select {
			case lines <- line:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	})

	var (
		mu    sync.Mutex
		total Tally
	)
	out := &lockedWriter{w: p.Out}
	for i := 0; i < p.Jobs; i++ {
		g.Go(func() error {
			var local Tally
			defer func() {
				mu.Lock()
				total.merge(local)
				mu.Unlock()
			}()
			for line := range lines {
				if err := p.processLine(line, &local, out); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return total, err
	}
	return total, nil
}

// processLine classifies a single candidate line into t and, in fix
// mode, writes valid and repaired identifiers to out. The returned error
// reports a write failure only.
func (p *Processor) processLine(line string, t *Tally, out io.Writer) error {
	t.Total++

	c, err := cusip.Parse(line)
	if err == nil {
		t.Good++
		if p.Fix {
			return p.emit(out, c)
		}
		return nil
	}

	t.Bad++

	var checkErr cusip.IncorrectCheckDigitError
	if errors.As(err, &checkErr) {
		if !p.Fix {
			return nil
		}
		// Parse reached the checksum stage, so the first 8 characters
		// already passed the alphabet scan and ParsePayload cannot fail.
		payload, perr := cusip.ParsePayload(line[:8])
		if perr != nil {
			return fmt.Errorf("stream: repair %q: %w", line, perr)
		}
		t.Fixed++
		return p.emit(out, cusip.Build(payload))
	}

	// Wrong length or bad character: never repairable, never emitted.
	if p.Log != nil {
		p.Log.Warn("rejected input",
			zap.String("input", line),
			zap.Error(err),
		)
	}
	return nil
}

func (p *Processor) emit(out io.Writer, c cusip.CUSIP) error {
	if _, err := fmt.Fprintln(out, c); err != nil {
		return fmt.Errorf("stream: write output: %w", err)
	}
	return nil
}

// lockedWriter serializes writes from concurrent workers. Each emitted
// identifier arrives in a single Write call, so lines never interleave.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (lw *lockedWriter) Write(b []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(b)
}
