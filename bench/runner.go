package bench

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/5l1v3r1/gason/gason"
)

// Result holds the outcome of benchmarking one input.
type Result struct {
	Name       string
	SourceSize int // bytes of one copy of the input
	Iterations int
	ParseTime  time.Duration // total across all iterations
	WalkTime   time.Duration // total across all iterations
	Stat       Stat
}

// Throughput returns the parse rate in MiB/s across all iterations.
func (r Result) Throughput() float64 {
	secs := r.ParseTime.Seconds()
	if secs == 0 {
		return 0
	}
	return float64(r.SourceSize) * float64(r.Iterations) / secs / (1 << 20)
}

// Run parses src `iterations` times into a private scratch buffer
// (the parse is destructive, so every iteration gets a fresh copy),
// then walks the final tree the same number of times. The arena is
// reset between parses, never reallocated; pass nil to use a private
// one, or share an arena across inputs to keep its zones warm.
func Run(name string, src []byte, iterations int, a *gason.Arena) (Result, error) {
	if iterations <= 0 {
		return Result{}, fmt.Errorf("bench: iterations must be positive, got %d", iterations)
	}
	r := Result{Name: name, SourceSize: len(src), Iterations: iterations}

	buf := make([]byte, len(src))
	if a == nil {
		a = new(gason.Arena)
	}

	start := time.Now()
	for i := 0; i < iterations; i++ {
		copy(buf, src)
		a.Reset()
		if _, end, st := gason.ParseStatus(buf, a); st != gason.OK {
			return r, fmt.Errorf("bench: %s: %w", name, &gason.ParseError{Status: st, Offset: end})
		}
	}
	r.ParseTime = time.Since(start)

	// One more untimed parse to walk; the timed ones were reset away.
	copy(buf, src)
	a.Reset()
	doc, err := gason.Parse(buf, a)
	if err != nil {
		return r, err
	}

	start = time.Now()
	for i := 0; i < iterations; i++ {
		s := Collect(doc)
		if i == 0 {
			r.Stat = s
		} else if s != r.Stat {
			return r, errors.New("bench: traversal is not deterministic")
		}
	}
	r.WalkTime = time.Since(start)
	return r, nil
}

// WriteCSV writes one row per result.
func WriteCSV(w io.Writer, results []Result) {
	fmt.Fprintln(w, "name,size,iterations,objects,arrays,numbers,strings,trues,falses,nulls,members,elements,string_bytes,parse_ns,walk_ns,mib_per_s")
	for _, r := range results {
		s := r.Stat
		fmt.Fprintf(w, "%s,%d,%d,%d,%d,%d,%d,%d,%d,%d,%d,%d,%d,%d,%d,%.3f\n",
			r.Name, r.SourceSize, r.Iterations,
			s.Objects, s.Arrays, s.Numbers, s.Strings, s.Trues, s.Falses, s.Nulls,
			s.Members, s.Elements, s.StringBytes,
			r.ParseTime.Nanoseconds(), r.WalkTime.Nanoseconds(), r.Throughput())
	}
}

// WriteMarkdown writes a summary table for embedding in docs.
func WriteMarkdown(w io.Writer, results []Result) {
	fmt.Fprintf(w, "| Input | Size | Iter | Objects | Arrays | Numbers | Strings | Parse | Walk | MiB/s |\n")
	fmt.Fprintf(w, "|-------|------|------|---------|--------|---------|---------|-------|------|-------|\n")
	for _, r := range results {
		s := r.Stat
		fmt.Fprintf(w, "| %s | %d | %d | %d | %d | %d | %d | %s | %s | %.1f |\n",
			r.Name, r.SourceSize, r.Iterations,
			s.Objects, s.Arrays, s.Numbers, s.Strings,
			r.ParseTime, r.WalkTime, r.Throughput())
	}
}
