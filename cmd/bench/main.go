// bench - gason benchmark runner
//
// Parses each input file repeatedly, walks the resulting trees, and
// prints per-file node tallies and parse/walk throughput. Inputs ending
// in .gz are decompressed first.
//
//	bench -n 100 corpus/*.json big.json.gz
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/klauspost/compress/gzip"
	"github.com/spf13/cobra"

	"github.com/5l1v3r1/gason/bench"
	"github.com/5l1v3r1/gason/gason"
)

func main() {
	var (
		iterations int
		csvPath    string
		markdown   bool
	)

	root := &cobra.Command{
		Use:           "bench [flags] file...",
		Short:         "benchmark the gason parser over JSON corpora",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var results []bench.Result
			arena := new(gason.Arena)
			for _, path := range args {
				src, err := readSource(path)
				if err != nil {
					fmt.Fprintf(os.Stderr, "skip %s: %v\n", path, err)
					continue
				}
				r, err := bench.Run(path, src, iterations, arena)
				if err != nil {
					fmt.Fprintf(os.Stderr, "skip %s: %v\n", path, err)
					continue
				}
				results = append(results, r)
			}
			if len(results) == 0 {
				return fmt.Errorf("no inputs parsed")
			}

			if markdown {
				bench.WriteMarkdown(os.Stdout, results)
			} else {
				printTable(results)
			}

			if csvPath != "" {
				f, err := os.Create(csvPath)
				if err != nil {
					return err
				}
				bench.WriteCSV(f, results)
				if err := f.Close(); err != nil {
					return err
				}
				fmt.Fprintf(os.Stderr, "CSV written to: %s\n", csvPath)
			}
			return nil
		},
	}
	root.Flags().IntVarP(&iterations, "iterations", "n", 10, "parses and walks per input")
	root.Flags().StringVar(&csvPath, "csv", "", "also write results to a CSV file")
	root.Flags().BoolVar(&markdown, "markdown", false, "print a markdown table instead of the aligned one")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readSource(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	}
	return io.ReadAll(r)
}

func printTable(results []bench.Result) {
	fmt.Printf("%8s %8s %8s %8s %8s %8s %8s %8s %8s %8s %10s %11s %11s %11s  %s\n",
		"Object", "Array", "Number", "String", "True", "False", "Null",
		"Member", "Element", "StrLen", "Size", "Walk", "Parse", "Speed", "Input")
	var totalBytes uint64
	for _, r := range results {
		s := r.Stat
		fmt.Printf("%8d %8d %8d %8d %8d %8d %8d %8d %8d %8d %10s %11s %11s %9.1f MB/s  %s\n",
			s.Objects, s.Arrays, s.Numbers, s.Strings, s.Trues, s.Falses, s.Nulls,
			s.Members, s.Elements, s.StringBytes,
			humanize.Bytes(uint64(r.SourceSize)), r.WalkTime, r.ParseTime, r.Throughput(), r.Name)
		totalBytes += uint64(r.SourceSize) * uint64(r.Iterations)
	}
	color.New(color.Bold).Printf("\n%d inputs, %s parsed in total\n", len(results), humanize.Bytes(totalBytes))
}
