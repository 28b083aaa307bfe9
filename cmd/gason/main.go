// gason - in-situ JSON parser CLI
//
// Usage:
//
//	gason validate [file]   Parse and report the first error, if any
//	gason stats [file]      Parse and print per-tag node counts
//	gason version           Print version info
//
// If no file is given, reads from stdin.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/5l1v3r1/gason/bench"
	"github.com/5l1v3r1/gason/gason"
)

const version = "1.0.0"

func main() {
	var verbose bool

	root := &cobra.Command{
		Use:           "gason",
		Short:         "single-pass in-situ JSON parser",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log timings and sizes")

	newLogger := func() *zap.Logger {
		if !verbose {
			return zap.NewNop()
		}
		log, err := zap.NewDevelopment()
		if err != nil {
			return zap.NewNop()
		}
		return log
	}

	root.AddCommand(&cobra.Command{
		Use:   "validate [file]",
		Short: "parse the input and report the first error, if any",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			defer log.Sync()

			buf, name, err := readInput(args)
			if err != nil {
				return err
			}
			start := time.Now()
			doc, err := gason.Parse(buf, new(gason.Arena))
			if err != nil {
				pe := err.(*gason.ParseError)
				line, col := lineCol(buf, pe.Offset)
				return fmt.Errorf("%s:%d:%d: %s", name, line, col, pe.Status)
			}
			log.Info("parsed",
				zap.String("input", name),
				zap.Int("bytes", len(buf)),
				zap.Int("consumed", doc.End()),
				zap.Duration("elapsed", time.Since(start)))
			if doc.End() < len(buf) {
				line, col := lineCol(buf, doc.End())
				return fmt.Errorf("%s:%d:%d: trailing data after value", name, line, col)
			}
			fmt.Printf("%s: valid (%s root)\n", name, doc.Root().Tag())
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "stats [file]",
		Short: "parse the input and print per-tag node counts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			defer log.Sync()

			buf, name, err := readInput(args)
			if err != nil {
				return err
			}
			start := time.Now()
			doc, err := gason.Parse(buf, new(gason.Arena))
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			log.Info("parsed", zap.String("input", name), zap.Duration("elapsed", time.Since(start)))

			s := bench.Collect(doc)
			fmt.Printf("%-12s %d\n", "objects", s.Objects)
			fmt.Printf("%-12s %d\n", "arrays", s.Arrays)
			fmt.Printf("%-12s %d\n", "numbers", s.Numbers)
			fmt.Printf("%-12s %d\n", "strings", s.Strings)
			fmt.Printf("%-12s %d\n", "trues", s.Trues)
			fmt.Printf("%-12s %d\n", "falses", s.Falses)
			fmt.Printf("%-12s %d\n", "nulls", s.Nulls)
			fmt.Printf("%-12s %d\n", "members", s.Members)
			fmt.Printf("%-12s %d\n", "elements", s.Elements)
			fmt.Printf("%-12s %d\n", "string bytes", s.StringBytes)
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "print version info",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gason %s\n", version)
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readInput(args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == "-" {
		buf, err := io.ReadAll(os.Stdin)
		return buf, "stdin", err
	}
	buf, err := os.ReadFile(args[0])
	return buf, args[0], err
}

func lineCol(buf []byte, offset int) (line, col int) {
	line, col = 1, 1
	for i := 0; i < offset && i < len(buf); i++ {
		if buf[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
