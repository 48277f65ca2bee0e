// Command icainfo runs the incremental-capacity pipeline on cycler exports
// and prints a summary of every resulting channel.
//
// Usage:
//
//	icainfo [flags] input ...
//
// Inputs may be CSV, TSV or XLSX files.
//
// Examples:
//
//	icainfo cell01.csv
//	icainfo -config ica.yaml -cycle 2 cell01.xlsx
//	icainfo -out cell01_ica.xlsx cell01.csv
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-ica/analysis/ica"
	"github.com/cwbudde/algo-ica/cell/segment"
	"github.com/cwbudde/algo-ica/cell/series"
	"github.com/cwbudde/algo-ica/cell/table"
	"github.com/cwbudde/algo-ica/config"
	icalog "github.com/cwbudde/algo-ica/internal/log"
)

var errUsage = errors.New("usage")

type options struct {
	configPath string
	out        string
	cycle      int
	debug      bool
	inputs     []string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	switch {
	case err == nil:
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		os.Exit(2)
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("icainfo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "YAML configuration file (default: ica.yaml if present)")
	fs.StringVar(&o.out, "out", "", "write the processed channels of a single input to this XLSX file")
	fs.IntVar(&o.cycle, "cycle", 0, "process only this cycle number (0 processes the whole trace)")
	fs.BoolVar(&o.debug, "debug", false, "enable debug logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: icainfo [flags] input ...\n\n")
		fmt.Fprintf(stderr, "Computes dV/dQ and dQ/dV curves of battery cycler exports.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return o, err
	}

	o.inputs = fs.Args()
	if len(o.inputs) == 0 {
		fs.Usage()
		return o, errUsage
	}
	if o.out != "" && len(o.inputs) != 1 {
		fmt.Fprintf(stderr, "error: -out needs exactly one input\n")
		return o, errUsage
	}
	return o, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logger, err := icalog.New(o.debug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	p, err := ica.New(cfg, ica.WithLogger(logger))
	if err != nil {
		return err
	}

	for _, path := range o.inputs {
		s, res, err := process(ctx, p, cfg, path, o.cycle)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		logger.Info("processed", zap.String("input", path), zap.Int("samples", s.Len()))

		if err := printSummary(stdout, path, s, res); err != nil {
			return err
		}
		if o.out != "" {
			if err := writeWorkbook(o.out, s); err != nil {
				return err
			}
		}
	}
	return nil
}

func process(ctx context.Context, p *ica.Pipeline, cfg *config.Config, path string, cycle int) (*series.Series, *ica.Result, error) {
	raw, err := table.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	s, err := series.Construct(raw)
	if err != nil {
		return nil, nil, err
	}

	if cycle > 0 {
		if err := segment.Categorize(s, cfg.CurrentThreshold); err != nil {
			return nil, nil, err
		}
		parts, err := segment.Split(s)
		if err != nil {
			return nil, nil, err
		}
		part, ok := parts[cycle]
		if !ok {
			return nil, nil, fmt.Errorf("cycle %d not found, have %v", cycle, segment.Cycles(parts))
		}
		s = part
	}

	res, err := p.Run(ctx, s)
	if err != nil {
		return nil, nil, err
	}
	return s, res, nil
}

func printSummary(w io.Writer, path string, s *series.Series, res *ica.Result) error {
	if _, err := fmt.Fprintf(w, "%s: %d samples, dt %.4g s, %s, valid range [%d, %d)\n",
		path, s.Len(), res.DT, res.Direction, res.ValidStart, res.ValidEnd); err != nil {
		return err
	}
	for _, c := range res.Conditions {
		if _, err := fmt.Fprintf(w, "  note: %s\n", c); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Channel\tUnit\tFinite\tMin\tMax\n")
	fmt.Fprintf(tw, "-------\t----\t------\t---\t---\n")
	for _, name := range s.Names() {
		values := s.Values(name)
		finite, lo, hi := extent(values)
		fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%.6g\t%.6g\n", name, s.Unit(name).Symbol, finite, len(values), lo, hi)
	}
	return tw.Flush()
}

// extent returns the number of finite samples and their range.
func extent(values []float64) (finite int, lo, hi float64) {
	lo, hi = math.NaN(), math.NaN()
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if finite == 0 || v < lo {
			lo = v
		}
		if finite == 0 || v > hi {
			hi = v
		}
		finite++
	}
	return finite, lo, hi
}

func writeWorkbook(path string, s *series.Series) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return table.WriteXLSX(f, s.Table(), table.DefaultSheet)
}
