package main

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/tdewolff/argp"
	"github.com/tdewolff/segint"
	"github.com/tdewolff/segint/bench"
	"github.com/tdewolff/segint/gen"
	"github.com/tdewolff/segint/render"
	"github.com/tdewolff/segint/report"
	"github.com/tdewolff/segint/segfile"
	"github.com/ttacon/chalk"
	"golang.org/x/text/language"
)

type Run struct {
	File    string `short:"f" desc:"Input segment file, the fixed sample if empty"`
	All     bool   `short:"a" desc:"Print all intersection points"`
	Decimal bool   `desc:"Decimal instead of binary coordinates"`
	Method  string `short:"m" default:"sweep" desc:"Method: sweep or pairwise"`
	Timeout string `short:"t" desc:"Abort after duration, e.g. 30s"`
	Verbose bool   `short:"v" desc:"Verbose"`
}

type Check struct {
	Input     string  `index:"0" desc:"Input segment file, random inputs if empty"`
	Generator string  `short:"g" default:"grid" desc:"Generator of random inputs"`
	N         int     `short:"n" default:"50" desc:"Number of segments per random input"`
	Size      float64 `short:"s" default:"10" desc:"Size of random inputs"`
	Trials    int     `default:"100" desc:"Number of random inputs"`
	Seed      int     `default:"0" desc:"Random seed"`
	Decimal   bool    `desc:"Decimal instead of binary coordinates"`
	Verbose   bool    `short:"v" desc:"Verbose"`
}

type Bench struct {
	Trials   int    `short:"n" default:"10" desc:"Number of trials"`
	Parallel int    `short:"p" default:"1" desc:"Number of concurrent trials"`
	Method   string `short:"m" default:"sweep" desc:"Method: sweep or pairwise"`
	Chart    string `desc:"Output PNG chart of the timings"`
	Meta     string `desc:"Output JSON file with all trials"`
	Decimal  bool   `desc:"Decimal instead of binary coordinates"`
	Quiet    bool   `short:"q" desc:"Hide progress bar"`
	Input    string `index:"0" desc:"Input segment file"`
}

type Generate struct {
	Kind    string  `index:"0" desc:"Generator: circle, clustered, grid, parallel, random, star"`
	N       int     `short:"n" default:"1000" desc:"Number of segments"`
	Size    float64 `short:"s" default:"100" desc:"Size of the square containing all segments"`
	Seed    int     `default:"0" desc:"Random seed"`
	Decimal bool    `desc:"Decimal instead of binary coordinates"`
	Output  string  `short:"o" desc:"Output file"`
}

type Convert struct {
	Kind   string  `index:"0" desc:"Conversion: bin2dec, dec2bin, geojson, osm, shuffle, lengths"`
	Input  string  `index:"1" desc:"Input file"`
	Output string  `index:"2" desc:"Output file"`
	Min    float64 `default:"0.5" desc:"Minimum length factor"`
	Max    float64 `default:"2.0" desc:"Maximum length factor"`
	Seed   int     `default:"0" desc:"Random seed"`
}

type Display struct {
	Title   string `desc:"Plot title"`
	Decimal bool   `desc:"Decimal instead of binary coordinates"`
	Output  string `short:"o" desc:"Output image file (.png, .svg, .pdf)"`
	Input   string `index:"0" desc:"Input segment file"`
}

type Minimize struct {
	Decimal bool   `desc:"Decimal instead of binary coordinates"`
	Verbose bool   `short:"v" desc:"Verbose"`
	Input   string `index:"0" desc:"Input segment file"`
	Output  string `index:"1" desc:"Output segment file"`
}

func main() {
	root := argp.NewCmd(&Run{}, "Segment intersection sweep and benchmark toolkit")
	root.AddCmd(&Run{}, "run", "Find intersections and report them or a summary")
	root.AddCmd(&Check{}, "check", "Compare the sweep against the pairwise reference")
	root.AddCmd(&Bench{}, "bench", "Run repeated trials and report timings")
	root.AddCmd(&Generate{}, "generate", "Generate a segment file")
	root.AddCmd(&Convert{}, "convert", "Convert segment files")
	root.AddCmd(&Display{}, "display", "Plot segments and their intersections")
	root.AddCmd(&Minimize{}, "minimize", "Reduce a failing input to a minimal subset")
	root.Parse()
	root.PrintHelp()
}

func format(decimal bool) segfile.Format {
	if decimal {
		return segfile.Decimal
	}
	return segfile.Binary
}

func logf(verbose bool, color chalk.Color, format string, args ...interface{}) {
	if !verbose {
		return
	}
	log.Print(color)
	log.Printf(format, args...)
	log.Print(chalk.Reset)
}

func errorf(format string, args ...interface{}) error {
	fmt.Fprintln(os.Stderr, chalk.Red.Color("ERROR: "+fmt.Sprintf(format, args...)))
	return argp.ShowUsage
}

func (cmd *Run) Run() error {
	query, ok := bench.Methods[cmd.Method]
	if !ok {
		return errorf("unknown method %q", cmd.Method)
	}

	segs := segfile.Sample()
	if cmd.File != "" {
		var err error
		if segs, err = segfile.Open(cmd.File, format(cmd.Decimal)); err != nil {
			return err
		}
	}
	logf(cmd.Verbose, chalk.Blue, "%d segments", len(segs))

	ctx := context.Background()
	if cmd.Timeout != "" {
		timeout, err := time.ParseDuration(cmd.Timeout)
		if err != nil {
			return errorf("bad timeout: %v", err)
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if cmd.All {
		prec := 0
		if cmd.Decimal {
			prec = report.Precision
		}
		n, err := report.WriteWalk(os.Stdout, prec, func(fn func(segint.Pair) error) error {
			if cmd.Method == "pairwise" {
				pairs, err := segint.Pairwise(segs)
				if err != nil {
					return err
				}
				for _, pair := range pairs {
					if err := fn(pair); err != nil {
						return err
					}
				}
				return nil
			}
			sweeper, err := segint.NewSweeper(segs)
			if err != nil {
				return err
			}
			return sweeper.Walk(ctx, fn)
		})
		if err != nil {
			return err
		}
		logf(cmd.Verbose, chalk.Green, "%d intersection points", n)
		return nil
	}

	summary, err := report.Measure(func() (int, error) {
		return query(ctx, segs)
	})
	if err != nil {
		return err
	}
	_, err = summary.WriteTo(os.Stdout)
	return err
}

func printMismatch(m bench.Mismatch) {
	for _, pair := range m.Missing {
		fmt.Println(chalk.Yellow.Color("missing: " + pair.String()))
	}
	for _, pair := range m.Extra {
		fmt.Println(chalk.Magenta.Color("extra:   " + pair.String()))
	}
}

func (cmd *Check) Run() error {
	if cmd.Input != "" {
		segs, err := segfile.Open(cmd.Input, format(cmd.Decimal))
		if err != nil {
			return err
		}
		m, err := bench.Check(segs)
		if err != nil {
			return err
		} else if !m.Ok() {
			printMismatch(m)
			return errors.Errorf("%s: %d missing and %d extra intersections", cmd.Input, len(m.Missing), len(m.Extra))
		}
		fmt.Println("OK")
		return nil
	}

	generator, ok := gen.Generators[cmd.Generator]
	if !ok {
		return errorf("unknown generator %q, must be one of %s", cmd.Generator, strings.Join(gen.Names(), ", "))
	}
	rnd := rand.New(rand.NewPCG(uint64(cmd.Seed), 0))
	for i := 0; i < cmd.Trials; i++ {
		segs := generator(rnd, cmd.N, cmd.Size)
		m, err := bench.Check(segs)
		if err == nil && m.Ok() {
			logf(cmd.Verbose, chalk.Green, "trial %d: OK", i+1)
			continue
		}

		filename := fmt.Sprintf("failed-%d-%d.csv", cmd.Seed, i+1)
		if err := segfile.Create(filename, segs, format(cmd.Decimal)); err != nil {
			return err
		}
		if err != nil {
			return errors.Wrapf(err, "trial %d written to %s", i+1, filename)
		}
		printMismatch(m)
		return errors.Errorf("trial %d: %d missing and %d extra intersections, written to %s", i+1, len(m.Missing), len(m.Extra), filename)
	}
	fmt.Printf("OK: %d trials\n", cmd.Trials)
	return nil
}

func (cmd *Bench) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	segs, err := segfile.Open(cmd.Input, format(cmd.Decimal))
	if err != nil {
		return err
	}

	opts := bench.Options{
		Trials:   cmd.Trials,
		Parallel: cmd.Parallel,
		Method:   cmd.Method,
	}
	if !cmd.Quiet {
		opts.Progress = os.Stderr
	}
	res, err := bench.Run(context.Background(), cmd.Input, segs, opts)
	if err != nil {
		return err
	}

	fmt.Printf("run %v\n", res.ID)
	if err := res.Stats().Print(os.Stdout, language.English); err != nil {
		return err
	}

	if cmd.Meta != "" {
		f, err := os.Create(cmd.Meta)
		if err != nil {
			return err
		}
		if err := res.WriteMeta(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	if cmd.Chart != "" {
		f, err := os.Create(cmd.Chart)
		if err != nil {
			return err
		}
		if err := res.WriteChart(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	return nil
}

func (cmd *Generate) Run() error {
	generator, ok := gen.Generators[cmd.Kind]
	if !ok {
		return errorf("unknown generator %q, must be one of %s", cmd.Kind, strings.Join(gen.Names(), ", "))
	} else if cmd.Output == "" {
		return errorf("must specify output filename")
	} else if cmd.N < 0 {
		return errorf("number of segments must be positive")
	}

	rnd := rand.New(rand.NewPCG(uint64(cmd.Seed), 0))
	return segfile.Create(cmd.Output, generator(rnd, cmd.N, cmd.Size), format(cmd.Decimal))
}

func (cmd *Convert) Run() error {
	if cmd.Input == "" || cmd.Output == "" {
		return argp.ShowUsage
	}

	in, out := segfile.Binary, segfile.Binary
	switch cmd.Kind {
	case "bin2dec":
		out = segfile.Decimal
	case "dec2bin":
		in = segfile.Decimal
	case "geojson", "osm", "shuffle", "lengths":
	default:
		return errorf("unknown conversion %q", cmd.Kind)
	}

	segs, err := segfile.Open(cmd.Input, in)
	if err != nil {
		return err
	}

	rnd := rand.New(rand.NewPCG(uint64(cmd.Seed), 0))
	switch cmd.Kind {
	case "shuffle":
		segs = gen.Shuffle(rnd, segs)
	case "lengths":
		if cmd.Max < cmd.Min || cmd.Min <= 0.0 {
			return errorf("length factors must satisfy 0 < min <= max")
		}
		segs = gen.RandomizeLengths(rnd, segs, cmd.Min, cmd.Max)
	}
	return segfile.Create(cmd.Output, segs, out)
}

func (cmd *Display) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	} else if cmd.Output == "" {
		return errorf("must specify output filename")
	}

	segs, err := segfile.Open(cmd.Input, format(cmd.Decimal))
	if err != nil {
		return err
	}
	pairs, err := segint.Intersections(segs)
	if err != nil {
		return err
	}

	opts := render.DefaultOptions
	opts.Title = cmd.Title
	return render.Plot(cmd.Output, segs, pairs, opts)
}

func (cmd *Minimize) Run() error {
	if cmd.Input == "" || cmd.Output == "" {
		return argp.ShowUsage
	}

	segs, err := segfile.Open(cmd.Input, format(cmd.Decimal))
	if err != nil {
		return err
	}
	logf(cmd.Verbose, chalk.Blue, "minimizing %d segments", len(segs))

	tests := 0
	minimized, err := bench.Minimize(segs, func(segs []segint.Segment) bool {
		tests++
		fails := bench.Fails(segs)
		logf(cmd.Verbose, chalk.Yellow, "test %d: %d segments, fails=%v", tests, len(segs), fails)
		return fails
	})
	if err != nil {
		return errors.Wrap(err, cmd.Input)
	}
	fmt.Printf("minimized %d to %d segments\n", len(segs), len(minimized))
	return segfile.Create(cmd.Output, minimized, format(cmd.Decimal))
}
