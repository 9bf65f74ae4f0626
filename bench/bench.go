// Package bench runs repeated, optionally concurrent, intersection queries over one input and collects their
// timings, counts and memory usage.
package bench

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/cheggaaa/pb"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	"github.com/tdewolff/segint"
	"github.com/tdewolff/segint/render"
	"github.com/tdewolff/segint/report"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Query returns the number of intersection points between the segments, where an overlap counts as two.
type Query func(ctx context.Context, segs []segint.Segment) (int, error)

// Sweep counts the intersections with the sweep, it stops when the context is done.
func Sweep(ctx context.Context, segs []segint.Segment) (int, error) {
	sweeper, err := segint.NewSweeper(segs)
	if err != nil {
		return 0, err
	}
	n := 0
	err = sweeper.Walk(ctx, func(pair segint.Pair) error {
		n += pair.Weight()
		return nil
	})
	return n, err
}

// Pairwise counts the intersections by testing all nearby pairs.
func Pairwise(ctx context.Context, segs []segint.Segment) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	pairs, err := segint.Pairwise(segs)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, pair := range pairs {
		n += pair.Weight()
	}
	return n, nil
}

// Methods are the queries by name.
var Methods = map[string]Query{
	"sweep":    Sweep,
	"pairwise": Pairwise,
}

// Options are the benchmark options.
type Options struct {
	Trials   int
	Parallel int    // maximum number of concurrent trials
	Method   string // key into Methods
	Progress io.Writer
}

// DefaultOptions are the default benchmark options.
var DefaultOptions = Options{
	Trials:   10,
	Parallel: 1,
	Method:   "sweep",
}

// Trial is the measurement of one query.
type Trial struct {
	Index   int           `json:"index"`
	Count   int           `json:"count"`
	Elapsed time.Duration `json:"elapsed_ns"`
	Memory  int64         `json:"memory"`
}

// Result holds all trials of a benchmark.
type Result struct {
	ID       uuid.UUID `json:"id"`
	Input    string    `json:"input"`
	Method   string    `json:"method"`
	Segments int       `json:"segments"`
	Parallel int       `json:"parallel"`
	Started  time.Time `json:"started"`
	Trials   []Trial   `json:"trials"`
}

// Run runs the trials over the segments, at most opts.Parallel at a time. The first failing trial cancels
// the others. All trials must find the same number of intersections.
func Run(ctx context.Context, input string, segs []segint.Segment, opts Options) (*Result, error) {
	query, ok := Methods[opts.Method]
	if !ok {
		return nil, errors.Errorf("unknown method %q", opts.Method)
	} else if opts.Trials < 1 {
		return nil, errors.New("number of trials must be positive")
	} else if err := segint.Validate(segs); err != nil {
		return nil, err
	}
	parallel := max(1, opts.Parallel)

	res := &Result{
		ID:       uuid.NewV4(),
		Input:    input,
		Method:   opts.Method,
		Segments: len(segs),
		Parallel: parallel,
		Started:  time.Now(),
		Trials:   make([]Trial, opts.Trials),
	}

	var bar *pb.ProgressBar
	if opts.Progress != nil {
		bar = pb.New(opts.Trials)
		bar.Output = opts.Progress
		bar.SetWidth(80)
		bar.Start()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i := range res.Trials {
		g.Go(func() error {
			summary, err := report.Measure(func() (int, error) {
				return query(ctx, segs)
			})
			if err != nil {
				return errors.Wrapf(err, "trial %d", i+1)
			}
			res.Trials[i] = Trial{
				Index:   i,
				Count:   summary.Count,
				Elapsed: summary.Elapsed,
				Memory:  summary.Memory,
			}
			if bar != nil {
				bar.Increment()
			}
			return nil
		})
	}
	err := g.Wait()
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return nil, err
	}

	for _, trial := range res.Trials[1:] {
		if trial.Count != res.Trials[0].Count {
			return res, errors.Errorf("trial %d found %d intersections but trial 1 found %d", trial.Index+1, trial.Count, res.Trials[0].Count)
		}
	}
	return res, nil
}

// Durations returns the elapsed time of every trial in order.
func (r *Result) Durations() []time.Duration {
	durations := make([]time.Duration, len(r.Trials))
	for i, trial := range r.Trials {
		durations[i] = trial.Elapsed
	}
	return durations
}

// Stats are the statistics over all trials.
type Stats struct {
	Trials                 int
	Count                  int
	Min, Median, Mean, Max time.Duration
	Memory                 int64 // maximum
}

// Stats returns the statistics over all trials.
func (r *Result) Stats() Stats {
	s := Stats{Trials: len(r.Trials)}
	if len(r.Trials) == 0 {
		return s
	}

	durations := r.Durations()
	slices.Sort(durations)
	s.Count = r.Trials[0].Count
	s.Min = durations[0]
	s.Max = durations[len(durations)-1]
	s.Median = durations[len(durations)/2]
	if len(durations)%2 == 0 {
		s.Median = (durations[len(durations)/2-1] + s.Median) / 2
	}
	var sum time.Duration
	for _, d := range durations {
		sum += d
	}
	s.Mean = sum / time.Duration(len(durations))
	for _, trial := range r.Trials {
		s.Memory = max(s.Memory, trial.Memory)
	}
	return s
}

// Print writes the statistics in microseconds with localized digit grouping.
func (s Stats) Print(w io.Writer, tag language.Tag) error {
	p := message.NewPrinter(tag)
	_, err := p.Fprintf(w, "trials:        %d\nintersections: %d\nmin:           %d µs\nmedian:        %d µs\nmean:          %d µs\nmax:           %d µs\nmemory:        %d B\n",
		s.Trials, s.Count, s.Min.Microseconds(), s.Median.Microseconds(), s.Mean.Microseconds(), s.Max.Microseconds(), s.Memory)
	return err
}

// WriteMeta writes the result as indented JSON.
func (r *Result) WriteMeta(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return errors.Wrap(err, "meta")
	}
	return nil
}

// WriteChart writes a PNG bar chart of the trial timings.
func (r *Result) WriteChart(w io.Writer) error {
	return render.TimingChart(w, fmt.Sprintf("%s: %s (%d segments)", r.Method, r.Input, r.Segments), r.Durations())
}
