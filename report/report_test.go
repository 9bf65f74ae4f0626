package report

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/tdewolff/segint"
	"github.com/tdewolff/segint/segfile"
	"github.com/tdewolff/test"
)

func TestDecimal(t *testing.T) {
	var tts = []struct {
		f    float64
		prec int
		s    string
	}{
		{2.0, 8, "2"},
		{1.25, 8, "1.25"},
		{-3.5, 8, "-3.5"},
		{1234.5678, 4, "1235"},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.String(t, Decimal(tt.f, tt.prec), tt.s)
		})
	}
}

func TestWritePoints(t *testing.T) {
	pairs := []segint.Pair{
		{A: 0, B: 1, Intersection: segint.Intersection{Kind: segint.SinglePoint, Point: segint.Point{1.25, 2}}},
		{A: 0, B: 2, Intersection: segint.Intersection{Kind: segint.Collinear, Overlap: segint.Seg(1, 0, 2, 0)}},
	}

	w := &bytes.Buffer{}
	n, err := WritePoints(NewDecimalPointWriter(w, 0), slices.Values(pairs))
	test.Error(t, err)
	test.T(t, n, 3)
	test.String(t, w.String(), "p_x;p_y\n1.25;2\n1;0\n2;0\n")

	w.Reset()
	n, err = WritePoints(NewPointWriter(w), slices.Values(pairs[:1]))
	test.Error(t, err)
	test.T(t, n, 1)
	test.String(t, w.String(), "p_x;p_y\n"+segfile.EncodeBits(1.25)+";"+segfile.EncodeBits(2)+"\n")

	w.Reset()
	n, err = WritePoints(NewPointWriter(w), slices.Values([]segint.Pair{}))
	test.Error(t, err)
	test.T(t, n, 0)
	test.String(t, w.String(), "p_x;p_y\n")
}

func TestWriteWalk(t *testing.T) {
	sweep := func(ctx context.Context) func(func(segint.Pair) error) error {
		return func(fn func(segint.Pair) error) error {
			sweeper, err := segint.NewSweeper(segfile.Sample())
			if err != nil {
				return err
			}
			return sweeper.Walk(ctx, fn)
		}
	}

	w := &bytes.Buffer{}
	n, err := WriteWalk(w, 0, sweep(context.Background()))
	test.Error(t, err)
	test.T(t, n, 6)
	test.T(t, strings.HasPrefix(w.String(), PointsHeader+"\n"+segfile.EncodeBits(0.5)+";"), true)
	test.T(t, strings.Count(w.String(), "\n"), 7)

	// a failed walk writes nothing, also not the points passed before it failed
	w.Reset()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = WriteWalk(w, 0, sweep(ctx))
	test.T(t, errors.Is(err, context.Canceled), true)
	test.String(t, w.String(), "")

	stop := errors.New("stop")
	_, err = WriteWalk(w, Precision, func(fn func(segint.Pair) error) error {
		if err := fn(segint.Pair{Intersection: segint.Intersection{Kind: segint.SinglePoint, Point: segint.Point{1, 2}}}); err != nil {
			return err
		}
		return stop
	})
	test.T(t, err, stop)
	test.String(t, w.String(), "")
}

func TestSummary(t *testing.T) {
	w := &bytes.Buffer{}
	s := Summary{Count: 6, Elapsed: 1500 * time.Microsecond, Memory: -4096}
	_, err := s.WriteTo(w)
	test.Error(t, err)
	test.String(t, w.String(), "6\n1\n-4096\n")
}

func TestMeasure(t *testing.T) {
	s, err := Measure(func() (int, error) {
		return segint.Count(segfile.Sample())
	})
	test.Error(t, err)
	test.T(t, s.Count, 6)
	test.T(t, 0 <= s.Elapsed, true)
	test.T(t, 0 < ResidentMemory(), true)
}
