package render

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tdewolff/segint"
	"github.com/tdewolff/test"
)

func TestBound(t *testing.T) {
	bound := Bound([]segint.Segment{segint.Seg(0, 0, 10, 5)})
	test.Float(t, bound.Left(), -0.5)
	test.Float(t, bound.Right(), 10.5)
	test.Float(t, bound.Bottom(), -0.5)
	test.Float(t, bound.Top(), 5.5)

	bound = Bound([]segint.Segment{segint.Seg(1, 1, 1, 1)})
	test.Float(t, bound.Left(), 0.0)
	test.Float(t, bound.Top(), 2.0)
}

func TestPlot(t *testing.T) {
	segs := []segint.Segment{
		segint.Seg(0, 0, 2, 2),
		segint.Seg(0, 2, 2, 0),
		segint.Seg(1, 1, 3, 3),
	}
	pairs, err := segint.Intersections(segs)
	test.Error(t, err)

	test.T(t, len(pairs), 3)
	_, err = NewPlot(segs, pairs, DefaultOptions)
	test.Error(t, err)

	filename := filepath.Join(t.TempDir(), "plot.png")
	test.Error(t, Plot(filename, segs, pairs, DefaultOptions))
	info, err := os.Stat(filename)
	test.Error(t, err)
	test.T(t, 0 < info.Size(), true)
}

func TestTimingChart(t *testing.T) {
	w := &bytes.Buffer{}
	test.Error(t, TimingChart(w, "timings", []time.Duration{3 * time.Millisecond, 5 * time.Millisecond, 4 * time.Millisecond}))
	test.T(t, bytes.HasPrefix(w.Bytes(), []byte("\x89PNG")), true)

	test.T(t, TimingChart(w, "", nil) != nil, true)
}
