// Package report writes the results of an intersection query, either every intersection point or a
// summary of the count, the elapsed time and the change in resident memory.
package report

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"iter"
	"strconv"
	"time"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/segint"
	"github.com/tdewolff/segint/segfile"
)

// PointsHeader is the first line of a points report.
const PointsHeader = "p_x;p_y"

// Precision is the default number of significant digits of decimal coordinates.
var Precision = 8

// Decimal formats a coordinate with prec significant digits in its shortest form.
func Decimal(f float64, prec int) string {
	return string(minify.Number([]byte(fmt.Sprintf("%.*g", prec, f)), prec))
}

// PointWriter writes intersection points one per line, with the coordinates as bit patterns or as decimals.
// A collinear overlap writes both of its endpoints.
type PointWriter struct {
	w      *bufio.Writer
	prec   int // zero for bit patterns
	header bool
	n      int
	buf    []byte
}

// NewPointWriter returns a point writer of bit patterns.
func NewPointWriter(w io.Writer) *PointWriter {
	return &PointWriter{w: bufio.NewWriter(w)}
}

// NewDecimalPointWriter returns a point writer of decimal coordinates with prec significant digits.
func NewDecimalPointWriter(w io.Writer, prec int) *PointWriter {
	if prec <= 0 {
		prec = Precision
	}
	return &PointWriter{w: bufio.NewWriter(w), prec: prec}
}

func (w *PointWriter) writeHeader() error {
	if !w.header {
		w.header = true
		_, err := w.w.WriteString(PointsHeader + "\n")
		return err
	}
	return nil
}

func (w *PointWriter) writePoint(p segint.Point) error {
	b := w.buf[:0]
	if w.prec == 0 {
		b = segfile.AppendBits(b, p.X)
		b = append(b, ';')
		b = segfile.AppendBits(b, p.Y)
	} else {
		b = append(b, Decimal(p.X, w.prec)...)
		b = append(b, ';')
		b = append(b, Decimal(p.Y, w.prec)...)
	}
	b = append(b, '\n')
	w.buf = b
	_, err := w.w.Write(b)
	return err
}

// Write writes the points of one intersection.
func (w *PointWriter) Write(pair segint.Pair) error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	switch pair.Kind {
	case segint.SinglePoint:
		w.n++
		return w.writePoint(pair.Point)
	case segint.Collinear:
		w.n += 2
		if err := w.writePoint(pair.Overlap.Start); err != nil {
			return err
		}
		return w.writePoint(pair.Overlap.End)
	}
	return nil
}

// Count returns the number of points written.
func (w *PointWriter) Count() int {
	return w.n
}

// Flush writes any buffered data, and the header if nothing was written.
func (w *PointWriter) Flush() error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	return w.w.Flush()
}

// WritePoints writes all intersection points and returns their number.
func WritePoints(w *PointWriter, pairs iter.Seq[segint.Pair]) (int, error) {
	for pair := range pairs {
		if err := w.Write(pair); err != nil {
			return w.n, err
		}
	}
	return w.n, w.Flush()
}

// WriteWalk writes the points of all intersections that walk passes to its callback, as bit patterns if prec
// is zero and as decimals otherwise. The report is held back until walk returns, nothing is written to w if
// it fails.
func WriteWalk(w io.Writer, prec int, walk func(fn func(segint.Pair) error) error) (int, error) {
	buf := &bytes.Buffer{}
	pw := &PointWriter{w: bufio.NewWriter(buf), prec: prec}
	if err := walk(pw.Write); err != nil {
		return 0, err
	} else if err := pw.Flush(); err != nil {
		return 0, err
	}
	if _, err := buf.WriteTo(w); err != nil {
		return 0, err
	}
	return pw.Count(), nil
}

// Summary is the result of a measured intersection query.
type Summary struct {
	Count   int           // intersection points, two for an overlap
	Elapsed time.Duration // wall-clock time of the query
	Memory  int64         // change in resident memory in bytes
}

// WriteTo writes the count, the elapsed time in whole milliseconds and the memory change in bytes, each on
// its own line.
func (s Summary) WriteTo(w io.Writer) (int64, error) {
	b := strconv.AppendInt(nil, int64(s.Count), 10)
	b = append(b, '\n')
	b = strconv.AppendInt(b, s.Elapsed.Milliseconds(), 10)
	b = append(b, '\n')
	b = strconv.AppendInt(b, s.Memory, 10)
	b = append(b, '\n')
	n, err := w.Write(b)
	return int64(n), err
}

// Measure runs a query that returns the number of intersection points, and measures its wall-clock time and
// the change in resident memory.
func Measure(query func() (int, error)) (Summary, error) {
	mem := ResidentMemory()
	start := time.Now()
	n, err := query()
	elapsed := time.Since(start)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Count:   n,
		Elapsed: elapsed,
		Memory:  ResidentMemory() - mem,
	}, nil
}
