// Package render draws segment sets with their intersections, and charts of benchmark timings.
package render

import (
	"image/color"

	"github.com/paulmach/orb"
	"github.com/tdewolff/segint"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Options are the plot options.
type Options struct {
	Title       string
	Width       vg.Length
	Height      vg.Length
	LineWidth   vg.Length
	PointRadius vg.Length
}

// DefaultOptions are the default plot options.
var DefaultOptions = Options{
	Width:       15 * vg.Centimeter,
	Height:      15 * vg.Centimeter,
	LineWidth:   vg.Points(0.5),
	PointRadius: vg.Points(2.0),
}

var (
	segmentColor = color.RGBA{0x33, 0x33, 0x99, 0xff}
	overlapColor = color.RGBA{0xee, 0x88, 0x00, 0xff}
	pointColor   = color.RGBA{0xcc, 0x00, 0x00, 0xff}
)

// Bound returns the bounding box of the segments and intersections as an orb.Bound padded by a small
// margin, so that points on the border remain visible.
func Bound(segs []segint.Segment) orb.Bound {
	mp := make(orb.MultiPoint, 0, 2*len(segs))
	for _, seg := range segs {
		mp = append(mp, orb.Point{seg.Start.X, seg.Start.Y}, orb.Point{seg.End.X, seg.End.Y})
	}
	bound := mp.Bound()
	margin := 0.05 * max(bound.Right()-bound.Left(), bound.Top()-bound.Bottom())
	if margin == 0.0 {
		margin = 1.0
	}
	return bound.Pad(margin)
}

func segmentLine(seg segint.Segment, c color.Color, width vg.Length) (*plotter.Line, error) {
	line, err := plotter.NewLine(plotter.XYs{{X: seg.Start.X, Y: seg.Start.Y}, {X: seg.End.X, Y: seg.End.Y}})
	if err != nil {
		return nil, err
	}
	line.LineStyle.Color = c
	line.LineStyle.Width = width
	return line, nil
}

// NewPlot returns a plot of the segments, with overlaps highlighted and intersection points marked.
func NewPlot(segs []segint.Segment, pairs []segint.Pair, opts Options) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	if 0 < len(segs) {
		bound := Bound(segs)
		p.X.Min, p.X.Max = bound.Left(), bound.Right()
		p.Y.Min, p.Y.Max = bound.Bottom(), bound.Top()
	}

	for _, seg := range segs {
		line, err := segmentLine(seg, segmentColor, opts.LineWidth)
		if err != nil {
			return nil, err
		}
		p.Add(line)
	}

	points := plotter.XYs{}
	for _, pair := range pairs {
		switch pair.Kind {
		case segint.SinglePoint:
			points = append(points, plotter.XY{X: pair.Point.X, Y: pair.Point.Y})
		case segint.Collinear:
			line, err := segmentLine(pair.Overlap, overlapColor, 3*opts.LineWidth)
			if err != nil {
				return nil, err
			}
			p.Add(line)
			points = append(points,
				plotter.XY{X: pair.Overlap.Start.X, Y: pair.Overlap.Start.Y},
				plotter.XY{X: pair.Overlap.End.X, Y: pair.Overlap.End.Y})
		}
	}
	if 0 < len(points) {
		scatter, err := plotter.NewScatter(points)
		if err != nil {
			return nil, err
		}
		scatter.GlyphStyle.Color = pointColor
		scatter.GlyphStyle.Radius = opts.PointRadius
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(scatter)
	}
	return p, nil
}

// Plot draws the segments and their intersections to filename, the image format follows its extension
// (.png, .svg, .pdf, .eps, ...).
func Plot(filename string, segs []segint.Segment, pairs []segint.Pair, opts Options) error {
	p, err := NewPlot(segs, pairs, opts)
	if err != nil {
		return err
	}
	return p.Save(opts.Width, opts.Height, filename)
}
