package segfile

import (
	"bytes"
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/segint"
)

func TestBits(t *testing.T) {
	assert.Equal(t, "0011111111110000"+strings.Repeat("0", 48), EncodeBits(1.0))
	assert.Equal(t, "1"+strings.Repeat("0", 63), EncodeBits(math.Copysign(0.0, -1.0)))
	assert.Equal(t, strings.Repeat("0", 63)+"1", EncodeBits(math.SmallestNonzeroFloat64))

	values := []float64{
		0.0,
		math.Copysign(0.0, -1.0),
		1.0,
		-1.5,
		0.1,
		math.MaxFloat64,
		-math.MaxFloat64,
		math.SmallestNonzeroFloat64,
		-math.SmallestNonzeroFloat64,
		1e-310, // subnormal
		math.Float64frombits(0x000fffffffffffff),
	}
	rnd := rand.New(rand.NewPCG(1, 1))
	for len(values) < 1000 {
		if f := math.Float64frombits(rnd.Uint64()); !math.IsNaN(f) && !math.IsInf(f, 0) {
			values = append(values, f)
		}
	}
	for _, f := range values {
		s := EncodeBits(f)
		require.Len(t, s, BitsLen)
		g, err := DecodeBits([]byte(s))
		require.NoError(t, err)
		assert.Equal(t, math.Float64bits(f), math.Float64bits(g), s)
	}
}

func TestBitsErrors(t *testing.T) {
	_, err := DecodeBits([]byte("0101"))
	assert.True(t, errors.Is(err, ErrBadBits))

	_, err = DecodeBits([]byte(strings.Repeat("0", 63) + "2"))
	assert.True(t, errors.Is(err, ErrBadBits))

	_, err = DecodeBits([]byte(strings.Repeat("0", 65)))
	assert.True(t, errors.Is(err, ErrBadBits))
}

func encodeLine(coords ...float64) string {
	fields := []string{}
	for _, f := range coords {
		fields = append(fields, EncodeBits(f))
	}
	return strings.Join(fields, ";")
}

func TestReadCSV(t *testing.T) {
	data := Header + "\n" + encodeLine(1.0, 0.0, 0.0, 1.0) + "\r\n" + encodeLine(0.5, -2.0, 3.0, 0.25) + "\n\n"
	segs, err := ReadCSV(strings.NewReader(data), Binary)
	require.NoError(t, err)
	assert.Equal(t, []segint.Segment{segint.Seg(1, 0, 0, 1), segint.Seg(0.5, -2, 3, 0.25)}, segs)

	// no trailing newline
	segs, err = ReadCSV(strings.NewReader(Header+"\n"+encodeLine(1.0, 2.0, 3.0, 4.0)), Binary)
	require.NoError(t, err)
	assert.Equal(t, []segint.Segment{segint.Seg(1, 2, 3, 4)}, segs)

	segs, err = ReadCSV(strings.NewReader(Header), Binary)
	require.NoError(t, err)
	assert.Empty(t, segs)

	segs, err = ReadCSV(strings.NewReader(Header+"\n1;2;3;4\n-0.5;1e-3;0;7\n"), Decimal)
	require.NoError(t, err)
	assert.Equal(t, []segint.Segment{segint.Seg(1, 2, 3, 4), segint.Seg(-0.5, 0.001, 0, 7)}, segs)
}

func TestReadCSVErrors(t *testing.T) {
	var tts = []struct {
		data   string
		format Format
		line   int
	}{
		{"x1,y1,x2,y2\n", Binary, 1},
		{"", Binary, 1},
		{Header + "\n" + encodeLine(1, 2, 3, 4) + "\n" + encodeLine(1, 2, 3) + "\n", Binary, 3},
		{Header + "\n" + encodeLine(1, 2, 3, 4, 5) + "\n", Binary, 2},
		{Header + "\n" + encodeLine(1, 2, 3) + ";0101\n", Binary, 2},
		{Header + "\n" + encodeLine(1, 2, 3) + ";" + strings.Repeat("0", 63) + "x\n", Binary, 2},
		{Header + "\n1;2;3;4\n1;2;3;four\n", Decimal, 3},
	}
	for _, tt := range tts {
		_, err := ReadCSV(strings.NewReader(tt.data), tt.format)
		require.Error(t, err, tt.data)
		var perr *parse.Error
		require.True(t, errors.As(err, &perr), err.Error())
		assert.Equal(t, tt.line, perr.Line, err.Error())
		assert.NotContains(t, err.Error(), "%!")
	}

	_, err := ReadCSV(strings.NewReader(Header+"\n0101;0;0;0\n"), Binary)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad binary field 1: length 4 instead of 64")
	assert.True(t, errors.Is(err, ErrBadBits))
	var ferr *FieldError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, 2, ferr.Pos.Line)
	assert.Equal(t, 5, ferr.Pos.Column)

	_, err = ReadCSV(strings.NewReader(Header+"\n1;2;3;four\n"), Decimal)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad decimal field 4")
	assert.Contains(t, err.Error(), "invalid syntax")
}

func TestReadCSVNonFinite(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(Header+"\n"+encodeLine(1, math.Inf(1), 3, 4)+"\n"), Binary)
	assert.True(t, errors.Is(err, segint.ErrInvalidInput))

	_, err = ReadCSV(strings.NewReader(Header+"\n1;2;NaN;4\n"), Decimal)
	assert.True(t, errors.Is(err, segint.ErrInvalidInput))
}

func TestWriteCSV(t *testing.T) {
	rnd := rand.New(rand.NewPCG(2, 2))
	segs := []segint.Segment{segint.Seg(math.Copysign(0.0, -1.0), 1e-310, math.MaxFloat64, 0.1)}
	for i := 0; i < 100; i++ {
		segs = append(segs, segint.Seg(rnd.NormFloat64(), rnd.NormFloat64(), rnd.NormFloat64(), rnd.NormFloat64()))
	}

	for _, format := range []Format{Binary, Decimal} {
		w := &bytes.Buffer{}
		require.NoError(t, WriteCSV(w, segs, format))
		assert.True(t, strings.HasPrefix(w.String(), Header+"\n"))

		segs2, err := ReadCSV(w, format)
		require.NoError(t, err)
		require.Len(t, segs2, len(segs))
		for i := range segs {
			a, b := segs[i], segs2[i]
			for j, f := range []float64{a.Start.X, a.Start.Y, a.End.X, a.End.Y} {
				g := []float64{b.Start.X, b.Start.Y, b.End.X, b.End.Y}[j]
				assert.Equal(t, math.Float64bits(f), math.Float64bits(g), format.String())
			}
		}
	}

	w := &bytes.Buffer{}
	require.NoError(t, WriteCSV(w, nil, Binary))
	assert.Equal(t, Header+"\n", w.String())
}

func TestGeoJSON(t *testing.T) {
	data := `{"type":"FeatureCollection","features":[
{"type":"Feature","properties":{},"geometry":{"type":"LineString","coordinates":[[0,0],[1,1],[2,0]]}},
{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[5,5]}},
{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}
]}`
	segs, err := ReadGeoJSON(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []segint.Segment{
		segint.Seg(0, 0, 1, 1),
		segint.Seg(1, 1, 2, 0),
		segint.Seg(0, 0, 1, 0),
		segint.Seg(1, 0, 1, 1),
		segint.Seg(1, 1, 0, 0),
	}, segs)

	w := &bytes.Buffer{}
	require.NoError(t, WriteGeoJSON(w, segs))
	segs2, err := ReadGeoJSON(w)
	require.NoError(t, err)
	assert.Equal(t, segs, segs2)

	_, err = ReadGeoJSON(strings.NewReader("{"))
	assert.Error(t, err)
}

func TestOSM(t *testing.T) {
	data := `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6">
  <node id="1" lat="52.0" lon="4.0" visible="true"></node>
  <node id="2" lat="52.5" lon="4.5" visible="true"></node>
  <node id="3" lat="52.0" lon="5.0" visible="true"></node>
  <way id="10" visible="true">
    <nd ref="1"></nd>
    <nd ref="2"></nd>
    <nd ref="3"></nd>
    <tag k="highway" v="residential"></tag>
  </way>
</osm>`
	segs, err := ReadOSM(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []segint.Segment{
		segint.Seg(4.0, 52.0, 4.5, 52.5),
		segint.Seg(4.5, 52.5, 5.0, 52.0),
	}, segs)
}

func TestSample(t *testing.T) {
	n, err := segint.Count(Sample())
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}
