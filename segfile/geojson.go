package segfile

import (
	"encoding/xml"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmgeojson"
	"github.com/pkg/errors"
	"github.com/tdewolff/segint"
)

func appendLineString(segs []segint.Segment, ls []orb.Point) []segint.Segment {
	for i := 1; i < len(ls); i++ {
		segs = append(segs, segint.Seg(ls[i-1][0], ls[i-1][1], ls[i][0], ls[i][1]))
	}
	return segs
}

// AppendGeometry appends the segments between consecutive points of the line strings, rings and polygons of
// a geometry. Points have no segments.
func AppendGeometry(segs []segint.Segment, g orb.Geometry) []segint.Segment {
	switch g := g.(type) {
	case orb.LineString:
		segs = appendLineString(segs, g)
	case orb.Ring:
		segs = appendLineString(segs, g)
	case orb.MultiLineString:
		for _, ls := range g {
			segs = appendLineString(segs, ls)
		}
	case orb.Polygon:
		for _, ring := range g {
			segs = appendLineString(segs, ring)
		}
	case orb.MultiPolygon:
		for _, polygon := range g {
			for _, ring := range polygon {
				segs = appendLineString(segs, ring)
			}
		}
	case orb.Collection:
		for _, g := range g {
			segs = AppendGeometry(segs, g)
		}
	}
	return segs
}

// FeatureSegments returns the segments of all features.
func FeatureSegments(fc *geojson.FeatureCollection) ([]segint.Segment, error) {
	segs := []segint.Segment{}
	for _, f := range fc.Features {
		segs = AppendGeometry(segs, f.Geometry)
	}
	if err := segint.Validate(segs); err != nil {
		return nil, err
	}
	return segs, nil
}

// ReadGeoJSON reads the segments of the line string and polygon features of a GeoJSON feature collection,
// such as a street network export.
func ReadGeoJSON(r io.Reader) ([]segint.Segment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "geojson")
	}
	return FeatureSegments(fc)
}

// WriteGeoJSON writes every segment as a line string feature of a feature collection.
func WriteGeoJSON(w io.Writer, segs []segint.Segment) error {
	fc := geojson.NewFeatureCollection()
	for i, seg := range segs {
		f := geojson.NewFeature(orb.LineString{{seg.Start.X, seg.Start.Y}, {seg.End.X, seg.End.Y}})
		f.Properties["index"] = i
		fc.Append(f)
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ReadOSM reads the segments of the ways and relations of an OpenStreetMap XML file, with longitude and
// latitude as coordinates.
func ReadOSM(r io.Reader) ([]segint.Segment, error) {
	o := &osm.OSM{}
	if err := xml.NewDecoder(r).Decode(o); err != nil {
		return nil, errors.Wrap(err, "osm")
	}
	fc, err := osmgeojson.Convert(o,
		osmgeojson.NoID(true),
		osmgeojson.NoMeta(true),
		osmgeojson.NoRelationMembership(true))
	if err != nil {
		return nil, errors.Wrap(err, "osm")
	}
	return FeatureSegments(fc)
}
