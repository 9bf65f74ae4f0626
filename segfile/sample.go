package segfile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/tdewolff/segint"
)

// Sample returns the built-in set of four lines that all cross at (0.5,0.5).
func Sample() []segint.Segment {
	return []segint.Segment{
		segint.Seg(1.0, 0.0, 0.0, 1.0),
		segint.Seg(0.0, 0.75, 1.0, 0.25),
		segint.Seg(0.0, 0.25, 1.0, 0.75),
		segint.Seg(0.0, 0.0, 1.0, 1.0),
	}
}

// Open reads the segments of a file, the format is chosen by its extension: .geojson and .json for
// GeoJSON, .osm for OpenStreetMap XML, and a segment file otherwise with coordinates in the given format.
func Open(filename string, format Format) ([]segint.Segment, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var segs []segint.Segment
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".geojson", ".json":
		segs, err = ReadGeoJSON(f)
	case ".osm":
		segs, err = ReadOSM(f)
	default:
		segs, err = ReadCSV(f, format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "%s", filename)
	}
	return segs, nil
}

// Create writes the segments to a file, as GeoJSON for the .geojson and .json extensions and as a segment
// file otherwise.
func Create(filename string, segs []segint.Segment, format Format) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".geojson", ".json":
		err = WriteGeoJSON(f, segs)
	default:
		err = WriteCSV(f, segs, format)
	}
	if err != nil {
		f.Close()
		return errors.Wrapf(err, "%s", filename)
	}
	return f.Close()
}
