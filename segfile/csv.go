package segfile

import (
	"bufio"
	"bytes"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/segint"
)

// Header is the first line of a segment file.
const Header = "x1;y1;x2;y2"

// Format is the encoding of coordinates in a segment file.
type Format int

// see Format
const (
	Binary  Format = iota // 64 binary digits of the bit pattern
	Decimal               // shortest decimal representation that rounds to the same value
)

func (f Format) String() string {
	if f == Decimal {
		return "decimal"
	}
	return "binary"
}

// FieldError is a coordinate field that could not be decoded. Both the position and the cause of the error
// can be retrieved with errors.As and errors.Is.
type FieldError struct {
	Pos *parse.Error
	Err error
}

func (e *FieldError) Error() string {
	return e.Pos.Error()
}

func (e *FieldError) Unwrap() []error {
	return []error{e.Pos, e.Err}
}

// Reader reads segments from a segment file.
type Reader struct {
	z      *parse.Input
	format Format
	line   int
	header bool
}

// NewReader returns a reader of segments encoded in the given format.
func NewReader(r io.Reader, format Format) *Reader {
	return &Reader{
		z:      parse.NewInput(r),
		format: format,
	}
}

// field lexes up to the next semicolon or end of line and returns it without trailing carriage return,
// together with the terminating character which is zero at the end of the input.
func (r *Reader) field() ([]byte, byte) {
	for {
		c := r.z.Peek(0)
		if c == ';' || c == '\n' || c == 0 && r.z.Err() != nil {
			return bytes.TrimSuffix(r.z.Lexeme(), []byte("\r")), c
		}
		r.z.Move(1)
	}
}

// next moves past the terminating character of the current field.
func (r *Reader) next(c byte) {
	if c != 0 {
		r.z.Move(1)
	}
	r.z.Skip()
}

func (r *Reader) decode(b []byte) (float64, error) {
	if r.format == Decimal {
		return strconv.ParseFloat(string(b), 64)
	}
	return DecodeBits(b)
}

func (r *Reader) readHeader() error {
	r.line++
	var b []byte
	for {
		c := r.z.Peek(0)
		if c == '\n' || c == 0 && r.z.Err() != nil {
			b = bytes.TrimSuffix(r.z.Lexeme(), []byte("\r"))
			if string(b) != Header {
				return parse.NewErrorLexer(r.z, "bad header: %q instead of %q", b, Header)
			}
			r.next(c)
			return nil
		}
		r.z.Move(1)
	}
}

// Read returns the next segment, or io.EOF at the end of the input. Malformed input returns a *parse.Error
// with the line and column, a malformed coordinate returns a *FieldError that also holds the cause.
// Non-finite coordinates return an error wrapping segint.ErrInvalidInput.
func (r *Reader) Read() (segint.Segment, error) {
	if !r.header {
		if err := r.readHeader(); err != nil {
			return segint.Segment{}, err
		}
		r.header = true
	}

	// skip empty lines
	for {
		if c := r.z.Peek(0); c == '\n' {
			r.line++
			r.next(c)
		} else if c == '\r' && r.z.Peek(1) == '\n' {
			r.line++
			r.z.Move(1)
			r.next('\n')
		} else if c == 0 && r.z.Err() != nil {
			if r.z.Err() == io.EOF {
				return segint.Segment{}, io.EOF
			}
			return segint.Segment{}, r.z.Err()
		} else {
			break
		}
	}
	r.line++

	var coords [4]float64
	for i := range coords {
		b, c := r.field()
		if i < 3 && c != ';' {
			return segint.Segment{}, parse.NewErrorLexer(r.z, "expected %d fields, got %d", len(coords), i+1)
		} else if i == 3 && c == ';' {
			return segint.Segment{}, parse.NewErrorLexer(r.z, "expected %d fields, got more", len(coords))
		}

		f, err := r.decode(b)
		if err != nil {
			return segint.Segment{}, &FieldError{
				Pos: parse.NewErrorLexer(r.z, "bad %v field %d: %v", r.format, i+1, err),
				Err: err,
			}
		}
		coords[i] = f
		r.next(c)
	}

	seg := segint.Seg(coords[0], coords[1], coords[2], coords[3])
	if !seg.Start.IsFinite() || !seg.End.IsFinite() {
		return segint.Segment{}, errors.Wrapf(segint.ErrInvalidInput, "line %d: non-finite coordinate in %v", r.line, seg)
	}
	return seg, nil
}

// Close releases the input buffer.
func (r *Reader) Close() error {
	r.z.Restore()
	return nil
}

// ReadCSV reads all segments from a segment file.
func ReadCSV(r io.Reader, format Format) ([]segint.Segment, error) {
	reader := NewReader(r, format)
	defer reader.Close()

	segs := []segint.Segment{}
	for {
		seg, err := reader.Read()
		if err == io.EOF {
			return segs, nil
		} else if err != nil {
			return nil, err
		}
		segs = append(segs, seg)
	}
}

// Writer writes segments to a segment file.
type Writer struct {
	w      *bufio.Writer
	format Format
	header bool
	buf    []byte
}

// NewWriter returns a writer of segments encoded in the given format. The header is written before the
// first segment, or on Flush.
func NewWriter(w io.Writer, format Format) *Writer {
	return &Writer{
		w:      bufio.NewWriter(w),
		format: format,
	}
}

func (w *Writer) appendCoord(b []byte, f float64) []byte {
	if w.format == Decimal {
		return strconv.AppendFloat(b, f, 'g', -1, 64)
	}
	return AppendBits(b, f)
}

func (w *Writer) writeHeader() error {
	if !w.header {
		w.header = true
		if _, err := w.w.WriteString(Header + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// Write writes one segment.
func (w *Writer) Write(seg segint.Segment) error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	b := w.buf[:0]
	for i, f := range [4]float64{seg.Start.X, seg.Start.Y, seg.End.X, seg.End.Y} {
		if 0 < i {
			b = append(b, ';')
		}
		b = w.appendCoord(b, f)
	}
	b = append(b, '\n')
	w.buf = b
	_, err := w.w.Write(b)
	return err
}

// Flush writes any buffered data.
func (w *Writer) Flush() error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	return w.w.Flush()
}

// WriteCSV writes all segments as a segment file.
func WriteCSV(w io.Writer, segs []segint.Segment, format Format) error {
	writer := NewWriter(w, format)
	for _, seg := range segs {
		if err := writer.Write(seg); err != nil {
			return err
		}
	}
	return writer.Flush()
}
