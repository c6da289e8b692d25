/*
Package trackfile reads and writes tracks in a plain text format.

A track file starts with the number of pieces. Each piece follows as four
lines with the x, y and z coordinates of its control points, then one line
each for tension, roll target and length:

	2
	0 0 0
	0 0 0
	0 0 10
	0 0 10
	2
	0
	10
	...

Tokens are separated by white space; line structure is not significant when
reading.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package trackfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/npillmayer/coaster"
	"github.com/npillmayer/coaster/track"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'coaster.trackfile'
func tracer() tracing.Trace {
	return tracing.Select("coaster.trackfile")
}

// ErrMalformed indicates a track file which does not follow the format.
var ErrMalformed = errors.New("malformed track file")

// numbersPerPiece is the count of numbers stored for each piece.
const numbersPerPiece = 4*3 + 3

// Record holds the stored values of one piece.
type Record struct {
	ControlPoints [4]coaster.Vector
	Tension       float64
	RollTarget    float64
	Length        float64
}

// tokens reads white space separated numbers and counts them for error
// messages.
type tokens struct {
	scanner *bufio.Scanner
	count   int
}

func (tk *tokens) next() (string, error) {
	if !tk.scanner.Scan() {
		if err := tk.scanner.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("%w: unexpected end after %d numbers", ErrMalformed, tk.count)
	}
	tk.count++
	return tk.scanner.Text(), nil
}

func (tk *tokens) float() (float64, error) {
	s, err := tk.next()
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: number %d: %q is not a number", ErrMalformed, tk.count, s)
	}
	return f, nil
}

// Read parses a track file.
func Read(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	tk := &tokens{scanner: scanner}
	s, err := tk.next()
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: invalid piece count %q", ErrMalformed, s)
	}
	var records []Record
	var values [numbersPerPiece]float64
	for i := 0; i < n; i++ {
		for j := range values {
			if values[j], err = tk.float(); err != nil {
				return nil, fmt.Errorf("piece %d: %w", i, err)
			}
		}
		var rec Record
		for k := 0; k < 4; k++ {
			rec.ControlPoints[k] = coaster.V(values[3*k], values[3*k+1], values[3*k+2])
		}
		rec.Tension, rec.RollTarget, rec.Length = values[12], values[13], values[14]
		records = append(records, rec)
	}
	tracer().Debugf("read %d track pieces", n)
	return records, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Write stores records in track file format.
func Write(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, len(records))
	for _, rec := range records {
		for _, p := range rec.ControlPoints {
			fmt.Fprintln(bw, formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z))
		}
		fmt.Fprintln(bw, formatFloat(rec.Tension))
		fmt.Fprintln(bw, formatFloat(rec.RollTarget))
		fmt.Fprintln(bw, formatFloat(rec.Length))
	}
	return bw.Flush()
}

// Records extracts the stored values of all pieces of tr.
func Records(tr *track.Track) []Record {
	records := make([]Record, tr.TrackPieceCount())
	for i := range records {
		p := tr.TrackPiece(i)
		records[i] = Record{
			ControlPoints: p.ControlPoints(),
			Tension:       p.Tension(),
			RollTarget:    p.RollTarget(),
			Length:        p.Length(),
		}
	}
	return records
}

// Load replaces the pieces of tr with the pieces read from r. Pieces are
// placed as stored, without tangent matching. If r cannot be parsed, tr is
// unchanged; if a piece cannot be added, tr is left empty.
func Load(tr *track.Track, r io.Reader) error {
	records, err := Read(r)
	if err != nil {
		return err
	}
	tr.EraseTrack()
	for i, rec := range records {
		piece := track.NewPieceFromRecord(rec.ControlPoints, rec.Tension, rec.RollTarget, rec.Length)
		if err := tr.AddTrackPieceFromFile(piece); err != nil {
			tr.EraseTrack()
			return fmt.Errorf("piece %d: %w", i, err)
		}
	}
	tr.LoadTrack()
	tracer().Infof("loaded track with %d pieces, length %.2f", tr.TrackPieceCount(), tr.TrackLength())
	return nil
}

// Save writes all pieces of tr to w.
func Save(w io.Writer, tr *track.Track) error {
	return Write(w, Records(tr))
}

// LoadFile is Load for a file path.
func LoadFile(tr *track.Track, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Load(tr, f)
}

// SaveFile is Save for a file path. An existing file is overwritten.
func SaveFile(path string, tr *track.Track) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Save(f, tr); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
