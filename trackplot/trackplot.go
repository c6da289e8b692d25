/*
Package trackplot draws diagnostic plots of a track: a plan view from above
and a height profile along the track.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package trackplot

import (
	"fmt"
	"image/color"

	"github.com/npillmayer/coaster/track"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	trackColor   = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	supportColor = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	bankColor    = color.RGBA{R: 40, G: 90, B: 200, A: 255}
)

func frames(tr *track.Track, samples int) ([]track.Frame, error) {
	if tr.TrackPieceCount() == 0 {
		return nil, track.ErrEmptyTrack
	}
	if samples < 2 {
		return nil, fmt.Errorf("need at least 2 samples, have %d", samples)
	}
	return tr.Frames(samples), nil
}

// Plan plots the track from above, x to the right and z upwards, with the
// feet of its supports.
func Plan(tr *track.Track, samples int) (*plot.Plot, error) {
	ff, err := frames(tr, samples)
	if err != nil {
		return nil, err
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Track plan (%d pieces, length %.1f)", tr.TrackPieceCount(), tr.TrackLength())
	p.X.Label.Text = "x"
	p.Y.Label.Text = "z"
	pts := make(plotter.XYs, 0, len(ff))
	for _, f := range ff {
		pts = append(pts, plotter.XY{X: f.Centre.X, Y: f.Centre.Z})
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Width = vg.Points(1)
	line.Color = trackColor
	p.Add(line)
	p.Legend.Add("track", line)
	if supports := tr.GenerateSupportStructures(); len(supports) > 0 {
		feet := make(plotter.XYs, 0, len(supports))
		for _, s := range supports {
			feet = append(feet, plotter.XY{X: s.To.X, Y: s.To.Z})
		}
		scatter, err := plotter.NewScatter(feet)
		if err != nil {
			return nil, err
		}
		scatter.GlyphStyle.Color = supportColor
		scatter.GlyphStyle.Radius = vg.Points(1.5)
		p.Add(scatter)
		p.Legend.Add("supports", scatter)
	}
	p.Add(plotter.NewGrid())
	return p, nil
}

// Profile plots height and bank angle over the travelled fraction of the
// track length.
func Profile(tr *track.Track, samples int) (*plot.Plot, error) {
	ff, err := frames(tr, samples)
	if err != nil {
		return nil, err
	}
	p := plot.New()
	p.Title.Text = "Track profile"
	p.X.Label.Text = "Distance (fraction of length)"
	p.Y.Label.Text = "Height / roll (deg/10)"
	heights := make(plotter.XYs, 0, len(ff))
	rolls := make(plotter.XYs, 0, len(ff))
	for i, f := range ff {
		d := float64(i) / float64(len(ff)-1)
		heights = append(heights, plotter.XY{X: d, Y: f.Centre.Y})
		rolls = append(rolls, plotter.XY{X: d, Y: f.Roll / 10})
	}
	heightLine, err := plotter.NewLine(heights)
	if err != nil {
		return nil, err
	}
	heightLine.Width = vg.Points(1)
	heightLine.Color = trackColor
	rollLine, err := plotter.NewLine(rolls)
	if err != nil {
		return nil, err
	}
	rollLine.Width = vg.Points(1)
	rollLine.Color = bankColor
	p.Add(heightLine, rollLine)
	p.Legend.Add("height", heightLine)
	p.Legend.Add("roll", rollLine)
	p.Add(plotter.NewGrid())
	return p, nil
}

// Save writes a plot to path, width and height given in inches. The
// format follows the file extension (.png, .svg, .pdf, ...).
func Save(p *plot.Plot, path string, width, height float64) error {
	return p.Save(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch, path)
}
