package monitor

import (
	"fmt"

	"github.com/rileyhilliard/bitmeter/internal/prefs"
	"github.com/rileyhilliard/bitmeter/internal/store"
)

// Series identifies which part of a column a segment paints.
type Series int

const (
	SeriesOverlap Series = iota
	SeriesDownload
	SeriesUpload
)

// String returns the series name.
func (s Series) String() string {
	switch s {
	case SeriesOverlap:
		return "overlap"
	case SeriesDownload:
		return "download"
	case SeriesUpload:
		return "upload"
	default:
		return "unknown"
	}
}

// Palette holds the graph colours.
type Palette struct {
	Download   prefs.RGB
	Upload     prefs.RGB
	Overlap    prefs.RGB
	Background prefs.RGB
}

// Color returns the colour for a series.
func (p Palette) Color(s Series) prefs.RGB {
	switch s {
	case SeriesDownload:
		return p.Download
	case SeriesUpload:
		return p.Upload
	default:
		return p.Overlap
	}
}

// Segment is a vertical line in canvas pixel coordinates. Y grows downwards,
// so YStart is the baseline side of the line.
type Segment struct {
	X      int
	YStart float64
	YEnd   float64
	Series Series
	Color  prefs.RGB
}

// PlanInput is everything one repaint depends on.
type PlanInput struct {
	Samples []store.Sample
	Now     int64
	Height  int
	ScaleKB int
	Palette Palette
}

// Plan maps samples onto vertical segments for a canvas Height pixels tall
// where ScaleKB kB/s spans the full height. The newest completed second
// (Now-1) lands in column 0 and each older second moves one column right.
//
// Each sample yields two segments drawn in order: the overlap colour from the
// baseline up to the smaller of the two values, then the larger series' own
// colour from there to its own height. Values above the scale produce
// negative y and are not clipped here.
//
// Plan has no side effects. A non-positive height or scale yields no segments.
func Plan(in PlanInput) []Segment {
	if in.Height <= 0 || in.ScaleKB <= 0 {
		return nil
	}

	h := float64(in.Height)
	full := ScaleBytes(in.ScaleKB)
	segments := make([]Segment, 0, 2*len(in.Samples))

	for _, s := range in.Samples {
		x := int(in.Now - s.Timestamp - 1)
		yBase := h
		yDl := h - float64(s.Download)*h/full
		yUl := h - float64(s.Upload)*h/full

		if s.Download < s.Upload {
			segments = append(segments,
				Segment{X: x, YStart: yBase, YEnd: yDl, Series: SeriesOverlap, Color: in.Palette.Overlap},
				Segment{X: x, YStart: yDl, YEnd: yUl, Series: SeriesUpload, Color: in.Palette.Upload},
			)
		} else {
			segments = append(segments,
				Segment{X: x, YStart: yBase, YEnd: yUl, Series: SeriesOverlap, Color: in.Palette.Overlap},
				Segment{X: x, YStart: yUl, YEnd: yDl, Series: SeriesDownload, Color: in.Palette.Download},
			)
		}
	}
	return segments
}

// ScaleBytes converts the scale preference (kB/s) to bytes per second.
func ScaleBytes(scaleKB int) float64 {
	return float64(scaleKB) * 1024
}

// Caption formats the most recent completed second in kilobytes.
func Caption(p store.Pair) string {
	return fmt.Sprintf("DL: %.2f UL: %.2f", float64(p.Download)/1000, float64(p.Upload)/1000)
}
