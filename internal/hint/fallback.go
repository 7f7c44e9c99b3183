package hint

import (
	"fmt"

	"geoquiz/internal/geom"
)

// Size thresholds in square degrees of the lon/lat bounding box.
const (
	LargeAreaThreshold  = 1000.0
	MediumAreaThreshold = 100.0
)

// Labels are the pieces a fallback hint is assembled from.
type Labels struct {
	NorthSouth string // "northern" or "southern"
	EastWest   string // "eastern" or "western"
	Size       string // "large", "medium-sized" or "small"
	Shape      string // "fragmented" or "contiguous"
}

// FallbackLabels derives the labels from r's geometry alone. A centre on the
// equator or prime meridian counts as northern/eastern.
func FallbackLabels(r geom.Region) Labels {
	l := Labels{NorthSouth: "northern", EastWest: "eastern", Size: "small", Shape: "contiguous"}
	if b, ok := geom.GeoBounds(r); ok {
		cx, cy := b.Center()
		if cy < 0 {
			l.NorthSouth = "southern"
		}
		if cx < 0 {
			l.EastWest = "western"
		}
		switch a := b.Area(); {
		case a >= LargeAreaThreshold:
			l.Size = "large"
		case a >= MediumAreaThreshold:
			l.Size = "medium-sized"
		}
	}
	if r.Fragmented() {
		l.Shape = "fragmented"
	}
	return l
}

// Fallback builds the deterministic hint for r.
func Fallback(r geom.Region) Hint {
	l := FallbackLabels(r)
	body := "It is a single contiguous landmass."
	if l.Shape == "fragmented" {
		body = "Its territory is split into several separate pieces."
	}
	return Hint{
		Text:    fmt.Sprintf("A %s region in the %s and %s hemispheres. %s", l.Size, l.NorthSouth, l.EastWest, body),
		Caption: fmt.Sprintf("%s / %s-%s / %s", l.Size, l.NorthSouth, l.EastWest, l.Shape),
		Source:  SourceFallback,
	}
}
