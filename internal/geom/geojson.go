package geom

import (
	"errors"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"golang.org/x/text/language"
)

// DecodeOptions controls how features become Regions.
type DecodeOptions struct {
	// Lang is the display language for localized names; the zero tag
	// keeps the English admin name.
	Lang language.Tag
}

// DecodeStats counts what the load filter dropped.
type DecodeStats struct {
	Features    int
	NoGeometry  int
	Unsupported int
	Empty       int
	Unnamed     int
}

func (s DecodeStats) Kept() int {
	return s.Features - s.NoGeometry - s.Unsupported - s.Empty - s.Unnamed
}

// DecodeFeatureCollection parses a GeoJSON document and returns the regions
// that pass the load filter: polygonal geometry with points and at least one
// name field. Bare Feature documents are accepted too.
func DecodeFeatureCollection(data []byte, opts DecodeOptions) ([]Region, DecodeStats, error) {
	var stats DecodeStats
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil || fc.Type != "FeatureCollection" {
		f, ferr := geojson.UnmarshalFeature(data)
		if ferr != nil || f.Type != "Feature" {
			if err == nil {
				err = errors.New("not a FeatureCollection")
			}
			return nil, stats, fmt.Errorf("geojson: %w", err)
		}
		fc = geojson.NewFeatureCollection()
		fc.Append(f)
	}
	regions := make([]Region, 0, len(fc.Features))
	for _, f := range fc.Features {
		stats.Features++
		if f == nil || f.Geometry == nil {
			stats.NoGeometry++
			continue
		}
		var g orb.Geometry
		switch v := f.Geometry.(type) {
		case orb.Polygon:
			g = v
		case orb.MultiPolygon:
			g = v
		default:
			stats.Unsupported++
			continue
		}
		r := Region{Geometry: g}
		if r.pointCount() == 0 {
			stats.Empty++
			continue
		}
		props := newFeatureProps(f.Properties)
		english := props.first("ADMIN", "NAME_EN")
		alt := props.first("NAME", "NAME_LONG")
		if english == "" && alt == "" {
			stats.Unnamed++
			continue
		}
		r.EnglishName = english
		if r.EnglishName == "" {
			r.EnglishName = alt
		}
		r.ISO2 = props.first("ISO_A2", "ISO_A2_EH")
		r.ID = props.first("ISO_A3", "ADM0_A3", "ISO_A2")
		if r.ID == "" {
			r.ID = r.EnglishName
		}
		r.Name = localizedName(r.ISO2, opts.Lang)
		if r.Name == "" {
			r.Name = r.EnglishName
		}
		regions = append(regions, r)
	}
	return regions, stats, nil
}

// LoadFile reads a local GeoJSON document.
func LoadFile(path string, opts DecodeOptions) ([]Region, DecodeStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, DecodeStats{}, err
	}
	return DecodeFeatureCollection(data, opts)
}
