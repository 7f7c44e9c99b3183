package geom

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// properties keyed by upper-cased name; Natural Earth ships both cases.
type featureProps map[string]string

// Natural Earth marks missing codes and names with -99.
const missingValue = "-99"

// An exact upper-case key beats its other-case spellings; among those the
// lexically smallest key wins so the result never depends on map order.
func newFeatureProps(raw map[string]any) featureProps {
	p := make(featureProps, len(raw))
	from := make(map[string]string, len(raw))
	for k, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" || s == missingValue {
			continue
		}
		up := strings.ToUpper(k)
		if prev, seen := from[up]; seen && !preferKey(k, prev, up) {
			continue
		}
		p[up] = s
		from[up] = k
	}
	return p
}

func preferKey(k, prev, up string) bool {
	if prev == up {
		return false
	}
	return k == up || k < prev
}

func (p featureProps) first(keys ...string) string {
	for _, k := range keys {
		if v, ok := p[k]; ok {
			return v
		}
	}
	return ""
}

// localizedName names an ISO 3166 alpha-2 region in lang. It returns ""
// when lang is unset, the code is unknown or the namer has no entry.
func localizedName(iso2 string, lang language.Tag) string {
	if iso2 == "" || lang == language.Und {
		return ""
	}
	region, err := language.ParseRegion(iso2)
	if err != nil {
		return ""
	}
	return display.Regions(lang).Name(region)
}
