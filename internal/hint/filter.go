package hint

import "regexp"

// coordinatePattern matches latitude/longitude vocabulary (Japanese and
// English), numbers followed by a degree sign or unit, and 35N-style pairs.
var coordinatePattern = regexp.MustCompile(
	`北緯|南緯|東経|西経|緯度|経度|` +
		`(?i:latitude|longitude)|` +
		`\d+(?:\.\d+)?\s*(?:°|º|(?i:deg(?:rees?)?)\b)|` +
		`\b\d+(?:\.\d+)?\s*[NSEW]\b`)

// LeaksCoordinates reports whether text gives away a position.
func LeaksCoordinates(text string) bool {
	return coordinatePattern.MatchString(text)
}

func (h Hint) leaks() bool {
	return LeaksCoordinates(h.Text) || LeaksCoordinates(h.Caption)
}
