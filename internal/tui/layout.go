package tui

const (
	sidebarWidth      = 28
	headerHeight      = 1
	footerHeight      = 2
	hintPanelExpanded = 5 // border + three text lines
	hintPanelMinified = 1
)

// layout is the screen geometry shared by View and mouse handling.
type layout struct {
	sidebarW int
	bannerH  int
	hintH    int
	mapX     int
	mapY     int
	mapW     int
	mapH     int
}

func (m Model) layout() layout {
	var l layout
	if m.showHistory {
		l.sidebarW = sidebarWidth
		l.mapX = sidebarWidth + 1
	}
	if m.loadErr != nil {
		l.bannerH = 1
	}
	l.hintH = hintPanelMinified
	if m.ctrl.HintExpanded() {
		l.hintH = hintPanelExpanded
	}
	l.mapY = headerHeight + l.bannerH + l.hintH
	l.mapW = max(10, m.width-l.mapX)
	l.mapH = max(4, m.height-l.mapY-footerHeight)
	return l
}

// inMap converts a screen cell to map-area coordinates.
func (l layout) inMap(x, y int) (int, int, bool) {
	cx, cy := x-l.mapX, y-l.mapY
	return cx, cy, cx >= 0 && cx < l.mapW && cy >= 0 && cy < l.mapH
}
