package quiz

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/paulmach/orb"

	"geoquiz/internal/geom"
	"geoquiz/internal/hint"
)

func square(minLon, minLat, maxLon, maxLat float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{minLon, minLat}, {maxLon, minLat}, {maxLon, maxLat}, {minLon, maxLat}, {minLon, minLat},
	}}
}

var fixedNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func newController(regions []geom.Region, user string) *Controller {
	return New(regions, Options{
		Rand:   rand.New(rand.NewSource(1)),
		UserID: user,
		Now:    func() time.Time { return fixedNow },
	})
}

// startWithHint starts a round and delivers its hint.
func startWithHint(t *testing.T, c *Controller) HintRequest {
	t.Helper()
	req, ok := c.StartRound()
	if !ok {
		t.Fatal("StartRound refused")
	}
	if !c.ApplyHint(req.Gen, hint.Hint{Text: "a clue", Source: hint.SourceFallback}) {
		t.Fatal("ApplyHint refused current generation")
	}
	return req
}

func TestSquareRegionClickScores(t *testing.T) {
	sq := geom.Region{ID: "SQ", Name: "Square", EnglishName: "Square", Geometry: square(-120, -20, 120, 60)}
	c := newController([]geom.Region{sq}, "player")
	startWithHint(t, c)

	paths := geom.BuildPaths(c.Regions())
	x, y := geom.Project(0, 20)
	i := geom.HitTest(paths, x, y)
	if i != 0 {
		t.Fatalf("click inside the square hit %d", i)
	}
	res, ok := c.Submit(paths[i].ID, 1)
	if !ok {
		t.Fatal("Submit rejected")
	}
	if !res.Feedback.Correct || res.Award != CorrectAward || c.Score() != 10 {
		t.Errorf("result = %+v, score = %d", res, c.Score())
	}
	if res.Target.ID != "SQ" {
		t.Errorf("fit target = %q", res.Target.ID)
	}
	if !res.Persist || res.Outcome.UserID != "player" || res.Outcome.Hint != "a clue" || !res.Outcome.CreatedAt.Equal(fixedNow) {
		t.Errorf("outcome = %+v", res.Outcome)
	}
	if !strings.Contains(res.Feedback.Message, "Square") {
		t.Errorf("message = %q", res.Feedback.Message)
	}

	// one accepted answer per round
	if _, ok := c.Submit("SQ", 1); ok {
		t.Error("second submit accepted")
	}
	if c.Score() != 10 {
		t.Errorf("score changed to %d", c.Score())
	}
	r, _ := c.Round()
	if r.Feedback == nil || !r.Feedback.Correct {
		t.Errorf("feedback = %+v", r.Feedback)
	}
}

func TestWrongAnswerNamesBoth(t *testing.T) {
	regions := []geom.Region{
		{ID: "A", Name: "Alpha", Geometry: square(0, 0, 1, 1)},
		{ID: "B", Name: "Beta", Geometry: square(2, 2, 3, 3)},
	}
	c := newController(regions, "")
	req := startWithHint(t, c)
	wrong := "A"
	if req.Region.ID == "A" {
		wrong = "B"
	}
	res, ok := c.Submit(wrong, 0)
	if !ok || res.Feedback.Correct || res.Award != 0 {
		t.Fatalf("result = %+v", res)
	}
	sel, _ := c.Region(wrong)
	if !strings.Contains(res.Feedback.Message, sel.Name) || !strings.Contains(res.Feedback.Message, req.Region.Name) {
		t.Errorf("message = %q", res.Feedback.Message)
	}
	if res.Persist {
		t.Error("no user identity, nothing to persist")
	}
	if c.Stats().Played != 1 || c.Stats().Correct != 0 || c.Score() != 0 {
		t.Errorf("stats = %+v", c.Stats())
	}
}

func TestSubmitGuards(t *testing.T) {
	c := newController([]geom.Region{{ID: "A", Name: "Alpha", Geometry: square(0, 0, 1, 1)}}, "")
	if _, ok := c.Submit("A", 0); ok {
		t.Error("accepted without a round")
	}
	req, _ := c.StartRound()
	if _, ok := c.Submit("A", 0); ok {
		t.Error("accepted while hint loading")
	}
	c.ApplyHint(req.Gen, hint.Hint{Text: "x"})
	if _, ok := c.Submit("A", 2); ok {
		t.Error("accepted with two pointers down")
	}
	if _, ok := c.Submit("A", 1); !ok {
		t.Error("valid submit rejected")
	}
}

func TestStartRoundEmptyIsNoop(t *testing.T) {
	c := newController(nil, "")
	if _, ok := c.StartRound(); ok {
		t.Fatal("round started without regions")
	}
	if _, ok := c.Round(); ok {
		t.Error("round present")
	}
}

func TestStartRoundResets(t *testing.T) {
	c := newController([]geom.Region{{ID: "A", Name: "Alpha"}}, "")
	req := startWithHint(t, c)
	c.Submit("A", 0)
	c.ToggleHintPanel()
	if c.HintExpanded() {
		t.Fatal("toggle did not minimize")
	}
	next, _ := c.StartRound()
	if next.Gen != req.Gen+1 {
		t.Errorf("gen = %d, want %d", next.Gen, req.Gen+1)
	}
	r, _ := c.Round()
	if r.Feedback != nil || r.Selected != "" || !r.HintLoading || !c.HintExpanded() {
		t.Errorf("round not reset: %+v", r)
	}
}

func TestStaleHintDiscarded(t *testing.T) {
	c := newController([]geom.Region{{ID: "A", Name: "Alpha"}, {ID: "B", Name: "Beta"}}, "")
	first, _ := c.StartRound()
	second, _ := c.StartRound()
	if c.ApplyHint(first.Gen, hint.Hint{Text: "old"}) {
		t.Fatal("stale hint applied")
	}
	r, _ := c.Round()
	if !r.HintLoading || r.Hint.Text != "" {
		t.Errorf("round = %+v", r)
	}
	if !c.ApplyHint(second.Gen, hint.Hint{Text: "new"}) {
		t.Fatal("current hint refused")
	}
	if c.ApplyHint(second.Gen, hint.Hint{Text: "dup"}) {
		t.Error("hint applied twice")
	}
	r, _ = c.Round()
	if r.Hint.Text != "new" {
		t.Errorf("hint = %q", r.Hint.Text)
	}
}

func TestStreak(t *testing.T) {
	c := newController([]geom.Region{{ID: "A", Name: "Alpha"}}, "")
	for i := 0; i < 3; i++ {
		startWithHint(t, c)
		c.Submit("A", 0)
	}
	startWithHint(t, c)
	c.Submit("nope", 0)
	s := c.Stats()
	if s.Streak != 0 || s.BestStreak != 3 || s.Played != 4 || s.Correct != 3 || s.Score != 30 {
		t.Errorf("stats = %+v", s)
	}
}

func TestResolveName(t *testing.T) {
	c := newController([]geom.Region{
		{ID: "JPN", Name: "日本", EnglishName: "Japan"},
		{ID: "FRA", Name: "France", EnglishName: "France"},
		{ID: "DEU", Name: "Germany", EnglishName: "Germany"},
	}, "")
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"japan", "JPN", true},
		{" 日本 ", "JPN", true},
		{"fra", "FRA", true},
		{"Japn", "JPN", true},
		{"Germny", "DEU", true},
		{"Atlantis", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		r, ok := c.ResolveName(tt.in)
		if ok != tt.wantOK || r.ID != tt.want {
			t.Errorf("ResolveName(%q) = %q, %v; want %q, %v", tt.in, r.ID, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSubmitName(t *testing.T) {
	c := newController([]geom.Region{{ID: "JPN", Name: "Japan", EnglishName: "Japan"}}, "")
	startWithHint(t, c)
	if _, ok := c.SubmitName("Atlantis", 0); ok {
		t.Fatal("unresolvable name accepted")
	}
	res, ok := c.SubmitName("japan", 0)
	if !ok || !res.Feedback.Correct {
		t.Errorf("result = %+v", res)
	}
}
