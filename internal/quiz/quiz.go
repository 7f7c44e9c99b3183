// Package quiz holds round state: target selection, hint bookkeeping,
// answer evaluation and scoring. A Controller is driven from a single event
// loop and is not safe for concurrent use.
package quiz

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"geoquiz/internal/geom"
	"geoquiz/internal/hint"
	"geoquiz/internal/history"
	"geoquiz/internal/metrics"
)

// CorrectAward is added to the score for each correct answer.
const CorrectAward = 10

// MaxNameDistance bounds fuzzy matching of typed answers.
const MaxNameDistance = 3

// Feedback is the verdict for a round; set at most once.
type Feedback struct {
	Correct    bool
	Message    string
	SelectedID string
}

// Round is the active question.
type Round struct {
	Gen         uint64
	Target      geom.Region
	Hint        hint.Hint
	HintLoading bool
	Selected    string
	Feedback    *Feedback
}

// HintRequest asks the caller to fetch a hint for Region and hand it back
// through ApplyHint with the same Gen.
type HintRequest struct {
	Gen    uint64
	Region geom.Region
}

// Result describes an accepted answer.
type Result struct {
	Feedback Feedback
	Award    int
	// Target is the region the view should frame.
	Target geom.Region
	// Outcome is what to persist; Persist is false without a user identity.
	Outcome history.Outcome
	Persist bool
}

// Stats are the running totals.
type Stats struct {
	Score      int
	Streak     int
	BestStreak int
	Played     int
	Correct    int
}

// Options configures a Controller. Zero values pick sensible defaults.
type Options struct {
	Rand   *rand.Rand
	UserID string
	Now    func() time.Time
}

// Controller runs quiz rounds over a region collection.
type Controller struct {
	regions []geom.Region
	byID    map[string]int
	rng     *rand.Rand
	user    string
	now     func() time.Time

	round        *Round
	gen          uint64
	stats        Stats
	hintExpanded bool
}

// New returns a controller over regions, which may be empty until SetRegions.
func New(regions []geom.Region, opts Options) *Controller {
	c := &Controller{
		rng:          opts.Rand,
		user:         opts.UserID,
		now:          opts.Now,
		hintExpanded: true,
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.now == nil {
		c.now = time.Now
	}
	c.SetRegions(regions)
	return c
}

// SetRegions replaces the collection. An active round keeps its target.
func (c *Controller) SetRegions(regions []geom.Region) {
	c.regions = regions
	c.byID = make(map[string]int, len(regions))
	for i, r := range regions {
		c.byID[r.ID] = i
	}
}

func (c *Controller) Regions() []geom.Region { return c.regions }

// UserID is the identity outcomes are recorded under; empty disables persistence.
func (c *Controller) UserID() string { return c.user }

// Region looks up a region by ID; the last duplicate wins.
func (c *Controller) Region(id string) (geom.Region, bool) {
	i, ok := c.byID[id]
	if !ok {
		return geom.Region{}, false
	}
	return c.regions[i], true
}

// Round returns the active round, if any.
func (c *Controller) Round() (Round, bool) {
	if c.round == nil {
		return Round{}, false
	}
	return *c.round, true
}

func (c *Controller) Stats() Stats { return c.stats }

func (c *Controller) Score() int { return c.stats.Score }

// HintExpanded reports whether the hint panel is shown in full.
func (c *Controller) HintExpanded() bool { return c.hintExpanded }

func (c *Controller) ToggleHintPanel() { c.hintExpanded = !c.hintExpanded }

// StartRound picks a random target and returns the hint to fetch. It does
// nothing when no regions are loaded.
func (c *Controller) StartRound() (HintRequest, bool) {
	if len(c.regions) == 0 {
		return HintRequest{}, false
	}
	target := c.regions[c.rng.Intn(len(c.regions))]
	c.gen++
	c.round = &Round{Gen: c.gen, Target: target, HintLoading: true}
	c.hintExpanded = true
	metrics.RoundsTotal.Inc()
	return HintRequest{Gen: c.gen, Region: target}, true
}

// ApplyHint installs a fetched hint. Responses for superseded rounds are
// dropped and false is returned.
func (c *Controller) ApplyHint(gen uint64, h hint.Hint) bool {
	if c.round == nil || c.round.Gen != gen || !c.round.HintLoading {
		return false
	}
	c.round.Hint = h
	c.round.HintLoading = false
	return true
}

// CanSubmit reports whether an answer would currently be accepted.
func (c *Controller) CanSubmit(activePointers int) bool {
	return c.round != nil && c.round.Feedback == nil && !c.round.HintLoading && activePointers <= 1
}

// Submit evaluates a selection. It is a no-op (ok=false) without an active
// round, after feedback, while the hint loads or with more than one pointer down.
func (c *Controller) Submit(id string, activePointers int) (Result, bool) {
	if !c.CanSubmit(activePointers) {
		return Result{}, false
	}
	r := c.round
	target := r.Target
	r.Selected = id

	name := id
	if sel, ok := c.Region(id); ok {
		name = sel.Name
	}
	fb := Feedback{Correct: id == target.ID, SelectedID: id}
	award := 0
	c.stats.Played++
	if fb.Correct {
		award = CorrectAward
		c.stats.Score += award
		c.stats.Correct++
		c.stats.Streak++
		if c.stats.Streak > c.stats.BestStreak {
			c.stats.BestStreak = c.stats.Streak
		}
		fb.Message = fmt.Sprintf("Correct! That is %s.", name)
		metrics.AnswersTotal.WithLabelValues("correct").Inc()
	} else {
		c.stats.Streak = 0
		fb.Message = fmt.Sprintf("Not quite: that is %s. The answer was %s.", name, target.Name)
		metrics.AnswersTotal.WithLabelValues("wrong").Inc()
	}
	r.Feedback = &fb

	return Result{
		Feedback: fb,
		Award:    award,
		Target:   target,
		Outcome: history.Outcome{
			UserID:     c.user,
			RegionID:   target.ID,
			RegionName: target.Name,
			Correct:    fb.Correct,
			Hint:       r.Hint.Text,
			CreatedAt:  c.now(),
		},
		Persist: c.user != "",
	}, true
}

// SubmitName resolves typed text to a region and submits it. Unresolvable
// text is ignored.
func (c *Controller) SubmitName(text string, activePointers int) (Result, bool) {
	r, ok := c.ResolveName(text)
	if !ok {
		return Result{}, false
	}
	return c.Submit(r.ID, activePointers)
}

// ResolveName matches text against region names and IDs, case-insensitively,
// falling back to the closest display or English name within MaxNameDistance.
func (c *Controller) ResolveName(text string) (geom.Region, bool) {
	q := strings.ToLower(strings.TrimSpace(text))
	if q == "" {
		return geom.Region{}, false
	}
	for i := len(c.regions) - 1; i >= 0; i-- {
		r := c.regions[i]
		if strings.EqualFold(r.Name, q) || strings.EqualFold(r.EnglishName, q) || strings.EqualFold(r.ID, q) {
			return r, true
		}
	}
	best, bestDist := -1, MaxNameDistance+1
	for i, r := range c.regions {
		for _, n := range []string{r.Name, r.EnglishName} {
			if n == "" {
				continue
			}
			d := levenshtein.ComputeDistance(q, strings.ToLower(n))
			if d < bestDist {
				best, bestDist = i, d
			}
		}
	}
	if best < 0 {
		return geom.Region{}, false
	}
	return c.regions[best], true
}
