// Package engine turns a learner profile into learning paths: gap
// analysis, resource selection, sequencing and confidence scoring, one
// goal at a time.
package engine

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/confidence"
	"github.com/abhisek/skillpath/internal/gap"
	"github.com/abhisek/skillpath/internal/profile"
	"github.com/abhisek/skillpath/internal/selector"
	"github.com/abhisek/skillpath/internal/sequencer"
	"github.com/abhisek/skillpath/internal/skills"
)

// Config holds engine settings.
type Config struct {
	Selector   selector.Options
	Confidence confidence.Options

	// DefaultWeeks is the time budget of a goal without a deadline.
	DefaultWeeks float64
	// WeeksPerMonth converts goal deadlines to weeks.
	WeeksPerMonth float64

	// Taxonomy is the base set of recognized skills. Skills named by the
	// catalog are always added to it.
	Taxonomy *skills.Taxonomy

	Logger zerolog.Logger
	Now    func() time.Time
	NewID  func() string
}

// DefaultConfig returns sensible defaults for path generation.
func DefaultConfig() Config {
	return Config{
		Selector:      selector.DefaultOptions(),
		Confidence:    confidence.DefaultOptions(),
		DefaultWeeks:  12,
		WeeksPerMonth: 4.33,
		Taxonomy:      skills.DefaultTaxonomy(),
		Logger:        zerolog.Nop(),
		Now:           time.Now,
		NewID:         func() string { return uuid.NewString() },
	}
}

// Engine generates learning paths against one catalog. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	catalog  *catalog.Catalog
	cfg      Config
	analyzer *gap.Analyzer
	selector *selector.Selector
	scorer   *confidence.Scorer
	log      zerolog.Logger
}

// New creates an engine over c. Unset fields of cfg take their defaults.
func New(c *catalog.Catalog, cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.DefaultWeeks <= 0 {
		cfg.DefaultWeeks = def.DefaultWeeks
	}
	if cfg.WeeksPerMonth <= 0 {
		cfg.WeeksPerMonth = def.WeeksPerMonth
	}
	if cfg.Confidence == (confidence.Options{}) {
		cfg.Confidence = def.Confidence
	}
	if cfg.Taxonomy == nil {
		cfg.Taxonomy = def.Taxonomy
	}
	if cfg.Now == nil {
		cfg.Now = def.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = def.NewID
	}

	return &Engine{
		catalog:  c,
		cfg:      cfg,
		analyzer: gap.NewAnalyzer(c.Taxonomy(cfg.Taxonomy)),
		selector: selector.New(c, cfg.Selector),
		scorer:   confidence.NewScorer(cfg.Confidence),
		log:      cfg.Logger.With().Str("component", "engine").Logger(),
	}
}

// Catalog returns the catalog the engine plans against.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// GeneratePath plans a single goal. Domain failures are returned as
// *gap.ProfileIncompleteError, *selector.NoResourcesFoundError or
// *sequencer.CyclicPrerequisiteError.
func (e *Engine) GeneratePath(p *profile.Profile, goal profile.Goal) (*LearningPath, error) {
	report, err := e.analyzer.Analyze(p, goal)
	if err != nil {
		return nil, err
	}

	budget := p.BudgetFor(goal, e.cfg.DefaultWeeks, e.cfg.WeeksPerMonth)
	lp := &LearningPath{
		ID:          e.cfg.NewID(),
		Goal:        goal,
		Gaps:        report.Gaps,
		Budget:      budget,
		Readiness:   report.Readiness,
		GeneratedAt: e.cfg.Now().UTC(),
	}
	for _, g := range report.Gaps {
		if g.Target {
			lp.Skill = g.Skill
		}
	}

	if report.Ready {
		lp.AlreadyMet = true
		lp.Confidence = 100
		return lp, nil
	}

	sel, err := e.selector.Select(report, p, budget)
	if err != nil {
		return nil, err
	}

	seq, err := sequencer.Sequence(sel, p, budget)
	if err != nil {
		return nil, err
	}

	lp.TotalHours = seq.TotalHours
	lp.TotalCost = seq.TotalCost
	lp.ConstraintViolated = seq.ConstraintViolated
	for _, d := range seq.Dropped {
		lp.Dropped = append(lp.Dropped, d.Resource)
	}

	resources := make([]catalog.Resource, len(seq.Steps))
	for i, c := range seq.Steps {
		resources[i] = c.Resource
	}
	breakdown := e.scorer.Score(resources, p, budget)
	lp.Confidence = breakdown.Overall

	lp.Steps = make([]Step, len(seq.Steps))
	for i, c := range seq.Steps {
		lp.Steps[i] = Step{
			Resource:   c.Resource,
			Score:      c.Score,
			Factors:    c.Factors,
			Confidence: breakdown.Steps[i],
		}
	}
	lp.DurationMonths = durationMonths(lp.TotalHours, p.Constraints.HoursPerWeek, budget.Weeks, len(lp.Steps))
	return lp, nil
}

// Generate plans every goal in goals, or every profile goal by priority
// when none are given. A goal that fails for a domain reason is recorded in
// Batch.Failures and the remaining goals still run. Any other error aborts.
func (e *Engine) Generate(p *profile.Profile, goals ...profile.Goal) (*Batch, error) {
	if len(goals) == 0 {
		goals = p.GoalsByPriority()
	}

	batch := &Batch{}
	for _, goal := range goals {
		lp, err := e.GeneratePath(p, goal)
		if err != nil {
			failure, ok := classify(goal, err)
			if !ok {
				return nil, fmt.Errorf("generate path for %q: %w", goal.Skill, err)
			}
			e.log.Warn().
				Str("goal", goal.Skill).
				Str("kind", string(failure.Kind)).
				Msg(failure.Message)
			batch.Failures = append(batch.Failures, failure)
			continue
		}

		e.log.Debug().
			Str("goal", goal.Skill).
			Str("path_id", lp.ID).
			Int("steps", len(lp.Steps)).
			Float64("hours", lp.TotalHours).
			Float64("cost", lp.TotalCost).
			Float64("confidence", lp.Confidence).
			Bool("constraint_violated", lp.ConstraintViolated).
			Bool("already_met", lp.AlreadyMet).
			Msg("path generated")
		batch.Paths = append(batch.Paths, lp)
	}
	return batch, nil
}

// classify maps a domain error to a GoalFailure.
func classify(goal profile.Goal, err error) (GoalFailure, bool) {
	f := GoalFailure{Goal: goal, Message: err.Error()}

	var pie *gap.ProfileIncompleteError
	var nrf *selector.NoResourcesFoundError
	var cpe *sequencer.CyclicPrerequisiteError
	switch {
	case errors.As(err, &pie):
		f.Kind = FailureProfileIncomplete
		f.Skill = pie.Skill
	case errors.As(err, &nrf):
		f.Kind = FailureNoResources
		f.Skill = nrf.Skill
	case errors.As(err, &cpe):
		f.Kind = FailureCyclicPrerequisite
		f.Skill = goal.Skill
	default:
		return GoalFailure{}, false
	}
	return f, true
}

// durationMonths estimates calendar months at the learner's weekly pace,
// counting four weeks a month. A non-empty path takes at least a month.
func durationMonths(hours, hoursPerWeek, budgetWeeks float64, steps int) int {
	if steps == 0 {
		return 0
	}
	var months float64
	if hoursPerWeek > 0 {
		months = math.Ceil(hours / (hoursPerWeek * 4))
	} else {
		months = math.Ceil(budgetWeeks / 4)
	}
	return max(1, int(months))
}
