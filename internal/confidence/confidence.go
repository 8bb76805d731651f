// Package confidence scores how likely a learning path is to get the
// learner to their goal.
package confidence

import (
	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/profile"
)

// Options are the weights of the confidence formula.
type Options struct {
	// RatingWeight and PrerequisiteWeight split the base score between the
	// resource rating and how well its prerequisites are covered.
	RatingWeight       float64 `koanf:"rating_weight" validate:"gte=0,lte=1"`
	PrerequisiteWeight float64 `koanf:"prerequisite_weight" validate:"gte=0,lte=1"`
	// PathCredit is the credit for a prerequisite taught earlier in the
	// path rather than already held by the learner.
	PathCredit float64 `koanf:"path_credit" validate:"gte=0,lte=1"`
	// PenaltyWeight scales the over-budget share into a score penalty.
	PenaltyWeight float64 `koanf:"penalty_weight" validate:"gte=0,lte=1"`
}

// DefaultOptions returns the standard confidence weights.
func DefaultOptions() Options {
	return Options{
		RatingWeight:       0.6,
		PrerequisiteWeight: 0.4,
		PathCredit:         0.75,
		PenaltyWeight:      0.5,
	}
}

// StepScore is the confidence of one step and its components.
type StepScore struct {
	ResourceID   string  `json:"resource_id"`
	Score        float64 `json:"score"`
	Rating       float64 `json:"rating"`
	Prerequisite float64 `json:"prerequisite"`
	Penalty      float64 `json:"penalty"`
}

// Breakdown is the overall confidence and its per-step parts, in path order.
type Breakdown struct {
	Overall float64     `json:"overall"`
	Steps   []StepScore `json:"steps"`
}

// Scorer computes path confidence. It is deterministic and stateless.
type Scorer struct {
	opts Options
}

// NewScorer returns a Scorer using opts.
func NewScorer(opts Options) *Scorer {
	return &Scorer{opts: opts}
}

// Score rates the ordered path against p and budget. An empty path scores
// 100: there is nothing left to learn.
func (s *Scorer) Score(path []catalog.Resource, p *profile.Profile, budget profile.Budget) Breakdown {
	if len(path) == 0 {
		return Breakdown{Overall: 100}
	}

	var totalHours, totalCost float64
	for _, r := range path {
		totalHours += r.EstimatedHours
		totalCost += r.CostUSD
	}
	costOver := overShare(totalCost, budget.CostUSD, budget.CostLimited)
	hoursOver := overShare(totalHours, budget.Hours, budget.HoursLimited)

	b := Breakdown{Steps: make([]StepScore, 0, len(path))}
	var weighted float64
	for i, r := range path {
		step := StepScore{
			ResourceID:   r.ID,
			Rating:       r.Rating / 5,
			Prerequisite: s.prerequisiteCoverage(r, path[:i], p),
		}

		over := hoursOver
		if r.CostUSD > 0 {
			over = max(over, costOver)
		}
		step.Penalty = 100 * s.opts.PenaltyWeight * over

		raw := 100*(s.opts.RatingWeight*step.Rating+s.opts.PrerequisiteWeight*step.Prerequisite) - step.Penalty
		step.Score = clamp(raw, 0, 100)

		b.Steps = append(b.Steps, step)
		weighted += step.Score * r.EstimatedHours
	}

	if totalHours > 0 {
		b.Overall = weighted / totalHours
	}
	return b
}

// prerequisiteCoverage is the mean credit over r's prerequisites: full
// credit when the learner holds the skill, PathCredit when an earlier
// step teaches it, nothing otherwise.
func (s *Scorer) prerequisiteCoverage(r catalog.Resource, earlier []catalog.Resource, p *profile.Profile) float64 {
	if len(r.Prerequisites) == 0 {
		return 1
	}
	var sum float64
	for _, pre := range r.Prerequisites {
		switch {
		case p.Has(pre):
			sum++
		case taughtBy(earlier, pre):
			sum += s.opts.PathCredit
		}
	}
	return sum / float64(len(r.Prerequisites))
}

func taughtBy(path []catalog.Resource, skill string) bool {
	for _, r := range path {
		if r.Teaches(skill) {
			return true
		}
	}
	return false
}

// overShare is the fraction of total that lies beyond limit.
func overShare(total, limit float64, limited bool) float64 {
	if !limited || total <= limit || total <= 0 {
		return 0
	}
	return (total - limit) / total
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
