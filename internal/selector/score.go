package selector

import (
	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/profile"
	"github.com/abhisek/skillpath/internal/skills"
)

// Factors are the unweighted inputs of a candidate's score, each in [0, 1].
type Factors struct {
	Rating      float64 `json:"rating"`
	SkillMatch  float64 `json:"skill_match"`
	CostFit     float64 `json:"cost_fit"`
	DurationFit float64 `json:"duration_fit"`
}

// Score combines the factors with w.
func (f Factors) Score(w Weights) float64 {
	return w.Rating*f.Rating +
		w.SkillMatch*f.SkillMatch +
		w.CostFit*f.CostFit +
		w.DurationFit*f.DurationFit
}

// Merit combines the factors with w as if the resource fit the budget.
func (f Factors) Merit(w Weights) float64 {
	f.CostFit, f.DurationFit = 1, 1
	return f.Score(w)
}

// factorsFor computes the scoring factors of r. wanted holds normalized
// skill keys.
func factorsFor(r catalog.Resource, wanted map[string]bool, budget profile.Budget) Factors {
	f := Factors{
		Rating:      r.Rating / 5,
		CostFit:     1,
		DurationFit: 1,
	}

	if len(wanted) > 0 {
		hits := 0
		for _, s := range r.Taught() {
			if wanted[skills.Normalize(s)] {
				hits++
			}
		}
		f.SkillMatch = float64(hits) / float64(len(wanted))
	}

	if budget.CostLimited {
		f.CostFit = fit(r.CostUSD, budget.CostUSD)
	}
	if budget.HoursLimited {
		f.DurationFit = fit(r.EstimatedHours, budget.Hours)
	}
	return f
}

// fit is 1 while x stays within limit and decays linearly to 0 as x
// reaches twice the limit. A zero limit only fits zero.
func fit(x, limit float64) float64 {
	if x <= limit {
		return 1
	}
	if limit <= 0 {
		return 0
	}
	return max(0, 1-(x-limit)/limit)
}
