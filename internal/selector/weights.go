package selector

// Weights are the coefficients of the candidate scoring function.
type Weights struct {
	Rating      float64 `koanf:"rating" json:"rating" validate:"gte=0"`
	SkillMatch  float64 `koanf:"skill_match" json:"skill_match" validate:"gte=0"`
	CostFit     float64 `koanf:"cost_fit" json:"cost_fit" validate:"gte=0"`
	DurationFit float64 `koanf:"duration_fit" json:"duration_fit" validate:"gte=0"`
}

// DefaultWeights returns the standard scoring weights.
func DefaultWeights() Weights {
	return Weights{
		Rating:      0.4,
		SkillMatch:  0.3,
		CostFit:     0.2,
		DurationFit: 0.1,
	}
}

// Normalize returns a copy with weights scaled to sum to 1. All-zero
// weights normalize to the defaults.
func (w Weights) Normalize() Weights {
	sum := w.Rating + w.SkillMatch + w.CostFit + w.DurationFit
	if sum <= 0 {
		return DefaultWeights()
	}
	return Weights{
		Rating:      w.Rating / sum,
		SkillMatch:  w.SkillMatch / sum,
		CostFit:     w.CostFit / sum,
		DurationFit: w.DurationFit / sum,
	}
}
