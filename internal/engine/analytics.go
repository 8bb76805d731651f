package engine

import (
	"github.com/abhisek/skillpath/internal/catalog"
)

// PathAnalytics summarizes a single path.
type PathAnalytics struct {
	Resources            int                              `json:"resources"`
	ResourceTypes        map[catalog.ResourceType]int     `json:"resource_types"`
	Difficulty           map[string]int                   `json:"difficulty"`
	AverageRating        float64                          `json:"average_rating"`
	FreeResources        int                              `json:"free_resources"`
	CostByType           map[catalog.ResourceType]float64 `json:"cost_by_type"`
	WeeklyHours          float64                          `json:"weekly_hours"`
	PrerequisiteCoverage float64                          `json:"prerequisite_coverage"`
	Readiness            float64                          `json:"readiness"`
	AverageScore         float64                          `json:"average_score"`
	// HoursBySkill splits each step's hours evenly over the gap skills it
	// teaches, or over everything it teaches when it fills a prerequisite
	// outside the gap. The values sum to the path's total hours.
	HoursBySkill         map[string]float64               `json:"hours_by_skill"`
}

// Analyze derives per-path analytics. Weekly hours spread the path's total
// over its duration at WeeksPerMonth.
func (e *Engine) Analyze(lp *LearningPath) PathAnalytics {
	a := PathAnalytics{
		Resources:     len(lp.Steps),
		ResourceTypes: make(map[catalog.ResourceType]int),
		Difficulty:    make(map[string]int),
		CostByType:    make(map[catalog.ResourceType]float64),
		Readiness:     lp.Readiness,
		HoursBySkill:  make(map[string]float64),
	}
	if len(lp.Steps) == 0 {
		return a
	}

	var rating, score float64
	covered := 0
	for _, s := range lp.Steps {
		r := s.Resource
		a.ResourceTypes[r.Type]++
		a.Difficulty[r.Difficulty.String()]++
		a.CostByType[r.Type] += r.CostUSD
		rating += r.Rating
		score += s.Score
		addHours(a.HoursBySkill, lp, r)
		if r.IsFree() {
			a.FreeResources++
		}
		if s.Confidence.Prerequisite >= 1 {
			covered++
		}
	}
	a.AverageRating = rating / float64(len(lp.Steps))
	a.AverageScore = score / float64(len(lp.Steps))
	a.PrerequisiteCoverage = float64(covered) / float64(len(lp.Steps))
	if lp.DurationMonths > 0 {
		a.WeeklyHours = lp.TotalHours / (float64(lp.DurationMonths) * e.cfg.WeeksPerMonth)
	}
	return a
}

func addHours(out map[string]float64, lp *LearningPath, r catalog.Resource) {
	var targets []string
	for _, g := range lp.Gaps {
		if r.Teaches(g.Skill) {
			targets = append(targets, g.Skill)
		}
	}
	if len(targets) == 0 {
		targets = r.Taught()
	}
	if len(targets) == 0 {
		return
	}
	share := r.EstimatedHours / float64(len(targets))
	for _, skill := range targets {
		out[skill] += share
	}
}

// AnalyticsSummary aggregates several paths. It is derived from the paths
// as generated; nothing is rescored.
type AnalyticsSummary struct {
	Paths              int                          `json:"paths"`
	Resources          int                          `json:"resources"`
	TotalHours         float64                      `json:"total_hours"`
	TotalCost          float64                      `json:"total_cost"`
	MeanConfidence     float64                      `json:"mean_confidence"`
	ResourceTypes      map[catalog.ResourceType]int `json:"resource_types"`
	Difficulty         map[string]int               `json:"difficulty"`
	FreeResources      int                          `json:"free_resources"`
	ConstraintViolated int                          `json:"constraint_violated"`
	AlreadyMet         int                          `json:"already_met"`
}

// Compare aggregates metrics across paths. See the package-level Compare.
func (e *Engine) Compare(paths []*LearningPath) AnalyticsSummary {
	return Compare(paths)
}

// Compare aggregates metrics across paths without an engine, for paths
// loaded from history.
func Compare(paths []*LearningPath) AnalyticsSummary {
	s := AnalyticsSummary{
		Paths:         len(paths),
		ResourceTypes: make(map[catalog.ResourceType]int),
		Difficulty:    make(map[string]int),
	}
	if len(paths) == 0 {
		return s
	}

	var confidence float64
	for _, lp := range paths {
		s.TotalHours += lp.TotalHours
		s.TotalCost += lp.TotalCost
		confidence += lp.Confidence
		if lp.ConstraintViolated {
			s.ConstraintViolated++
		}
		if lp.AlreadyMet {
			s.AlreadyMet++
		}
		for _, step := range lp.Steps {
			s.Resources++
			s.ResourceTypes[step.Resource.Type]++
			s.Difficulty[step.Resource.Difficulty.String()]++
			if step.Resource.IsFree() {
				s.FreeResources++
			}
		}
	}
	s.MeanConfidence = confidence / float64(len(paths))
	return s
}
