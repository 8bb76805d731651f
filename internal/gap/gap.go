// Package gap measures how far a learner is from a goal.
package gap

import (
	"fmt"
	"sort"

	"github.com/abhisek/skillpath/internal/profile"
	"github.com/abhisek/skillpath/internal/skills"
)

// ProfileIncompleteError is returned when a goal names a skill that no
// recognized taxonomy knows about.
type ProfileIncompleteError struct {
	Goal  profile.Goal
	Skill string
}

func (e *ProfileIncompleteError) Error() string {
	return fmt.Sprintf("goal skill %q is not a recognized skill", e.Skill)
}

// SkillGap is the distance between the learner and one required skill.
type SkillGap struct {
	Skill     string       `json:"skill"`
	Current   skills.Level `json:"current"`
	Required  skills.Level `json:"required"`
	Magnitude int          `json:"magnitude"`
	// Target is true for the goal skill itself and false for the skills
	// the goal implies.
	Target bool `json:"target"`
}

// NoPrerequisiteReadiness is the readiness of a goal skill that implies
// no prerequisites.
const NoPrerequisiteReadiness = 0.8

// Report is the gap analysis for one goal.
type Report struct {
	Goal  profile.Goal `json:"goal"`
	Gaps  []SkillGap   `json:"gaps"`
	Ready bool         `json:"ready"`
	// Readiness in [0, 1] rates how prepared the learner is to start on the
	// goal skill, from the level and self-rated confidence of each implied
	// prerequisite.
	Readiness float64 `json:"readiness"`
}

// Open returns the gaps with a positive magnitude, in report order.
func (r *Report) Open() []SkillGap {
	var out []SkillGap
	for _, g := range r.Gaps {
		if g.Magnitude > 0 {
			out = append(out, g)
		}
	}
	return out
}

// Required returns the required level of skill, and whether the report
// names it at all.
func (r *Report) Required(skill string) (skills.Level, bool) {
	key := skills.Normalize(skill)
	for _, g := range r.Gaps {
		if skills.Normalize(g.Skill) == key {
			return g.Required, true
		}
	}
	return skills.Novice, false
}

// Analyzer computes gap reports against a taxonomy.
type Analyzer struct {
	taxonomy *skills.Taxonomy
}

// NewAnalyzer returns an Analyzer that recognizes the skills in taxonomy.
func NewAnalyzer(taxonomy *skills.Taxonomy) *Analyzer {
	return &Analyzer{taxonomy: taxonomy}
}

// Analyze measures the gap between p and goal. The goal skill itself is
// required at the target level; each skill the taxonomy implies for it is
// required at the sub-level (one below target, at least Beginner).
func (a *Analyzer) Analyze(p *profile.Profile, goal profile.Goal) (*Report, error) {
	name, ok := a.taxonomy.Canonical(goal.Skill)
	if !ok {
		return nil, &ProfileIncompleteError{Goal: goal, Skill: goal.Skill}
	}

	report := &Report{Goal: goal}
	current := p.Level(name)
	report.Gaps = append(report.Gaps, SkillGap{
		Skill:     name,
		Current:   current,
		Required:  goal.TargetLevel,
		Magnitude: skills.Gap(current, goal.TargetLevel),
		Target:    true,
	})

	sub := skills.SubLevel(goal.TargetLevel)
	prereqs := a.taxonomy.Implied(name)
	for _, implied := range prereqs {
		if display, ok := a.taxonomy.Canonical(implied); ok {
			implied = display
		}
		cur := p.Level(implied)
		report.Gaps = append(report.Gaps, SkillGap{
			Skill:     implied,
			Current:   cur,
			Required:  sub,
			Magnitude: skills.Gap(cur, sub),
		})
	}

	sort.SliceStable(report.Gaps, func(i, j int) bool {
		gi, gj := report.Gaps[i], report.Gaps[j]
		if gi.Magnitude != gj.Magnitude {
			return gi.Magnitude > gj.Magnitude
		}
		if gi.Target != gj.Target {
			return gi.Target
		}
		return gi.Skill < gj.Skill
	})

	report.Ready = len(report.Open()) == 0
	report.Readiness = readiness(p, prereqs)
	return report, nil
}

// readiness averages, over prereqs, half the level rank out of Expert and
// half the confidence out of 10. An undeclared prerequisite scores 0. An
// entry without a confidence rating scores on its level alone.
func readiness(p *profile.Profile, prereqs []string) float64 {
	if len(prereqs) == 0 {
		return NoPrerequisiteReadiness
	}
	var sum float64
	for _, name := range prereqs {
		e, ok := p.Entry(name)
		if !ok {
			continue
		}
		level := float64(e.Level.Rank()) / float64(skills.Expert.Rank())
		if e.Confidence == 0 {
			sum += level
			continue
		}
		sum += (level + float64(e.Confidence)/10) / 2
	}
	return sum / float64(len(prereqs))
}
