// Package profile defines the learner profile the path engine works from:
// declared skills, goals and constraints.
package profile

import (
	"sort"

	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/skills"
)

// SkillEntry is a skill the learner already holds.
type SkillEntry struct {
	Skill           string       `json:"skill" validate:"required"`
	Level           skills.Level `json:"level" validate:"gte=0,lte=4"`
	YearsExperience float64      `json:"years_experience,omitempty" validate:"gte=0"`
	Confidence      int          `json:"confidence,omitempty" validate:"omitempty,gte=1,lte=10"`
}

// Goal is a learning objective. Priority 1 is the most important.
// DeadlineMonths of zero means no deadline.
type Goal struct {
	Skill          string       `json:"skill" validate:"required"`
	TargetLevel    skills.Level `json:"target_level" validate:"gte=1,lte=4"`
	Priority       int          `json:"priority" validate:"gte=1,lte=5"`
	DeadlineMonths int          `json:"deadline_months,omitempty" validate:"gte=0,lte=60"`
}

// Constraints bound the paths generated for a profile.
type Constraints struct {
	HoursPerWeek float64 `json:"hours_per_week" validate:"gt=0"`
	// BudgetUSD is the spend limit; nil means no limit.
	BudgetUSD      *float64               `json:"budget_usd,omitempty" validate:"omitempty,gte=0"`
	PreferredTypes []catalog.ResourceType `json:"preferred_types,omitempty"`
}

// Profile is a learner's complete request. The engine never mutates it.
type Profile struct {
	Name          string       `json:"name" validate:"required"`
	Email         string       `json:"email" validate:"required,email"`
	LearningStyle string       `json:"learning_style,omitempty"`
	Skills        []SkillEntry `json:"skills" validate:"dive"`
	Goals         []Goal       `json:"goals" validate:"dive"`
	Constraints   Constraints  `json:"constraints"`
}

// Entry returns the declared entry for skill.
func (p *Profile) Entry(skill string) (SkillEntry, bool) {
	key := skills.Normalize(skill)
	for _, s := range p.Skills {
		if skills.Normalize(s.Skill) == key {
			return s, true
		}
	}
	return SkillEntry{}, false
}

// Level returns the declared level for skill, or Novice if the profile
// does not list it.
func (p *Profile) Level(skill string) skills.Level {
	e, _ := p.Entry(skill)
	return e.Level
}

// Has reports whether the learner holds skill above Novice. Such skills
// satisfy resource prerequisites.
func (p *Profile) Has(skill string) bool {
	return p.Level(skill) > skills.Novice
}

// GoalsByPriority returns the goals ordered by priority, keeping declaration
// order among equal priorities.
func (p *Profile) GoalsByPriority() []Goal {
	out := make([]Goal, len(p.Goals))
	copy(out, p.Goals)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out
}

// Prefers reports whether t is one of the preferred resource types. With no
// preference every type is accepted.
func (c Constraints) Prefers(t catalog.ResourceType) bool {
	if len(c.PreferredTypes) == 0 {
		return true
	}
	for _, pt := range c.PreferredTypes {
		if pt == t {
			return true
		}
	}
	return false
}

// Budget is the time and money available to a single goal.
type Budget struct {
	Weeks        float64 `json:"weeks"`
	Hours        float64 `json:"hours"`
	HoursLimited bool    `json:"hours_limited"`
	CostUSD      float64 `json:"cost_usd"`
	CostLimited  bool    `json:"cost_limited"`
}

// BudgetFor derives the budget for goal. Without a deadline the goal gets
// defaultWeeks; otherwise the deadline in months converts to weeks at
// weeksPerMonth.
func (p *Profile) BudgetFor(goal Goal, defaultWeeks, weeksPerMonth float64) Budget {
	weeks := defaultWeeks
	if goal.DeadlineMonths > 0 {
		weeks = float64(goal.DeadlineMonths) * weeksPerMonth
	}

	b := Budget{Weeks: weeks}
	if p.Constraints.HoursPerWeek > 0 {
		b.Hours = p.Constraints.HoursPerWeek * weeks
		b.HoursLimited = true
	}
	if p.Constraints.BudgetUSD != nil {
		b.CostUSD = *p.Constraints.BudgetUSD
		b.CostLimited = true
	}
	return b
}

// Unlimited is a budget with neither a time nor a cost limit.
func Unlimited() Budget {
	return Budget{}
}
