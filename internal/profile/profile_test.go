package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/skills"
)

func TestLevelAndHas(t *testing.T) {
	p := &Profile{Skills: []SkillEntry{
		{Skill: "Python", Level: skills.Intermediate},
		{Skill: "Rust", Level: skills.Novice},
	}}

	assert.Equal(t, skills.Intermediate, p.Level("  python "))
	assert.Equal(t, skills.Novice, p.Level("Go"))
	assert.True(t, p.Has("PYTHON"))
	assert.False(t, p.Has("Rust"))
	assert.False(t, p.Has("Go"))

	e, ok := p.Entry("rust")
	assert.True(t, ok)
	assert.Equal(t, "Rust", e.Skill)
	_, ok = p.Entry("Go")
	assert.False(t, ok)
}

func TestGoalsByPriority_Stable(t *testing.T) {
	p := &Profile{Goals: []Goal{
		{Skill: "C", Priority: 3},
		{Skill: "A1", Priority: 1},
		{Skill: "B", Priority: 2},
		{Skill: "A2", Priority: 1},
	}}

	var got []string
	for _, g := range p.GoalsByPriority() {
		got = append(got, g.Skill)
	}
	assert.Equal(t, []string{"A1", "A2", "B", "C"}, got)
	assert.Equal(t, "C", p.Goals[0].Skill, "original order must be untouched")
}

func TestBudgetFor(t *testing.T) {
	cost := 100.0
	p := &Profile{Constraints: Constraints{HoursPerWeek: 10, BudgetUSD: &cost}}

	b := p.BudgetFor(Goal{Skill: "Go"}, 12, 4.33)
	assert.Equal(t, 12.0, b.Weeks)
	assert.Equal(t, 120.0, b.Hours)
	assert.True(t, b.HoursLimited)
	assert.True(t, b.CostLimited)
	assert.Equal(t, 100.0, b.CostUSD)

	b = p.BudgetFor(Goal{Skill: "Go", DeadlineMonths: 3}, 12, 4)
	assert.Equal(t, 12.0, b.Weeks)
	assert.Equal(t, 120.0, b.Hours)

	p.Constraints.BudgetUSD = nil
	b = p.BudgetFor(Goal{Skill: "Go", DeadlineMonths: 6}, 12, 4)
	assert.Equal(t, 240.0, b.Hours)
	assert.False(t, b.CostLimited)
}

func TestConstraintsPrefers(t *testing.T) {
	var none Constraints
	assert.True(t, none.Prefers(catalog.TypeBook))

	c := Constraints{PreferredTypes: []catalog.ResourceType{catalog.TypeVideo}}
	assert.True(t, c.Prefers(catalog.TypeVideo))
	assert.False(t, c.Prefers(catalog.TypeBook))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Profile)
		want   string
	}{
		{"sample is valid", func(p *Profile) {}, ""},
		{"missing name", func(p *Profile) { p.Name = "" }, "Name is required"},
		{"bad email", func(p *Profile) { p.Email = "alex" }, "Email"},
		{"zero hours", func(p *Profile) { p.Constraints.HoursPerWeek = 0 }, "HoursPerWeek"},
		{"priority out of range", func(p *Profile) { p.Goals[0].Priority = 6 }, "Priority"},
		{"deadline too long", func(p *Profile) { p.Goals[0].DeadlineMonths = 61 }, "DeadlineMonths"},
		{"negative budget", func(p *Profile) { b := -1.0; p.Constraints.BudgetUSD = &b }, "BudgetUSD"},
		{"duplicate skill", func(p *Profile) {
			p.Skills = append(p.Skills, SkillEntry{Skill: "python", Level: skills.Beginner})
		}, "duplicate skill"},
		{"unknown preferred type", func(p *Profile) {
			p.Constraints.PreferredTypes = []catalog.ResourceType{"podcast"}
		}, "podcast"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Sample()
			tt.mutate(p)
			err := p.Validate()
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "learner.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: Sam
email: sam@example.com
skills:
  - skill: Python
    level: intermediate
goals:
  - skill: Machine Learning
    target_level: ADVANCED
    priority: 1
constraints:
  hours_per_week: 8
  budget_usd: 50
  preferred_types: [course, book]
`), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Sam", p.Name)
	assert.Equal(t, skills.Intermediate, p.Level("python"))
	require.Len(t, p.Goals, 1)
	assert.Equal(t, skills.Advanced, p.Goals[0].TargetLevel)
	require.NotNil(t, p.Constraints.BudgetUSD)
	assert.Equal(t, 50.0, *p.Constraints.BudgetUSD)
	assert.Equal(t, []catalog.ResourceType{catalog.TypeCourse, catalog.TypeBook}, p.Constraints.PreferredTypes)
}

func TestLoad_Rejects(t *testing.T) {
	dir := t.TempDir()

	badLevel := filepath.Join(dir, "bad-level.json")
	require.NoError(t, os.WriteFile(badLevel, []byte(`{"name": "x", "email": "x@example.com",
		"skills": [{"skill": "Go", "level": "guru"}], "goals": [], "constraints": {"hours_per_week": 5}}`), 0o644))
	_, err := Load(badLevel)
	require.Error(t, err)

	badRange := filepath.Join(dir, "bad-range.json")
	require.NoError(t, os.WriteFile(badRange, []byte(`{"name": "x", "email": "x@example.com",
		"skills": [], "goals": [{"skill": "Go", "target_level": "EXPERT", "priority": 9}],
		"constraints": {"hours_per_week": 5}}`), 0o644))
	_, err = Load(badRange)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Priority")
}
