package engine

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/gap"
	"github.com/abhisek/skillpath/internal/profile"
	"github.com/abhisek/skillpath/internal/skills"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Now = func() time.Time { return fixedNow }
	n := 0
	cfg.NewID = func() string {
		n++
		return fmt.Sprintf("path-%d", n)
	}
	return cfg
}

func seedEngine(t *testing.T) *Engine {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return New(c, testConfig())
}

func checkPathInvariants(t *testing.T, p *profile.Profile, lp *LearningPath) {
	t.Helper()
	seen := make(map[string]bool)
	var hours, cost float64
	for i, s := range lp.Steps {
		id := s.Resource.ID
		assert.False(t, seen[id], "duplicate resource %s", id)
		seen[id] = true
		hours += s.Resource.EstimatedHours
		cost += s.Resource.CostUSD

		for _, pre := range s.Resource.Prerequisites {
			if p.Has(pre) {
				continue
			}
			taught := false
			for _, earlier := range lp.Steps[:i] {
				taught = taught || earlier.Resource.Teaches(pre)
			}
			assert.True(t, taught, "step %d (%s) needs %q taught earlier", i, id, pre)
		}
	}
	assert.Equal(t, hours, lp.TotalHours)
	assert.Equal(t, cost, lp.TotalCost)
	assert.GreaterOrEqual(t, lp.Confidence, 0.0)
	assert.LessOrEqual(t, lp.Confidence, 100.0)
}

func TestGeneratePath_MachineLearningUnlimited(t *testing.T) {
	e := seedEngine(t)
	p := &profile.Profile{
		Skills:      []profile.SkillEntry{{Skill: "Python", Level: skills.Intermediate}},
		Constraints: profile.Constraints{HoursPerWeek: 1000},
	}
	goal := profile.Goal{Skill: "Machine Learning", TargetLevel: skills.Advanced, Priority: 1}

	lp, err := e.GeneratePath(p, goal)
	require.NoError(t, err)
	require.NotEmpty(t, lp.Steps)
	assert.False(t, lp.ConstraintViolated)
	assert.Empty(t, lp.Dropped)
	assert.Equal(t, "Machine Learning", lp.Skill)
	checkPathInvariants(t, p, lp)

	// Some Machine Learning resource builds on Statistics, which the learner
	// lacks, so a Statistics resource must come before it.
	statsAt, mlAt := -1, -1
	for i, s := range lp.Steps {
		if statsAt < 0 && s.Resource.Teaches("Statistics") {
			statsAt = i
		}
		if mlAt < 0 && s.Resource.Teaches("Machine Learning") && s.Resource.Requires("Statistics") {
			mlAt = i
		}
	}
	require.GreaterOrEqual(t, statsAt, 0, "a Statistics resource is expected")
	require.GreaterOrEqual(t, mlAt, 0, "a Machine Learning resource needing Statistics is expected")
	assert.Less(t, statsAt, mlAt)
	assert.Equal(t, 1, lp.DurationMonths)
}

func TestGeneratePath_Deterministic(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)
	p := profile.Sample()

	for _, goal := range p.Goals {
		a, errA := New(c, testConfig()).GeneratePath(p, goal)
		b, errB := New(c, testConfig()).GeneratePath(p, goal)
		require.Equal(t, errA, errB)
		assert.Equal(t, a, b, goal.Skill)
	}
}

func TestGeneratePath_AlreadyMet(t *testing.T) {
	e := seedEngine(t)
	p := &profile.Profile{
		Skills: []profile.SkillEntry{
			{Skill: "React", Level: skills.Advanced},
			{Skill: "JavaScript", Level: skills.Advanced},
		},
		Constraints: profile.Constraints{HoursPerWeek: 5},
	}

	lp, err := e.GeneratePath(p, profile.Goal{Skill: "React", TargetLevel: skills.Intermediate, Priority: 1})
	require.NoError(t, err)
	assert.True(t, lp.AlreadyMet)
	assert.Empty(t, lp.Steps)
	assert.Equal(t, 100.0, lp.Confidence)
	assert.Equal(t, 0.75, lp.Readiness)
	assert.Equal(t, 0, lp.DurationMonths)
	assert.Equal(t, fixedNow, lp.GeneratedAt)
	assert.Equal(t, "path-1", lp.ID)
}

func TestGeneratePath_UnknownSkill(t *testing.T) {
	e := seedEngine(t)
	_, err := e.GeneratePath(profile.Sample(), profile.Goal{Skill: "Quantum Telepathy", TargetLevel: skills.Beginner, Priority: 1})
	var pie *gap.ProfileIncompleteError
	require.True(t, errors.As(err, &pie))
}

func TestGenerate_PartialSuccess(t *testing.T) {
	e := seedEngine(t)
	p := &profile.Profile{
		Name:        "Sam",
		Skills:      []profile.SkillEntry{{Skill: "Python", Level: skills.Intermediate}},
		Constraints: profile.Constraints{HoursPerWeek: 10},
	}

	batch, err := e.Generate(p,
		profile.Goal{Skill: "Quantum Telepathy", TargetLevel: skills.Intermediate, Priority: 1},
		profile.Goal{Skill: "Data Analysis", TargetLevel: skills.Intermediate, Priority: 2},
	)
	require.NoError(t, err)
	require.Len(t, batch.Paths, 1)
	require.Len(t, batch.Failures, 1)

	assert.Equal(t, "Data Analysis", batch.Paths[0].Skill)
	f := batch.Failures[0]
	assert.Equal(t, FailureProfileIncomplete, f.Kind)
	assert.Equal(t, "Quantum Telepathy", f.Skill)
	assert.NotEmpty(t, f.Message)
}

func TestGenerate_ProfileGoalsByPriority(t *testing.T) {
	e := seedEngine(t)
	p := profile.Sample()

	batch, err := e.Generate(p)
	require.NoError(t, err)
	assert.Empty(t, batch.Failures)

	var got []string
	for _, lp := range batch.Paths {
		got = append(got, lp.Goal.Skill)
		checkPathInvariants(t, p, lp)
	}
	assert.Equal(t, []string{"Machine Learning", "Data Analysis", "Deep Learning"}, got)
}

func TestGenerate_ZeroBudgetPaidOnly(t *testing.T) {
	c, err := catalog.New([]catalog.Resource{
		{ID: "go_pro", Title: "Go Pro", Type: catalog.TypeCourse, Difficulty: skills.Beginner,
			EstimatedHours: 20, SkillsTaught: []string{"Go"}, CostUSD: 49, Rating: 4.6},
		{ID: "go_bootcamp", Title: "Go Bootcamp", Type: catalog.TypeCourse, Difficulty: skills.Intermediate,
			EstimatedHours: 40, SkillsTaught: []string{"Go"}, CostUSD: 199, Rating: 4.2},
	})
	require.NoError(t, err)

	zero := 0.0
	p := &profile.Profile{Constraints: profile.Constraints{HoursPerWeek: 10, BudgetUSD: &zero}}
	lp, err := New(c, testConfig()).GeneratePath(p, profile.Goal{Skill: "Go", TargetLevel: skills.Beginner, Priority: 1})
	require.NoError(t, err)

	assert.True(t, lp.ConstraintViolated)
	require.Len(t, lp.Steps, 1)
	assert.Equal(t, "go_pro", lp.Steps[0].Resource.ID)
	assert.Equal(t, 49.0, lp.TotalCost)
	require.Len(t, lp.Dropped, 1)
	assert.Equal(t, "go_bootcamp", lp.Dropped[0].ID)
	assert.Less(t, lp.Confidence, 100.0)
}

func TestGenerate_RecordsCycleAndMissingResources(t *testing.T) {
	c, err := catalog.New([]catalog.Resource{
		{ID: "x", Title: "X", Type: catalog.TypeCourse, Difficulty: skills.Beginner, EstimatedHours: 5,
			SkillsTaught: []string{"Goal Skill", "Skill B"}, Prerequisites: []string{"Skill A"}, Rating: 4},
		{ID: "y", Title: "Y", Type: catalog.TypeCourse, Difficulty: skills.Beginner, EstimatedHours: 5,
			SkillsTaught: []string{"Skill A"}, Prerequisites: []string{"Skill B"}, Rating: 4},
	})
	require.NoError(t, err)
	p := &profile.Profile{Constraints: profile.Constraints{HoursPerWeek: 10}}

	batch, err := New(c, testConfig()).Generate(p,
		profile.Goal{Skill: "Goal Skill", TargetLevel: skills.Beginner, Priority: 1},
		profile.Goal{Skill: "Leadership", TargetLevel: skills.Beginner, Priority: 2},
	)
	require.NoError(t, err)
	assert.Empty(t, batch.Paths)
	require.Len(t, batch.Failures, 2)
	assert.Equal(t, FailureCyclicPrerequisite, batch.Failures[0].Kind)
	assert.Equal(t, FailureNoResources, batch.Failures[1].Kind)
	assert.Equal(t, "Leadership", batch.Failures[1].Skill)
}

func TestGenerate_BudgetMonotonic(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)
	e := New(c, testConfig())

	prev := -1
	for _, amount := range []float64{0, 20, 40, 80, 160, 320, 640} {
		budget := amount
		p := &profile.Profile{
			Skills:      []profile.SkillEntry{{Skill: "Python", Level: skills.Beginner}},
			Constraints: profile.Constraints{HoursPerWeek: 8, BudgetUSD: &budget},
		}
		lp, err := e.GeneratePath(p, profile.Goal{Skill: "Machine Learning", TargetLevel: skills.Intermediate, Priority: 1})
		require.NoError(t, err)
		checkPathInvariants(t, p, lp)
		assert.GreaterOrEqual(t, len(lp.Steps), prev, "budget %g", amount)
		prev = len(lp.Steps)
	}
}

func TestDurationMonths(t *testing.T) {
	assert.Equal(t, 0, durationMonths(0, 10, 12, 0))
	assert.Equal(t, 1, durationMonths(5, 10, 12, 1))
	assert.Equal(t, 1, durationMonths(40, 10, 12, 2))
	assert.Equal(t, 2, durationMonths(41, 10, 12, 2))
	assert.Equal(t, 3, durationMonths(100, 0, 12, 2))
}

func TestAnalyze(t *testing.T) {
	e := seedEngine(t)
	p := profile.Sample()
	lp, err := e.GeneratePath(p, p.Goals[0])
	require.NoError(t, err)
	require.NotEmpty(t, lp.Steps)

	a := e.Analyze(lp)
	assert.Equal(t, len(lp.Steps), a.Resources)

	types, free := 0, 0
	var cost float64
	for _, s := range lp.Steps {
		if s.Resource.IsFree() {
			free++
		}
	}
	for _, n := range a.ResourceTypes {
		types += n
	}
	for _, c := range a.CostByType {
		cost += c
	}
	assert.Equal(t, len(lp.Steps), types)
	assert.Equal(t, free, a.FreeResources)
	assert.InDelta(t, lp.TotalCost, cost, 1e-9)
	assert.GreaterOrEqual(t, a.AverageRating, 0.0)
	assert.LessOrEqual(t, a.AverageRating, 5.0)
	assert.InDelta(t, lp.TotalHours/(float64(lp.DurationMonths)*4.33), a.WeeklyHours, 1e-9)

	// Python (0.5+0.7)/2, Statistics (0.25+0.4)/2, Data Analysis undeclared.
	wantReadiness := (0.6 + 0.325) / 3
	assert.InDelta(t, wantReadiness, lp.Readiness, 1e-9)
	assert.InDelta(t, wantReadiness, a.Readiness, 1e-9)

	var score float64
	for _, s := range lp.Steps {
		score += s.Score
	}
	assert.InDelta(t, score/float64(len(lp.Steps)), a.AverageScore, 1e-9)

	var skillHours float64
	for skill, h := range a.HoursBySkill {
		assert.Positive(t, h, skill)
		skillHours += h
	}
	assert.InDelta(t, lp.TotalHours, skillHours, 1e-9)
	assert.Positive(t, a.HoursBySkill["Machine Learning"])

	empty := e.Analyze(&LearningPath{AlreadyMet: true, Readiness: 0.8})
	assert.Zero(t, empty.Resources)
	assert.Zero(t, empty.WeeklyHours)
	assert.Zero(t, empty.AverageScore)
	assert.Empty(t, empty.HoursBySkill)
	assert.Equal(t, 0.8, empty.Readiness)
}

func TestAnalyze_HoursBySkillSplitsSharedSteps(t *testing.T) {
	e := seedEngine(t)
	lp := &LearningPath{
		Gaps: []gap.SkillGap{
			{Skill: "Machine Learning", Magnitude: 2, Target: true},
			{Skill: "Statistics", Magnitude: 1},
		},
		Steps: []Step{
			{Resource: catalog.Resource{ID: "both", EstimatedHours: 10, SkillsTaught: []string{"Machine Learning", "Statistics"}}, Score: 0.8},
			{Resource: catalog.Resource{ID: "ml", EstimatedHours: 6, SkillsTaught: []string{"Machine Learning"}, Prerequisites: []string{"Statistics"}}, Score: 0.6},
			{Resource: catalog.Resource{ID: "filler", EstimatedHours: 4, SkillsTaught: []string{"Linear Algebra"}}, Score: 0.4},
		},
		TotalHours:     20,
		DurationMonths: 1,
	}

	a := e.Analyze(lp)
	assert.Equal(t, map[string]float64{
		"Machine Learning": 11,
		"Statistics":       5,
		"Linear Algebra":   4,
	}, a.HoursBySkill)
	assert.InDelta(t, 0.6, a.AverageScore, 1e-9)
}

func TestCompare(t *testing.T) {
	e := seedEngine(t)
	batch, err := e.Generate(profile.Sample())
	require.NoError(t, err)
	met := &LearningPath{AlreadyMet: true, Confidence: 100}
	paths := append(batch.Paths, met)

	s := e.Compare(paths)
	assert.Equal(t, 4, s.Paths)
	assert.Equal(t, 1, s.AlreadyMet)

	var hours, cost, conf float64
	resources := 0
	for _, lp := range paths {
		hours += lp.TotalHours
		cost += lp.TotalCost
		conf += lp.Confidence
		resources += len(lp.Steps)
	}
	assert.InDelta(t, hours, s.TotalHours, 1e-9)
	assert.InDelta(t, cost, s.TotalCost, 1e-9)
	assert.InDelta(t, conf/4, s.MeanConfidence, 1e-9)
	assert.Equal(t, resources, s.Resources)

	assert.Zero(t, Compare(nil).Paths)
	assert.Zero(t, Compare(nil).MeanConfidence)
}
