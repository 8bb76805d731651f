package report

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/engine"
	"github.com/abhisek/skillpath/internal/profile"
	"github.com/abhisek/skillpath/internal/skills"
	"github.com/abhisek/skillpath/internal/store"
)

func sampleEngine(t *testing.T) *engine.Engine {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	cfg := engine.DefaultConfig()
	cfg.Now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }
	cfg.NewID = func() string { return "path-1" }
	return engine.New(c, cfg)
}

func TestBar(t *testing.T) {
	var buf bytes.Buffer
	_, err := lipgloss.Fprint(&buf, Bar{Percent: 0.5, Width: 10}.View())
	require.NoError(t, err)
	assert.Equal(t, "█████░░░░░", buf.String())

	buf.Reset()
	_, err = lipgloss.Fprint(&buf, Bar{Label: "Confidence", Percent: 1.5, ShowPercent: true, Width: 30}.View())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Confidence")
	assert.NotContains(t, buf.String(), "░")
}

func TestPath(t *testing.T) {
	e := sampleEngine(t)
	p := profile.Sample()
	lp, err := e.GeneratePath(p, p.GoalsByPriority()[0])
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Path(&buf, lp, e.Analyze(lp)))
	out := buf.String()

	assert.Contains(t, out, "Machine Learning → Intermediate")
	assert.Contains(t, out, "Confidence")
	assert.Contains(t, out, "Total:")
	assert.Contains(t, out, fmt.Sprintf("Readiness: %.0f%%", lp.Readiness*100))
	for _, s := range lp.Steps {
		assert.Contains(t, out, truncate(s.Resource.Title, 60))
	}
	assert.NotContains(t, out, "\x1b[", "colors are stripped for non-terminals")
}

func TestPath_AlreadyMet(t *testing.T) {
	lp := &engine.LearningPath{
		ID:         "p",
		Goal:       profile.Goal{Skill: "React", TargetLevel: skills.Beginner, Priority: 2},
		Skill:      "React",
		AlreadyMet: true,
		Confidence: 100,
	}
	var buf bytes.Buffer
	require.NoError(t, Path(&buf, lp, engine.PathAnalytics{}))
	assert.Contains(t, buf.String(), "Goal already met")
	assert.NotContains(t, buf.String(), "Total:")
}

func TestPath_OverBudget(t *testing.T) {
	lp := &engine.LearningPath{
		ID:                 "p",
		Goal:               profile.Goal{Skill: "Go", TargetLevel: skills.Beginner, Priority: 1},
		Skill:              "Go",
		ConstraintViolated: true,
		Dropped:            []catalog.Resource{{ID: "go_bootcamp", Title: "Go Bootcamp"}},
	}
	var buf bytes.Buffer
	require.NoError(t, Path(&buf, lp, engine.PathAnalytics{}))
	assert.Contains(t, buf.String(), "Over budget")
	assert.Contains(t, buf.String(), "Dropped to fit the budget: Go Bootcamp")
}

func TestBatch(t *testing.T) {
	e := sampleEngine(t)
	batch, err := e.Generate(profile.Sample(),
		profile.Goal{Skill: "Data Analysis", TargetLevel: skills.Intermediate, Priority: 1},
		profile.Goal{Skill: "Quantum Telepathy", TargetLevel: skills.Beginner, Priority: 2},
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Batch(&buf, batch, e))
	out := buf.String()
	assert.Contains(t, out, "Data Analysis")
	assert.Contains(t, out, "1 goal(s) could not be planned")
	assert.Contains(t, out, "Quantum Telepathy")
	assert.Contains(t, out, string(engine.FailureProfileIncomplete))
}

func TestSummary(t *testing.T) {
	e := sampleEngine(t)
	batch, err := e.Generate(profile.Sample())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Summary(&buf, e.Compare(batch.Paths)))
	out := buf.String()
	assert.Contains(t, out, "Comparison")
	assert.Contains(t, out, "Mean confidence")
	assert.Contains(t, out, "Resource types")
	assert.Contains(t, out, "Difficulty")
}

func TestCatalog(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Catalog(&buf, c.All()))
	assert.Contains(t, buf.String(), "python_basics")
	assert.Contains(t, buf.String(), "resources")
}

func TestSkills(t *testing.T) {
	tax := skills.DefaultTaxonomy().With("Underwater Basket Weaving")

	var buf bytes.Buffer
	require.NoError(t, Skills(&buf, tax))
	out := buf.String()
	assert.Contains(t, out, "Data Science")
	assert.Contains(t, out, "Machine Learning")
	assert.Contains(t, out, "needs")
	assert.Contains(t, out, "Other")
	assert.Contains(t, out, "Underwater Basket Weaving")
}

func TestHistory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, History(&buf, nil))
	assert.Contains(t, buf.String(), "No paths recorded yet.")

	buf.Reset()
	recs := []store.PathRecord{{
		Sequence:    7,
		Timestamp:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		ProfileName: "Alex",
		Path: &engine.LearningPath{
			Goal:               profile.Goal{Skill: "Go", TargetLevel: skills.Advanced},
			TotalHours:         12,
			Confidence:         64,
			ConstraintViolated: true,
		},
	}}
	require.NoError(t, History(&buf, recs))
	out := buf.String()
	assert.Contains(t, out, "Alex")
	assert.Contains(t, out, "Go (Advanced)")
	assert.Contains(t, out, "64 !")
}

func TestStats(t *testing.T) {
	st := &store.Stats{
		Paths:          3,
		Failures:       1,
		TotalHours:     120,
		MeanConfidence: 71.5,
		TopGoals:       []store.GoalCount{{Skill: "Machine Learning", Paths: 2}},
		FailuresByKind: map[engine.FailureKind]int{engine.FailureNoResources: 1},
	}
	var buf bytes.Buffer
	require.NoError(t, Stats(&buf, st))
	out := buf.String()
	assert.Contains(t, out, "71.5")
	assert.Contains(t, out, "Machine Learning")
	assert.Contains(t, out, "no_resources")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	long := strings.Repeat("a", 50)
	assert.Equal(t, 40, len(truncate(long, 40)))
	assert.True(t, strings.HasSuffix(truncate(long, 40), "..."))
}

func TestHeading(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Heading(&buf, "Alex Johnson", "alex.yaml"))
	assert.Equal(t, "Alex Johnson alex.yaml\n\n", buf.String())

	buf.Reset()
	require.NoError(t, Heading(&buf, "Sam", ""))
	assert.Equal(t, "Sam\n\n", buf.String())
}
