// Package report renders learning paths, analytics, the catalog and the
// path history as terminal text.
package report

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"charm.land/lipgloss/v2/tree"

	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/engine"
	"github.com/abhisek/skillpath/internal/skills"
	"github.com/abhisek/skillpath/internal/store"
)

const barWidth = 40

// Analyzer produces per-path analytics. *engine.Engine implements it.
type Analyzer interface {
	Analyze(lp *engine.LearningPath) engine.PathAnalytics
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(TableBorder).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeader
			}
			return TableCell
		})
}

func money(v float64) string {
	if v == 0 {
		return "free"
	}
	return fmt.Sprintf("$%.2f", v)
}

func hours(v float64) string {
	return fmt.Sprintf("%gh", v)
}

// Path writes one learning path: header, confidence, steps and totals.
func Path(w io.Writer, lp *engine.LearningPath, a engine.PathAnalytics) error {
	var b strings.Builder

	b.WriteString(Title.Render(fmt.Sprintf("%s → %s", lp.Skill, lp.Goal.TargetLevel.Label())))
	b.WriteString("\n")
	b.WriteString(Subtitle.Render(fmt.Sprintf("priority %d · path %s", lp.Goal.Priority, lp.ID)))
	b.WriteString("\n\n")

	if lp.AlreadyMet {
		b.WriteString(Good.Render("Goal already met"))
		b.WriteString(Hint.Render(" · the profile is at or above the target level"))
		b.WriteString("\n")
		_, err := lipgloss.Fprint(w, b.String())
		return err
	}

	b.WriteString(Bar{Label: "Confidence", Percent: lp.Confidence / 100, ShowPercent: true, Width: barWidth}.View())
	b.WriteString("\n\n")

	t := newTable("#", "Resource", "Type", "Level", "Hours", "Cost", "Rating", "Conf.")
	for i, s := range lp.Steps {
		r := s.Resource
		t.Row(
			fmt.Sprint(i+1),
			r.Title,
			string(r.Type),
			r.Difficulty.Label(),
			hours(r.EstimatedHours),
			money(r.CostUSD),
			fmt.Sprintf("%.1f", r.Rating),
			confidenceStyle(s.Confidence.Score).Render(fmt.Sprintf("%.0f", s.Confidence.Score)),
		)
	}
	b.WriteString(t.Render())
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s %s over ~%d month(s), %s, %.1f h/week\n",
		Label.Render("Total:"), hours(lp.TotalHours), lp.DurationMonths, money(lp.TotalCost), a.WeeklyHours)
	fmt.Fprintf(&b, "%s %d of %d free, average rating %.2f, %.0f%% with prerequisites covered\n",
		Label.Render("Mix:"), a.FreeResources, a.Resources, a.AverageRating, a.PrerequisiteCoverage*100)
	fmt.Fprintf(&b, "%s %.0f%%, average selection score %.2f\n",
		Label.Render("Readiness:"), a.Readiness*100, a.AverageScore)

	if lp.ConstraintViolated {
		b.WriteString(Warning.Render("! Over budget: no further resource could be dropped without breaking the path"))
		b.WriteString("\n")
	}
	if len(lp.Dropped) > 0 {
		ids := make([]string, len(lp.Dropped))
		for i, r := range lp.Dropped {
			ids[i] = r.Title
		}
		b.WriteString(Hint.Render("Dropped to fit the budget: " + strings.Join(ids, ", ")))
		b.WriteString("\n")
	}

	_, err := lipgloss.Fprint(w, b.String())
	return err
}

// Batch writes every path of b followed by its failures.
func Batch(w io.Writer, b *engine.Batch, an Analyzer) error {
	for i, lp := range b.Paths {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := Path(w, lp, an.Analyze(lp)); err != nil {
			return err
		}
	}
	if len(b.Failures) > 0 {
		if len(b.Paths) > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		return Failures(w, b.Failures)
	}
	return nil
}

// Failures lists the goals that could not be planned.
func Failures(w io.Writer, failures []engine.GoalFailure) error {
	var b strings.Builder
	b.WriteString(Bad.Render(fmt.Sprintf("%d goal(s) could not be planned", len(failures))))
	b.WriteString("\n")
	for _, f := range failures {
		fmt.Fprintf(&b, "  %s %s: %s\n", Warning.Render("✗"), f.Goal.Skill, f.Message)
		b.WriteString(Hint.Render("    " + string(f.Kind)))
		b.WriteString("\n")
	}
	_, err := lipgloss.Fprint(w, b.String())
	return err
}

// Summary writes the cross-path comparison.
func Summary(w io.Writer, s engine.AnalyticsSummary) error {
	var b strings.Builder
	b.WriteString(Title.Render("Comparison"))
	b.WriteString("\n\n")

	t := newTable("Metric", "Value")
	t.Row("Paths", fmt.Sprint(s.Paths))
	t.Row("Resources", fmt.Sprint(s.Resources))
	t.Row("Total hours", hours(s.TotalHours))
	t.Row("Total cost", money(s.TotalCost))
	t.Row("Mean confidence", fmt.Sprintf("%.1f", s.MeanConfidence))
	t.Row("Free resources", fmt.Sprint(s.FreeResources))
	t.Row("Over budget", fmt.Sprint(s.ConstraintViolated))
	t.Row("Already met", fmt.Sprint(s.AlreadyMet))
	b.WriteString(t.Render())
	b.WriteString("\n")

	if len(s.ResourceTypes) > 0 {
		b.WriteString(Label.Render("Resource types"))
		b.WriteString("\n")
		for _, rt := range catalog.AllResourceTypes() {
			if n := s.ResourceTypes[rt]; n > 0 {
				b.WriteString(Bar{Label: fmt.Sprintf("%-14s", rt), Percent: float64(n) / float64(s.Resources), ShowPercent: true, Width: barWidth}.View())
				b.WriteString("\n")
			}
		}
	}
	if len(s.Difficulty) > 0 {
		b.WriteString(Label.Render("Difficulty"))
		b.WriteString("\n")
		for _, l := range skills.AllLevels() {
			if n := s.Difficulty[l.String()]; n > 0 {
				b.WriteString(Bar{Label: fmt.Sprintf("%-14s", l.Label()), Percent: float64(n) / float64(s.Resources), ShowPercent: true, Width: barWidth}.View())
				b.WriteString("\n")
			}
		}
	}

	_, err := lipgloss.Fprint(w, b.String())
	return err
}

// Catalog lists resources in the given order.
func Catalog(w io.Writer, resources []catalog.Resource) error {
	t := newTable("ID", "Title", "Type", "Level", "Hours", "Cost", "Rating", "Teaches")
	for _, r := range resources {
		t.Row(
			r.ID,
			truncate(r.Title, 40),
			string(r.Type),
			r.Difficulty.Label(),
			hours(r.EstimatedHours),
			money(r.CostUSD),
			fmt.Sprintf("%.1f", r.Rating),
			strings.Join(r.SkillsTaught, ", "),
		)
	}
	_, err := lipgloss.Fprint(w, t.Render()+"\n"+Hint.Render(fmt.Sprintf("%d resources", len(resources)))+"\n")
	return err
}

// Skills writes the taxonomy as a tree grouped by category. Skills not in
// a built-in category are listed under Other.
func Skills(w io.Writer, tax *skills.Taxonomy) error {
	root := tree.Root(Title.Render("Skills")).
		EnumeratorStyle(TableBorder)

	for _, c := range append(skills.AllCategories(), skills.CategoryOther) {
		names := tax.ByCategory(c)
		if len(names) == 0 {
			continue
		}
		branch := tree.Root(Label.Render(skills.CategoryDisplayName(c)))
		for _, name := range names {
			branch.Child(skillLine(tax, name))
		}
		root.Child(branch)
	}

	_, err := lipgloss.Fprint(w, root.String()+"\n")
	return err
}

func skillLine(tax *skills.Taxonomy, name string) string {
	implied := tax.Implied(name)
	if len(implied) == 0 {
		return name
	}
	return name + Hint.Render(" needs "+strings.Join(implied, ", "))
}

// History lists stored paths, newest first.
func History(w io.Writer, records []store.PathRecord) error {
	if len(records) == 0 {
		_, err := lipgloss.Fprint(w, Hint.Render("No paths recorded yet.")+"\n")
		return err
	}
	t := newTable("Seq", "When", "Profile", "Goal", "Steps", "Hours", "Cost", "Conf.")
	for _, rec := range records {
		lp := rec.Path
		goal := fmt.Sprintf("%s (%s)", lp.Goal.Skill, lp.Goal.TargetLevel.Label())
		conf := confidenceStyle(lp.Confidence).Render(fmt.Sprintf("%.0f", lp.Confidence))
		if lp.ConstraintViolated {
			conf += Warning.Render(" !")
		}
		t.Row(
			fmt.Sprint(rec.Sequence),
			rec.Timestamp.Local().Format("2006-01-02 15:04"),
			rec.ProfileName,
			goal,
			fmt.Sprint(len(lp.Steps)),
			hours(lp.TotalHours),
			money(lp.TotalCost),
			conf,
		)
	}
	_, err := lipgloss.Fprint(w, t.Render()+"\n")
	return err
}

// Stats writes aggregate history statistics.
func Stats(w io.Writer, st *store.Stats) error {
	var b strings.Builder
	b.WriteString(Title.Render("History"))
	b.WriteString("\n\n")

	t := newTable("Metric", "Value")
	t.Row("Paths generated", fmt.Sprint(st.Paths))
	t.Row("Goals failed", fmt.Sprint(st.Failures))
	t.Row("Total hours", hours(st.TotalHours))
	t.Row("Total cost", money(st.TotalCost))
	t.Row("Mean confidence", fmt.Sprintf("%.1f", st.MeanConfidence))
	t.Row("Over budget", fmt.Sprint(st.ConstraintViolated))
	b.WriteString(t.Render())
	b.WriteString("\n")

	if len(st.TopGoals) > 0 {
		b.WriteString(Label.Render("Top goals"))
		b.WriteString("\n")
		for _, g := range st.TopGoals {
			fmt.Fprintf(&b, "  %-24s %d\n", g.Skill, g.Paths)
		}
	}
	if len(st.FailuresByKind) > 0 {
		kinds := make([]string, 0, len(st.FailuresByKind))
		for k := range st.FailuresByKind {
			kinds = append(kinds, string(k))
		}
		slices.Sort(kinds)
		b.WriteString(Label.Render("Failures"))
		b.WriteString("\n")
		for _, k := range kinds {
			fmt.Fprintf(&b, "  %-24s %d\n", k, st.FailuresByKind[engine.FailureKind(k)])
		}
	}

	_, err := lipgloss.Fprint(w, b.String())
	return err
}

func truncate(s string, n int) string {
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

// Heading writes a section title with an optional dimmed note.
func Heading(w io.Writer, title, note string) error {
	s := Title.Render(title)
	if note != "" {
		s += " " + Subtitle.Render(note)
	}
	_, err := lipgloss.Fprint(w, s+"\n\n")
	return err
}
