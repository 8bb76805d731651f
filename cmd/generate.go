package cmd

import (
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/skillpath/internal/engine"
	"github.com/abhisek/skillpath/internal/logging"
	"github.com/abhisek/skillpath/internal/profile"
	"github.com/abhisek/skillpath/internal/report"
	"github.com/abhisek/skillpath/internal/skills"
)

// profileResult is the outcome of planning one profile.
type profileResult struct {
	Profile   string                 `json:"profile"`
	Source    string                 `json:"source,omitempty"`
	Paths     []*engine.LearningPath `json:"paths"`
	Failures  []engine.GoalFailure   `json:"failures,omitempty"`
	Analytics []engine.PathAnalytics `json:"analytics"`

	batch *engine.Batch
}

type generateFlags struct {
	sample  bool
	goals   []string
	json    bool
	noSave  bool
	compare bool
}

func newGenerateCmd(opts *options) *cobra.Command {
	f := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate [profile.yaml...]",
		Short: "Generate learning paths for one or more profiles",
		Long: "Generate a learning path for every goal of each profile. Profiles are planned " +
			"concurrently and each result is recorded in the history database.",
		Example: `  skillpath generate --sample
  skillpath generate alex.yaml sam.yaml --compare
  skillpath generate alex.yaml --goal "Machine Learning:ADVANCED:6" --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts, f, args)
		},
	}

	cmd.Flags().BoolVar(&f.sample, "sample", false, "Plan the built-in sample profile")
	cmd.Flags().StringArrayVarP(&f.goals, "goal", "g", nil, `Goal to plan instead of the profile's goals, as "Skill:LEVEL[:months]" (repeatable, priority follows order)`)
	cmd.Flags().BoolVar(&f.json, "json", false, "Write results as JSON")
	cmd.Flags().BoolVar(&f.noSave, "no-save", false, "Do not record results in the history database")
	cmd.Flags().BoolVar(&f.compare, "compare", false, "Append an analytics summary across all generated paths")
	return cmd
}

func runGenerate(cmd *cobra.Command, opts *options, f *generateFlags, args []string) error {
	if len(args) == 0 && !f.sample {
		return fmt.Errorf("no profile given: pass profile files or --sample")
	}

	goals, err := parseGoals(f.goals)
	if err != nil {
		return err
	}

	eng, err := opts.engine()
	if err != nil {
		return err
	}

	sources := args
	if f.sample {
		sources = append([]string{""}, sources...)
	}

	results, err := planProfiles(cmd, eng, sources, goals)
	if err != nil {
		return err
	}

	if !f.noSave {
		if err := saveResults(cmd, opts, results); err != nil {
			return err
		}
	}

	var all []*engine.LearningPath
	for _, r := range results {
		all = append(all, r.Paths...)
	}

	out := cmd.OutOrStdout()
	if f.json {
		doc := map[string]any{"results": results}
		if f.compare {
			doc["summary"] = eng.Compare(all)
		}
		return writeJSON(out, doc)
	}

	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if err := report.Heading(out, r.Profile, r.Source); err != nil {
			return err
		}
		if err := report.Batch(out, r.batch, eng); err != nil {
			return err
		}
	}
	if f.compare {
		fmt.Fprintln(out)
		return report.Summary(out, eng.Compare(all))
	}
	return nil
}

// planProfiles loads and plans every source concurrently. An empty source
// stands for the sample profile. Results keep the order of sources.
func planProfiles(cmd *cobra.Command, eng *engine.Engine, sources []string, goals []profile.Goal) ([]*profileResult, error) {
	results := make([]*profileResult, len(sources))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, src := range sources {
		g.Go(func() error {
			p, err := loadProfile(src)
			if err != nil {
				return err
			}
			batch, err := eng.Generate(p, goals...)
			if err != nil {
				return fmt.Errorf("profile %q: %w", p.Name, err)
			}

			r := &profileResult{
				Profile:   p.Name,
				Source:    src,
				Paths:     batch.Paths,
				Failures:  batch.Failures,
				Analytics: make([]engine.PathAnalytics, len(batch.Paths)),
				batch:     batch,
			}
			for j, lp := range batch.Paths {
				r.Analytics[j] = eng.Analyze(lp)
			}
			results[i] = r

			logging.Info().
				Str("profile", p.Name).
				Int("paths", len(batch.Paths)).
				Int("failures", len(batch.Failures)).
				Msg("profile planned")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func loadProfile(src string) (*profile.Profile, error) {
	if src == "" {
		return profile.Sample(), nil
	}
	return profile.Load(src)
}

func saveResults(cmd *cobra.Command, opts *options, results []*profileResult) error {
	st, err := opts.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	history := st.History()
	for _, r := range results {
		if err := history.AppendBatch(cmd.Context(), r.Profile, r.batch); err != nil {
			return fmt.Errorf("save history for %q: %w", r.Profile, err)
		}
	}
	return nil
}

// parseGoals parses --goal values. Priority follows flag order, capped at 5.
func parseGoals(values []string) ([]profile.Goal, error) {
	goals := make([]profile.Goal, 0, len(values))
	for i, v := range values {
		g, err := parseGoal(v, min(i+1, 5))
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, nil
}

// parseGoal parses "Skill[:LEVEL[:months]]". The level defaults to
// Intermediate.
func parseGoal(s string, priority int) (profile.Goal, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return profile.Goal{}, fmt.Errorf("invalid goal %q: want Skill:LEVEL[:months]", s)
	}

	g := profile.Goal{
		Skill:       strings.TrimSpace(parts[0]),
		TargetLevel: skills.Intermediate,
		Priority:    priority,
	}
	if g.Skill == "" {
		return profile.Goal{}, fmt.Errorf("invalid goal %q: missing skill", s)
	}
	if len(parts) > 1 {
		level, err := skills.ParseLevel(strings.TrimSpace(parts[1]))
		if err != nil {
			return profile.Goal{}, fmt.Errorf("invalid goal %q: %w", s, err)
		}
		if level == skills.Novice {
			return profile.Goal{}, fmt.Errorf("invalid goal %q: target level must be above NOVICE", s)
		}
		g.TargetLevel = level
	}
	if len(parts) > 2 {
		months, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil || months < 0 || months > 60 {
			return profile.Goal{}, fmt.Errorf("invalid goal %q: deadline must be 0-60 months", s)
		}
		g.DeadlineMonths = months
	}
	return g, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
