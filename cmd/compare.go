package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillpath/internal/engine"
	"github.com/abhisek/skillpath/internal/report"
	"github.com/abhisek/skillpath/internal/store"
)

func newCompareCmd(opts *options) *cobra.Command {
	var (
		sample      bool
		fromHistory bool
		limit       int
		profileName string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "compare [profile.yaml...]",
		Short: "Summarize analytics across learning paths",
		Long: "Plan the given profiles and aggregate their paths into one analytics summary, " +
			"or aggregate paths already recorded in the history database with --history.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var paths []*engine.LearningPath

			switch {
			case fromHistory:
				if len(args) > 0 || sample {
					return fmt.Errorf("--history cannot be combined with profiles")
				}
				st, err := opts.openStore()
				if err != nil {
					return err
				}
				defer st.Close()

				records, err := st.History().Paths(cmd.Context(), store.QueryOpts{Limit: limit, Profile: profileName})
				if err != nil {
					return fmt.Errorf("query history: %w", err)
				}
				for _, r := range records {
					paths = append(paths, r.Path)
				}

			default:
				if len(args) == 0 && !sample {
					return fmt.Errorf("no profile given: pass profile files, --sample or --history")
				}
				eng, err := opts.engine()
				if err != nil {
					return err
				}
				sources := args
				if sample {
					sources = append([]string{""}, sources...)
				}
				results, err := planProfiles(cmd, eng, sources, nil)
				if err != nil {
					return err
				}
				for _, r := range results {
					paths = append(paths, r.Paths...)
				}
			}

			summary := engine.Compare(paths)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), summary)
			}
			return report.Summary(cmd.OutOrStdout(), summary)
		},
	}

	cmd.Flags().BoolVar(&sample, "sample", false, "Include the built-in sample profile")
	cmd.Flags().BoolVar(&fromHistory, "history", false, "Aggregate recorded paths instead of planning")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "With --history, only the most recent N paths (0 = all)")
	cmd.Flags().StringVar(&profileName, "profile", "", "With --history, only paths of this profile")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Write the summary as JSON")
	return cmd
}
