package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillpath/internal/engine"
	"github.com/abhisek/skillpath/internal/report"
	"github.com/abhisek/skillpath/internal/store"
)

type historyEntry struct {
	Sequence  int64                `json:"sequence"`
	Timestamp time.Time            `json:"timestamp"`
	Profile   string               `json:"profile"`
	Path      *engine.LearningPath `json:"path"`
}

func newHistoryCmd(opts *options) *cobra.Command {
	var (
		limit       int
		profileName string
		since       time.Duration
		failures    bool
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded learning paths, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			q := store.QueryOpts{Limit: limit, Profile: profileName}
			if since > 0 {
				q.From = time.Now().Add(-since)
			}
			out := cmd.OutOrStdout()

			if failures {
				records, err := st.History().Failures(cmd.Context(), q)
				if err != nil {
					return fmt.Errorf("query failures: %w", err)
				}
				if asJSON {
					return writeJSON(out, records)
				}
				if len(records) == 0 {
					fmt.Fprintln(out, "No failures recorded.")
					return nil
				}
				fs := make([]engine.GoalFailure, len(records))
				for i, r := range records {
					fs[i] = r.Failure
				}
				return report.Failures(out, fs)
			}

			records, err := st.History().Paths(cmd.Context(), q)
			if err != nil {
				return fmt.Errorf("query history: %w", err)
			}
			if asJSON {
				entries := make([]historyEntry, len(records))
				for i, r := range records {
					entries[i] = historyEntry{Sequence: r.Sequence, Timestamp: r.Timestamp, Profile: r.ProfileName, Path: r.Path}
				}
				return writeJSON(out, entries)
			}
			return report.History(out, records)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of records (0 = all)")
	cmd.Flags().StringVar(&profileName, "profile", "", "Only records of this profile")
	cmd.Flags().DurationVar(&since, "since", 0, "Only records newer than this, e.g. 24h")
	cmd.Flags().BoolVar(&failures, "failures", false, "List goal failures instead of paths")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Write records as JSON")
	return cmd
}
