package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillpath/internal/logging"
)

func newResetCmd(opts *options) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all recorded paths and failures",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("reset deletes the whole history; re-run with --yes to confirm")
			}

			st, err := opts.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			n, err := st.History().Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear history: %w", err)
			}
			logging.Info().Int64("rows", n).Msg("history cleared")
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d records.\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion")
	return cmd
}
