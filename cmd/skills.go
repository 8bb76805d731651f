package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/skillpath/internal/report"
	"github.com/abhisek/skillpath/internal/skills"
)

type skillEntry struct {
	Name     string          `json:"name"`
	Category skills.Category `json:"category"`
	Implies  []string        `json:"implies,omitempty"`
}

func newSkillsCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "skills",
		Short: "Show recognized skills by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.catalog()
			if err != nil {
				return err
			}
			tax := c.Taxonomy(skills.DefaultTaxonomy())

			if asJSON {
				var out []skillEntry
				for _, name := range tax.All() {
					out = append(out, skillEntry{Name: name, Category: tax.Category(name), Implies: tax.Implied(name)})
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}
			return report.Skills(cmd.OutOrStdout(), tax)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Write skills as JSON")
	return cmd
}
