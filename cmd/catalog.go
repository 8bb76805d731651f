package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/report"
)

func newCatalogCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and validate resource catalogs",
	}
	cmd.AddCommand(newCatalogListCmd(opts), newCatalogShowCmd(opts), newCatalogValidateCmd())
	return cmd
}

func newCatalogListCmd(opts *options) *cobra.Command {
	var (
		typ    string
		skill  string
		free   bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.catalog()
			if err != nil {
				return err
			}

			resources := c.All()
			if typ != "" {
				t := catalog.ResourceType(typ)
				if !t.Valid() {
					return fmt.Errorf("unknown resource type %q (valid: %v)", typ, catalog.AllResourceTypes())
				}
				resources = c.ByType(t)
			}
			if skill != "" {
				resources = filterResources(resources, func(r catalog.Resource) bool { return r.Teaches(skill) })
			}
			if free {
				resources = filterResources(resources, catalog.Resource.IsFree)
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), resources)
			}
			return report.Catalog(cmd.OutOrStdout(), resources)
		},
	}

	cmd.Flags().StringVarP(&typ, "type", "t", "", "Only resources of this type (course, book, ...)")
	cmd.Flags().StringVarP(&skill, "skill", "s", "", "Only resources teaching this skill")
	cmd.Flags().BoolVar(&free, "free", false, "Only free resources")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Write resources as JSON")
	return cmd
}

func newCatalogShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <resource-id>",
		Short: "Show one resource as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.catalog()
			if err != nil {
				return err
			}
			r, err := c.MustGet(args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), r)
		},
	}
}

func newCatalogValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <catalog.yaml>",
		Short: "Check a catalog file against the catalog schema and rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d resources, %d skills, OK\n", args[0], c.Len(), len(c.Skills()))
			return nil
		},
	}
}

func filterResources(rs []catalog.Resource, keep func(catalog.Resource) bool) []catalog.Resource {
	var out []catalog.Resource
	for _, r := range rs {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
