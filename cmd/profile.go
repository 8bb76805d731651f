package cmd

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/skillpath/internal/profile"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Work with learner profile files",
	}
	cmd.AddCommand(newProfileSampleCmd(), newProfileValidateCmd())
	return cmd
}

func newProfileSampleCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print the sample profile as a starting point",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := profile.Sample()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), p)
			}
			out, err := profileYAML(p)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Write JSON instead of YAML")
	return cmd
}

func newProfileValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <profile.yaml>",
		Short: "Check a profile file against the profile schema and rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := profile.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: profile %q with %d skills and %d goals, OK\n",
				args[0], p.Name, len(p.Skills), len(p.Goals))
			return nil
		},
	}
}

// profileYAML renders p as block-style YAML using its JSON field names,
// which is the shape profile.Parse reads back.
func profileYAML(p *profile.Profile) ([]byte, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, err
	}
	blockStyle(&node)
	return yaml.Marshal(&node)
}

func blockStyle(n *yaml.Node) {
	n.Style &^= yaml.FlowStyle | yaml.DoubleQuotedStyle
	for _, c := range n.Content {
		blockStyle(c)
	}
}
