package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nerrad567/gray-logic-textinput/internal/core"
	"github.com/nerrad567/gray-logic-textinput/internal/manifest"
	"github.com/nerrad567/gray-logic-textinput/internal/textinput"
)

func newValidateCmd() *cobra.Command {
	var withMQTT bool

	cmd := &cobra.Command{
		Use:   "validate <manifest>",
		Short: "Validate an entity manifest and print the resolved configuration",
		Long: `Validate checks every entry of an entity manifest without starting the
node. Defaults are filled in and generated identifiers assigned; the
result is printed as YAML.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var features []string
			if withMQTT {
				features = append(features, textinput.FeatureMQTT)
			}

			// Only schemas are needed; nothing is applied.
			catalog := core.NewCatalog(textinput.NewSetup(textinput.Deps{}))
			m, err := manifest.NewLoader(catalog, features...).LoadFile(args[0])
			if err != nil {
				return fmt.Errorf("validating %s: %w", args[0], err)
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(m.Resolved()); err != nil {
				return fmt.Errorf("encoding resolved manifest: %w", err)
			}
			return enc.Close()
		},
	}

	cmd.Flags().BoolVar(&withMQTT, "mqtt", false, "validate with the mqtt feature enabled (accepts mqtt_id)")
	return cmd
}
