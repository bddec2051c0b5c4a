package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/devantler-tech/r2g2/pkg/introspect/manifest"
	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
)

// NewSchemaCmd returns the command printing the JSON schema of package manifests.
func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the package manifest format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema := ManifestSchema()

			data, err := json.MarshalIndent(schema, "", "  ")
			if err != nil {
				return fmt.Errorf("encode schema: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			if err != nil {
				return fmt.Errorf("write schema: %w", err)
			}

			return nil
		},
	}
}

// ManifestSchema reflects the schema of manifest.Package.
func ManifestSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{ExpandedStruct: true}
	schema := reflector.Reflect(&manifest.Package{})
	schema.Title = "r2g2 package manifest"

	return schema
}
