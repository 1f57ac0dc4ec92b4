package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/grahms/canonform"
	"github.com/grahms/canonform/internal/log"
	"github.com/grahms/canonform/schema"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [document]",
		Short: "Rebuild a value from a canonical document using a schema",
		Long: `Rebuild a value from a canonical JSON, QSO or PSO document.

The document is read from stdin when it is omitted or "-" and may be JSON or
YAML. The schema file declares the tag of every field, for example:

  name: string
  born: date
  tags: [string]`,
		Example: `  canonform parse --schema person.yaml --form qso '{"name":"Ada","born":"1815-12-10T00:00:00.000Z"}'`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runParse,
	}
	registerFormFlag(cmd)
	cmd.Flags().String(FlagSchema, "", "path to the schema file")
	_ = cmd.MarkFlagRequired(FlagSchema)
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	logger, err := log.GetBaseLogger(cmd)
	if err != nil {
		return err
	}
	form, err := formFromFlags(cmd)
	if err != nil {
		return err
	}
	field, err := loadSchema(cmd)
	if err != nil {
		return err
	}

	data, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("could not unmarshal document: %w", err)
	}

	v, err := canonform.ParseFrom(form, field, doc)
	if err != nil {
		return err
	}
	logger.Debug("parsed document", "form", form.String(), "tag", v.Tag().String())
	_, err = fmt.Fprintln(cmd.OutOrStdout(), v.String())
	return err
}

func newSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "schema",
		Short:   "Print the JSON Schema of the documents a form produces for a schema file",
		Example: `  canonform schema --schema person.yaml --form pso`,
		Args:    cobra.NoArgs,
		RunE:    runSchema,
	}
	registerFormFlag(cmd)
	cmd.Flags().String(FlagSchema, "", "path to the schema file")
	_ = cmd.MarkFlagRequired(FlagSchema)
	return cmd
}

func runSchema(cmd *cobra.Command, _ []string) error {
	form, err := formFromFlags(cmd)
	if err != nil {
		return err
	}
	field, err := loadSchema(cmd)
	if err != nil {
		return err
	}
	s, err := schema.JSONSchema(form, field)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal JSON schema: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func loadSchema(cmd *cobra.Command) (*schema.Field, error) {
	path, err := cmd.Flags().GetString(FlagSchema)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read schema: %w", err)
	}
	return schema.Load(data)
}
