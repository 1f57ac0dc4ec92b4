// Command canonform converts JavaScript values to their canonical JSON, QSO
// and PSO forms and rebuilds values from those forms using a schema.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/grahms/canonform/internal/enum"
	"github.com/grahms/canonform/internal/log"
)

const (
	FlagForm       = "form"
	FlagStrictness = "strictness"
	FlagOutput     = "output"
	FlagSchema     = "schema"

	OutputJSON = "json"
	OutputYAML = "yaml"
)

func main() {
	if err := New().Execute(); err != nil {
		os.Exit(1)
	}
}

// New builds the root command.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "canonform [sub-command]",
		Short: "Convert values to and from canonical JSON, QSO and PSO forms",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		DisableAutoGenTag: true,
		SilenceUsage:      true,
	}
	log.RegisterLoggingFlags(cmd.PersistentFlags())
	cmd.AddCommand(newStringifyCmd())
	cmd.AddCommand(newParseCmd())
	cmd.AddCommand(newSchemaCmd())
	return cmd
}

func registerFormFlag(cmd *cobra.Command) {
	enum.Var(cmd.Flags(), FlagForm, []string{"json", "qso", "pso"}, "canonical form")
}
