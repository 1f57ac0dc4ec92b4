package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
	"github.com/dop251/goja"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/grahms/canonform"
	"github.com/grahms/canonform/internal/enum"
	"github.com/grahms/canonform/internal/log"
	"github.com/grahms/canonform/jsvalue"
)

func newStringifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stringify [expression]",
		Short: "Evaluate a JavaScript expression and print its canonical form",
		Long: `Evaluate a JavaScript expression and print its canonical form.

The expression is read from stdin when it is omitted or "-". JSON output is
canonicalized so equal values always print identical bytes.`,
		Example: `  canonform stringify '{a: 1, when: new Date(0)}'
  canonform stringify --form qso --strictness strict '{tags: ["a", null]}'
  echo '{nested: {a: [1]}}' | canonform stringify --form pso --output yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: runStringify,
	}
	registerFormFlag(cmd)
	cmd.Flags().String(FlagStrictness, "", "strictness of the form, defaults to the most common level of each form:\n"+
		fmt.Sprintf("  json: %v (default %s)\n", canonform.JSONStrictnessNames(), canonform.JSONLenient)+
		fmt.Sprintf("  qso:  %v (default %s)\n", canonform.QSOStrictnessNames(), canonform.DefaultQSOStrictness)+
		fmt.Sprintf("  pso:  %v (default %s)", canonform.PSOStrictnessNames(), canonform.PSOStrict))
	enum.Var(cmd.Flags(), FlagOutput, []string{OutputJSON, OutputYAML}, "document encoding")
	return cmd
}

func runStringify(cmd *cobra.Command, args []string) error {
	logger, err := log.GetBaseLogger(cmd)
	if err != nil {
		return err
	}
	form, err := formFromFlags(cmd)
	if err != nil {
		return err
	}
	strictness, err := cmd.Flags().GetString(FlagStrictness)
	if err != nil {
		return err
	}
	output, err := enum.Get(cmd.Flags(), FlagOutput)
	if err != nil {
		return err
	}

	src, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	v, err := jsvalue.Eval(goja.New(), string(src))
	if err != nil {
		return err
	}
	logger.Debug("evaluated expression", "value", v.String())

	engine := canonform.NewEngine(canonform.WithLogger(logger))
	doc, err := convert(engine, form, strictness, v)
	if err != nil {
		return err
	}

	data, err := encode(doc, output)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func convert(engine *canonform.Engine, form canonform.Form, strictness string, v canonform.Value) (any, error) {
	switch form {
	case canonform.FormJSON:
		s := canonform.JSONLenient
		if strictness != "" {
			var err error
			if s, err = canonform.ParseJSONStrictness(strictness); err != nil {
				return nil, err
			}
		}
		return engine.ToJSON(v, s)
	case canonform.FormQSO:
		s := canonform.DefaultQSOStrictness
		if strictness != "" {
			var err error
			if s, err = canonform.ParseQSOStrictness(strictness); err != nil {
				return nil, err
			}
		}
		return engine.ToQSO(v, s)
	default:
		s := canonform.PSOStrict
		if strictness != "" {
			var err error
			if s, err = canonform.ParsePSOStrictness(strictness); err != nil {
				return nil, err
			}
		}
		return engine.ToPSO(v, s)
	}
}

func encode(doc any, output string) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("could not marshal document: %w", err)
	}
	if output == OutputYAML {
		return yaml.JSONToYAML(data)
	}
	if data, err = jsoncanonicalizer.Transform(data); err != nil {
		return nil, fmt.Errorf("could not canonicalize document: %w", err)
	}
	return append(data, '\n'), nil
}

func formFromFlags(cmd *cobra.Command) (canonform.Form, error) {
	name, err := enum.Get(cmd.Flags(), FlagForm)
	if err != nil {
		return 0, err
	}
	return canonform.ParseForm(name)
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("could not read stdin: %w", err)
		}
		return data, nil
	}
	return []byte(args[0]), nil
}
