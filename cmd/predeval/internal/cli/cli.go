// Package cli wires the predeval command tree with cobra: a root command
// carrying shared --schema/--tuple/-v flags, and eval/fetch/schema
// subcommands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"predeval/engine"
	"predeval/schema"
	"predeval/trace"
	"predeval/tupleview/jsontuple"
)

// TracerFactory builds a tracer given the -v flag's value.
type TracerFactory func(verbose bool) *trace.Tracer

type rootFlags struct {
	schemaFile string
	tupleFile  string
	verbose    bool
}

// NewRootCmd builds the predeval command tree.
func NewRootCmd(newTracer TracerFactory) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "predeval",
		Short:         "Evaluate predicate expressions against JSON tuples",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.schemaFile, "schema", "", "path to a file containing the canonical schema string (required)")
	root.PersistentFlags().StringVar(&flags.tupleFile, "tuple", "", "path to a file containing the JSON tuple (required)")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable structured trace logging")

	root.AddCommand(newEvalCmd(flags, newTracer))
	root.AddCommand(newFetchCmd(flags, newTracer))
	root.AddCommand(newSchemaCmd(flags))

	return root
}

func loadTuple(flags *rootFlags) (*jsontuple.Tuple, string, error) {
	if flags.schemaFile == "" || flags.tupleFile == "" {
		return nil, "", fmt.Errorf("--schema and --tuple are required")
	}
	schemaBytes, err := os.ReadFile(flags.schemaFile)
	if err != nil {
		return nil, "", fmt.Errorf("reading schema file: %w", err)
	}
	tupleBytes, err := os.ReadFile(flags.tupleFile)
	if err != nil {
		return nil, "", fmt.Errorf("reading tuple file: %w", err)
	}
	schemaString := string(schemaBytes)
	tuple, err := jsontuple.New(string(tupleBytes), schemaString)
	if err != nil {
		return nil, "", err
	}
	return tuple, schemaString, nil
}

func newEvalCmd(flags *rootFlags, newTracer TracerFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate a predicate expression against the tuple",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tuple, _, err := loadTuple(flags)
			if err != nil {
				return err
			}
			eng := engine.New(newTracer(flags.verbose))
			result, code := eng.EvalPredicate(args[0], tuple)
			if code.IsError() {
				return fmt.Errorf("%s", code.String())
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

func newFetchCmd(flags *rootFlags, newTracer TracerFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <attribute>",
		Short: "Fetch one attribute's value from the tuple",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tuple, _, err := loadTuple(flags)
			if err != nil {
				return err
			}
			eng := engine.New(newTracer(flags.verbose))
			value, code := eng.GetTupleAttributeValue(tuple, args[0])
			if code.IsError() {
				return fmt.Errorf("%s", code.String())
			}
			if jv, ok := value.(*jsontuple.Tuple); ok {
				fmt.Fprintln(cmd.OutOrStdout(), jv.Raw())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), value.MetaType())
			return nil
		},
	}
}

func newSchemaCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the canonical schema string for the tuple",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tuple, _, err := loadTuple(flags)
			if err != nil {
				return err
			}
			schemaString := schema.Format(tuple)
			var pretty interface{} = schemaString
			if out, err := json.Marshal(pretty); err == nil {
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), schemaString)
			return nil
		},
	}
}
