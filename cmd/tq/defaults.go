package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/razeghi71/tq/loader"
	"github.com/razeghi71/tq/query"
)

// NewDefaultsCommand creates the defaults command.
func NewDefaultsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "defaults <file>",
		Short: "Print the default query spec for a data file",
		Long: `Print the query spec a freshly loaded file starts from. The YAML output
can be edited and passed back with 'tq run --spec'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loader.Load(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "cannot load data", err)
			}
			spec := query.Default(t)
			rootOpts.Logger.Debug("default spec", "file", args[0], "columns", len(t.Columns))

			w := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(spec)
			}

			out, err := query.EncodeSpec(spec)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(w, string(out))
			return err
		},
	}
}
