package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-snippets/pkg/extract"
)

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract INPUT [OPTIONS]",
		Short: "Print one value of a delimited string",
		Long: `extract splits INPUT on a delimiter and prints the value at an index.
OPTIONS is either a bare index ("2", "-1") or key=value pairs joined by '&'
("index=1&delimiter=|&default=none"). The --index, --delimiter and --default
flags take precedence over OPTIONS when set. Use "--" before a negative bare
index so it is not read as a flag.`,
		Example: `  snippets-cli extract -- "pomme;orange;banane" -1
  snippets-cli extract "a|b|c" "index=1&delimiter=|"`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := ""
			if len(args) > 1 {
				raw = args[1]
			}
			opts := extract.ParseOptions(raw)

			flags := cmd.Flags()
			if flags.Changed("index") {
				opts.Index, _ = flags.GetInt("index")
			}
			if flags.Changed("delimiter") {
				if d, _ := flags.GetString("delimiter"); d != "" {
					opts.Delimiter = d
				}
			}
			if flags.Changed("default") {
				opts.Default, _ = flags.GetString("default")
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), extract.ExtractWith(args[0], opts))
			return err
		},
	}

	cmd.Flags().Int("index", 0, "zero-based index, negative counts from the end")
	cmd.Flags().String("delimiter", extract.DefaultDelimiter, "value separator")
	cmd.Flags().String("default", "", "value printed when the index is out of range")
	return cmd
}
