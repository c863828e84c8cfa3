package cmd

import (
	"fmt"
	"sort"

	"github.com/josephlewis42/loadables/commands"
	"github.com/josephlewis42/loadables/core"
	"github.com/spf13/cobra"
)

var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the builtin commands.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		builtins := commands.ListBuiltins()

		for name := range core.AllBuiltins {
			builtins = append(builtins, "shell:"+name)
		}

		sort.Strings(builtins)

		for _, v := range builtins {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
