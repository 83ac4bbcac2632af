package main

import (
	"fmt"
	"io"
	"os"

	"github.com/plume-lang/plume"
	"github.com/spf13/cobra"
)

func main() {
	var command string
	var trackLines bool

	cmd := &cobra.Command{
		Use:   "plume [flags] [script]",
		Short: "The plume script interpreter",
		Long: "plume runs a script file, an inline command, or an interactive\n" +
			"session when stdin is a terminal.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			i := plume.New()
			defer i.Close()
			i.SetLineTracking(trackLines)
			registerHostCommands(i)

			if command != "" {
				return runScript(i, command)
			}
			if len(args) == 1 {
				script, err := os.ReadFile(args[0])
				if err != nil {
					return err
				}
				return runScript(i, string(script))
			}
			if stdinIsTerminal() {
				runREPL(i)
				return nil
			}
			script, err := io.ReadAll(os.Stdin)
			if err != nil {
				return err
			}
			return runScript(i, string(script))
		},
	}

	cmd.Flags().StringVarP(&command, "command", "c", "", "evaluate this script and exit")
	cmd.Flags().BoolVar(&trackLines, "lines", true, "prefix error messages with source line numbers")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "plume: %s\n", err)
		os.Exit(1)
	}
}

func runScript(i *plume.Interp, script string) error {
	result, err := i.Eval(script)
	if err != nil {
		return err
	}
	if result.String() != "" {
		fmt.Println(result.String())
	}
	return nil
}
