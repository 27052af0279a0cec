// Command brinec is a thin demonstration front end over the brineschema
// library: it compiles an IDL file and writes out its binary schema form.
// It is not a substitute for an embedding application's own CLI; file
// discovery, watch mode, and multi-schema project layouts are left to the
// caller.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	brineschema "github.com/eriksen/brineschema"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "brinec",
		Short: "Compile brineschema IDL files to their binary schema form",
	}

	var outPath string
	compileCmd := &cobra.Command{
		Use:   "compile [schema.brine]",
		Short: "Compile a schema file and optionally write its binary form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			s, encoded, err := brineschema.CompileSchema(string(text))
			if err != nil {
				return fmt.Errorf("compiling %s: %w", args[0], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "compiled %d definitions from %s\n", len(s.Definitions), args[0])

			if outPath == "" {
				return nil
			}
			return os.WriteFile(outPath, encoded, 0o644)
		},
	}
	compileCmd.Flags().StringVarP(&outPath, "out", "o", "", "write the binary schema to this path")

	root.AddCommand(compileCmd)
	return root
}
