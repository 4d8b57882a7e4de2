package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/verilsp/verilsp/file"
	"github.com/verilsp/verilsp/format"
	"github.com/verilsp/verilsp/syntax"
	"github.com/verilsp/verilsp/text"
	"github.com/verilsp/verilsp/token"
)

func newFormatCmd() *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "format <file>...",
		Short: "Reformat Verilog sources",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				if file.KindForPath(path) == file.UnknownKind {
					return fmt.Errorf("%s: not a Verilog source file", path)
				}
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				contents := string(data)
				toks := token.Lex(contents)
				if !syntax.Parse(toks).ParseOK() {
					return fmt.Errorf("%s: refusing to format a file with syntax errors", path)
				}
				out := format.Document(text.NewStructure(contents, toks))
				if write {
					if out != contents {
						if err := os.WriteFile(path, []byte(out), 0644); err != nil {
							return err
						}
					}
					continue
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite files in place instead of printing")
	return cmd
}
