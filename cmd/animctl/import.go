package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newImportCmd(s *session) *cobra.Command {
	var (
		types  []string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Load an export document and persist it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selected, err := typeFlag(types)
			if err != nil {
				return err
			}

			var data []byte
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return err
			}

			if err := s.manager.Import(data, selected...); err != nil {
				return err
			}
			if dryRun {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "document is valid; nothing written")
				return err
			}
			if err := s.manager.ApplyChanges(cmd.Context()); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "imported")
			return err
		},
	}
	cmd.Flags().StringSliceVarP(&types, "type", "t", nil, "only import these types (repeatable)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the document without writing")
	return cmd
}
