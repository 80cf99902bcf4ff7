package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCmd(s *session) *cobra.Command {
	var stdout bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the export document to the export directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if stdout {
				data, err := s.manager.GenerateJSONString()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), data)
				return err
			}

			path, err := s.manager.GenerateJSONFile()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
	cmd.Flags().BoolVar(&stdout, "stdout", false, "print the document instead of writing a file")
	return cmd
}
