package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd(s *session) *cobra.Command {
	var types []string

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore defaults and persist them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			selected, err := typeFlag(types)
			if err != nil {
				return err
			}
			s.manager.RestoreDefaults(selected...)
			if err := s.manager.ApplyChanges(cmd.Context()); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "defaults restored")
			return err
		},
	}
	cmd.Flags().StringSliceVarP(&types, "type", "t", nil, "only reset these types (repeatable)")
	return cmd
}
