package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSoundsCmd creates the sounds command. names is only called when the
// command runs, since listing sounds scans the sound directories.
func NewSoundsCmd(names func() []string) *cobra.Command {
	return &cobra.Command{
		Use:   "sounds",
		Short: "List the system sounds usable with --sound",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range names() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
