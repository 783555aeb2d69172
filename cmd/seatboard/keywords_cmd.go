package main

import (
	"github.com/spf13/cobra"
)

func newKeywordsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "keywords",
		Short: "Print the active keyword tables as YAML, usable as BOARD_KEYWORDS_FILE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.app.Commands.Keywords().Dump(cmd.OutOrStdout())
		},
	}
}
