package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spec-kit/seatboard/internal/export"
)

func newExportCmd(s *session) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the current board to an .xlsx seating chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.Workbook(s.app.Boards.Snapshot())
			if err != nil {
				return err
			}
			defer f.Close()
			if err := f.SaveAs(out); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			info, err := os.Stat(out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bytes)\n", out, info.Size())
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "seatboard.xlsx", "output file")
	return cmd
}
