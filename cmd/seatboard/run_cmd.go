package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spec-kit/seatboard/internal/service"
)

var errCommandFailed = errors.New("command failed")

func newRunCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "run <text...>",
		Short:   "Execute one command, e.g. seatboard run 홍길동 C3",
		Args:    cobra.MinimumNArgs(1),
		Example: "  seatboard run \"홍길동 김철수 바꿔\"\n  seatboard run 시나리오 저장 1차안",
		RunE: func(cmd *cobra.Command, args []string) error {
			res := s.app.Commands.Execute(s.ctx(cmd), strings.Join(args, " "))
			if err := printResult(cmd.OutOrStdout(), res, s.json); err != nil {
				return err
			}
			if !res.Success {
				cmd.SilenceErrors = true
				return errCommandFailed
			}
			return nil
		},
	}
}

func printResult(w io.Writer, res service.Result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	mark := "✓"
	if !res.Success {
		mark = "✗"
	}
	_, err := fmt.Fprintf(w, "%s %s\n", mark, res.Message)
	return err
}
