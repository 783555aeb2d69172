package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newReplCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read commands line by line until EOF or \"exit\"",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			scanner := bufio.NewScanner(cmd.InOrStdin())
			fmt.Fprint(out, "> ")
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				switch line {
				case "":
				case "exit", "quit", "종료":
					return nil
				default:
					res := s.app.Commands.Execute(s.ctx(cmd), line)
					if err := printResult(out, res, s.json); err != nil {
						return err
					}
				}
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				fmt.Fprint(out, "> ")
			}
			return scanner.Err()
		},
	}
}
