package main

import (
	"fmt"
	"strings"

	"grantrates-backend/service"

	"github.com/spf13/cobra"
)

var judgeCmd = &cobra.Command{
	Use:   "judge <name>",
	Short: "Show a judge's decision rates",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runJudge,
}

func runJudge(cmd *cobra.Command, args []string) error {
	svc, err := catalog(cmd.Context())
	if err != nil {
		return err
	}
	name := strings.Join(args, " ")
	res, err := svc.GetJudge(cmd.Context(), service.GetJudgeRequest{Name: name})
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	printMetric(cmd.OutOrStdout(), res.Judge)
	return nil
}
