package main

import (
	"fmt"
	"strings"

	"grantrates-backend/search"
	"grantrates-backend/service"

	"github.com/spf13/cobra"
)

var searchFlags struct {
	sort string
}

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search cities and judges by name",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchFlags.sort, "sort", string(search.DefaultSortKey), "sort order (alphaAsc, alphaDesc, approvalHigh, approvalLow, casesHigh, casesLow)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	lang, err := language()
	if err != nil {
		return err
	}
	key, err := search.ParseSortKey(searchFlags.sort)
	if err != nil {
		return err
	}
	svc, err := catalog(cmd.Context())
	if err != nil {
		return err
	}

	term := strings.Join(args, " ")
	res, err := svc.Search(cmd.Context(), service.SearchRequest{Term: term, Sort: key, Language: lang})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Cities (%d)\n", len(res.Cities))
	for _, c := range res.Cities {
		fmt.Fprintf(out, "  %-20s %6.2f%%  %-6s  judges=%d cases=%d\n", c.Name, c.ApprovalRate, c.Band, c.JudgeCount, c.TotalCases)
	}
	fmt.Fprintf(out, "Judges (%d)\n", len(res.Judges))
	for _, j := range res.Judges {
		fmt.Fprintf(out, "  %-30s %6.2f%%  %-6s  %s\n", j.Name, j.ApprovalRate, j.Band, j.City)
	}
	return nil
}
