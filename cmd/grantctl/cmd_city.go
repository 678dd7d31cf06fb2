package main

import (
	"fmt"
	"io"

	"grantrates-backend/models"
	"grantrates-backend/search"
	"grantrates-backend/service"

	"github.com/spf13/cobra"
)

var cityFlags struct {
	sort string
}

var cityCmd = &cobra.Command{
	Use:   "city <name>",
	Short: "Show a city's averages and its judges",
	Args:  cobra.ExactArgs(1),
	RunE:  runCity,
}

func init() {
	cityCmd.Flags().StringVar(&cityFlags.sort, "sort", string(service.CityDetailDefaultSort), "judge order (alphaAsc, alphaDesc, approvalHigh, approvalLow, casesHigh, casesLow)")
}

func runCity(cmd *cobra.Command, args []string) error {
	lang, err := language()
	if err != nil {
		return err
	}
	key, err := search.ParseSortKey(cityFlags.sort)
	if err != nil {
		return err
	}
	svc, err := catalog(cmd.Context())
	if err != nil {
		return err
	}

	res, err := svc.GetCity(cmd.Context(), service.GetCityRequest{Name: args[0], Sort: key, Language: lang})
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	printMetric(out, res.City)
	fmt.Fprintf(out, "\nJudges (%d)\n", len(res.Judges))
	for _, j := range res.Judges {
		fmt.Fprintf(out, "  %-30s %6.2f%%  %-6s  cases=%d\n", j.Name, j.ApprovalRate, j.Band, j.TotalCases)
	}
	return nil
}

func printMetric(out io.Writer, m models.DerivedMetric) {
	fmt.Fprintf(out, "Name:          %s\n", m.Name)
	if m.City != "" {
		fmt.Fprintf(out, "City:          %s\n", m.City)
	}
	if m.Kind == models.MetricKindCity {
		fmt.Fprintf(out, "Judges:        %d\n", m.JudgeCount)
	}
	fmt.Fprintf(out, "Approval:      %.2f%% (%s)\n", m.ApprovalRate, m.Band)
	fmt.Fprintf(out, "Asylum:        %.2f%% (~%d)\n", m.AsylumRate, m.GrantedAsylumAmount)
	fmt.Fprintf(out, "Other relief:  %.2f%% (~%d)\n", m.OtherReliefRate, m.GrantedOtherAmount)
	fmt.Fprintf(out, "Denied:        %.2f%% (~%d)\n", m.DeniedRate, m.DeniedAmount)
	fmt.Fprintf(out, "Total cases:   %d\n", m.TotalCases)
}
