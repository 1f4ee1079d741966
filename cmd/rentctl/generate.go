package main

import (
	"fmt"
	"time"

	appbilling "github.com/rentdesk/backend/internal/application/billing"
	"github.com/rentdesk/backend/internal/domain/rental"
	"github.com/spf13/cobra"
)

var generatePeriod string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate bills for every room for a period",
	Long: `Generates (or regenerates) the bill of every room that has a meter reading
for the period. Rooms without a reading are listed as skipped. Payment state of
existing bills is kept. Without --period the previous calendar month is billed.`,
	Example: "  rentctl generate --period 2024-01\n  rentctl generate",
	RunE:    runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generatePeriod, "period", "p", "", "billing period (YYYY-MM), defaults to last month")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp(a)

	period := resolvePeriod(generatePeriod, time.Now())
	results, err := a.Bills.GenerateBillsDetailed(cmd.Context(), period)
	if err != nil {
		return fmt.Errorf("generating bills: %w", err)
	}

	out := cmd.OutOrStdout()
	var generated, skipped int
	for _, r := range results {
		switch r.Status {
		case appbilling.GenerationStatusGenerated:
			generated++
			fmt.Fprintf(out, "%-10s  %12s\n", r.RoomNo, r.Bill.Charges.Total.StringFixed(2))
		case appbilling.GenerationStatusSkipped:
			skipped++
			fmt.Fprintf(out, "%-10s  skipped: %s\n", r.RoomNo, r.Reason)
		}
	}
	fmt.Fprintf(out, "Period %s: %d generated, %d skipped\n", period, generated, skipped)
	return nil
}

// resolvePeriod returns flag, or the month before now when flag is empty
func resolvePeriod(flag string, now time.Time) string {
	if flag != "" {
		return flag
	}
	return rental.PeriodOf(now).Previous().String()
}
