package main

import (
	"fmt"
	"text/tabwriter"

	appbilling "github.com/rentdesk/backend/internal/application/billing"
	"github.com/rentdesk/backend/internal/domain/billing"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	billsPeriod string
	billsUnpaid bool
)

var billsCmd = &cobra.Command{
	Use:   "bills",
	Short: "Inspect bills",
}

var billsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List bills, latest period first",
	Example: "  rentctl bills list --period 2024-01 --unpaid",
	RunE:    runBillsList,
}

func init() {
	billsListCmd.Flags().StringVarP(&billsPeriod, "period", "p", "", "only this period (YYYY-MM)")
	billsListCmd.Flags().BoolVar(&billsUnpaid, "unpaid", false, "only unpaid bills")

	billsCmd.AddCommand(billsListCmd)
	rootCmd.AddCommand(billsCmd)
}

func runBillsList(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp(a)

	bills, err := a.Bills.ListBills(cmd.Context(), appbilling.BillQuery{
		Period: lo.EmptyableToPtr(billsPeriod),
	})
	if err != nil {
		return err
	}
	if billsUnpaid {
		bills = lo.Reject(bills, func(b *billing.BillWithRoom, _ int) bool { return b.IsPaid() })
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "ROOM\tPERIOD\tRENT\tWATER\tELEC\tGAS\tPROPERTY\tTOTAL\tPAID\t")
	var outstanding decimal.Decimal
	for _, b := range bills {
		c := b.Charges
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			b.RoomNo, b.Period, c.RentFee.StringFixed(2), c.WaterFee.StringFixed(2),
			c.ElecFee.StringFixed(2), c.GasFee.StringFixed(2), c.PropertyFee.StringFixed(2),
			c.Total.StringFixed(2), lo.Ternary(b.IsPaid(), "yes", "no"))
		if !b.IsPaid() {
			outstanding = outstanding.Add(c.Total)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d bills, %s outstanding\n", len(bills), outstanding.StringFixed(2))
	return nil
}
