package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

type analyticsCommands struct {
	serverURL *string
}

func newAnalyticsCmd(serverURL *string) *cobra.Command {
	a := &analyticsCommands{serverURL: serverURL}
	cmd := &cobra.Command{Use: "analytics", Short: "Spending and income analytics"}

	dashboard := &cobra.Command{Use: "dashboard", Short: "Aggregated overview", RunE: a.dashboard}
	dashboard.Flags().Int("months", 12, "trend window in months")
	cmd.AddCommand(dashboard)

	cmd.AddCommand(&cobra.Command{Use: "spending", Short: "Spending by category", RunE: a.spending})

	trends := &cobra.Command{Use: "trends", Short: "Monthly income/expense trends", RunE: a.trends}
	trends.Flags().Int("months", 12, "trend window in months")
	cmd.AddCommand(trends)

	cmd.AddCommand(&cobra.Command{Use: "summary", Short: "Per-account summary", RunE: a.summary})
	return cmd
}

func (a *analyticsCommands) dashboard(cmd *cobra.Command, args []string) error {
	months, _ := cmd.Flags().GetInt("months")
	d, err := newDeps(a.serverURL)
	if err != nil {
		return err
	}
	ov := d.stats.Overview(cmd.Context(), months)
	for section, err := range ov.Errs {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s unavailable: %v\n", section, err)
	}
	if err := printJSON(cmd, ov); err != nil {
		return err
	}
	// recent-transactions preview; a failure leaves the section empty
	if page, err := d.tx.History(cmd.Context(), 0, 5); err == nil && len(page.Content) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Recent transactions:")
		if err := printJSON(cmd, page.Content); err != nil {
			return err
		}
	}
	return nil
}

func (a *analyticsCommands) spending(cmd *cobra.Command, args []string) error {
	d, err := newDeps(a.serverURL)
	if err != nil {
		return err
	}
	out, err := d.stats.SpendingByCategory(cmd.Context())
	if err != nil {
		return err
	}
	return printJSON(cmd, out)
}

func (a *analyticsCommands) trends(cmd *cobra.Command, args []string) error {
	months, _ := cmd.Flags().GetInt("months")
	d, err := newDeps(a.serverURL)
	if err != nil {
		return err
	}
	out, err := d.stats.MonthlyTrends(cmd.Context(), months)
	if err != nil {
		return err
	}
	return printJSON(cmd, out)
}

func (a *analyticsCommands) summary(cmd *cobra.Command, args []string) error {
	d, err := newDeps(a.serverURL)
	if err != nil {
		return err
	}
	out, err := d.stats.AccountSummary(cmd.Context())
	if err != nil {
		return err
	}
	return printJSON(cmd, out)
}
