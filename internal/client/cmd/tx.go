package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

type txCommands struct {
	serverURL *string
}

func newTxCmd(serverURL *string) *cobra.Command {
	t := &txCommands{serverURL: serverURL}
	cmd := &cobra.Command{Use: "tx", Short: "Deposits, withdrawals and transfers"}

	deposit := &cobra.Command{Use: "deposit", Short: "Deposit into an account", RunE: t.deposit}
	addMoneyFlags(deposit)
	cmd.AddCommand(deposit)

	withdraw := &cobra.Command{Use: "withdraw", Short: "Withdraw from an account", RunE: t.withdraw}
	addMoneyFlags(withdraw)
	cmd.AddCommand(withdraw)

	transfer := &cobra.Command{Use: "transfer", Short: "Transfer between accounts", RunE: t.transfer}
	addMoneyFlags(transfer)
	transfer.Flags().Int64("to", 0, "destination account id")
	cmd.AddCommand(transfer)

	history := &cobra.Command{Use: "history", Short: "Paginated transaction history", RunE: t.history}
	history.Flags().Int("page", 0, "page number")
	history.Flags().Int("size", 20, "page size")
	cmd.AddCommand(history)

	cmd.AddCommand(&cobra.Command{Use: "details <id>", Short: "Show one transaction", Args: cobra.ExactArgs(1), RunE: t.details})
	cmd.AddCommand(&cobra.Command{Use: "targets", Short: "List transfer-eligible accounts", RunE: t.targets})
	return cmd
}

func addMoneyFlags(cmd *cobra.Command) {
	cmd.Flags().Int64("from", 0, "source account id")
	cmd.Flags().Float64("amount", 0, "amount")
	cmd.Flags().String("desc", "", "description")
}

func (t *txCommands) deposit(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetInt64("from")
	amount, _ := cmd.Flags().GetFloat64("amount")
	desc, _ := cmd.Flags().GetString("desc")
	d, err := newDeps(t.serverURL)
	if err != nil {
		return err
	}
	if err := d.tx.Deposit(cmd.Context(), from, amount, desc); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Deposited")
	return nil
}

func (t *txCommands) withdraw(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetInt64("from")
	amount, _ := cmd.Flags().GetFloat64("amount")
	desc, _ := cmd.Flags().GetString("desc")
	d, err := newDeps(t.serverURL)
	if err != nil {
		return err
	}
	if err := d.tx.Withdraw(cmd.Context(), from, amount, desc); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Withdrawn")
	return nil
}

func (t *txCommands) transfer(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetInt64("from")
	to, _ := cmd.Flags().GetInt64("to")
	amount, _ := cmd.Flags().GetFloat64("amount")
	desc, _ := cmd.Flags().GetString("desc")
	d, err := newDeps(t.serverURL)
	if err != nil {
		return err
	}
	if err := d.tx.Transfer(cmd.Context(), from, to, amount, desc); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Transferred")
	return nil
}

func (t *txCommands) history(cmd *cobra.Command, args []string) error {
	page, _ := cmd.Flags().GetInt("page")
	size, _ := cmd.Flags().GetInt("size")
	d, err := newDeps(t.serverURL)
	if err != nil {
		return err
	}
	out, err := d.tx.History(cmd.Context(), page, size)
	if err != nil {
		return err
	}
	return printJSON(cmd, out)
}

func (t *txCommands) details(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid transaction id %q", args[0])
	}
	d, err := newDeps(t.serverURL)
	if err != nil {
		return err
	}
	out, err := d.tx.Details(cmd.Context(), id)
	if err != nil {
		return err
	}
	return printJSON(cmd, out)
}

func (t *txCommands) targets(cmd *cobra.Command, args []string) error {
	d, err := newDeps(t.serverURL)
	if err != nil {
		return err
	}
	out, err := d.tx.TransferTargets(cmd.Context())
	if err != nil {
		return err
	}
	return printJSON(cmd, out)
}
