package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/anudeepmamidala/Banking-System/internal/shared/models"
)

type accountCommands struct {
	serverURL *string
}

func newAccountsCmd(serverURL *string) *cobra.Command {
	a := &accountCommands{serverURL: serverURL}
	cmd := &cobra.Command{Use: "accounts", Short: "Manage accounts"}

	cmd.AddCommand(&cobra.Command{Use: "list", Short: "List accounts", RunE: a.list})

	create := &cobra.Command{Use: "create", Short: "Open a new account", RunE: a.create}
	create.Flags().String("name", "", "account name")
	create.Flags().String("type", string(models.AccountTypeChecking), "account type (SAVINGS, CHECKING, INVESTMENT)")
	create.Flags().Float64("balance", 0, "initial balance")
	cmd.AddCommand(create)

	update := &cobra.Command{Use: "update <id>", Short: "Rename or retype an account", Args: cobra.ExactArgs(1), RunE: a.update}
	update.Flags().String("name", "", "new account name")
	update.Flags().String("type", "", "new account type")
	cmd.AddCommand(update)

	cmd.AddCommand(&cobra.Command{Use: "delete <id>", Short: "Delete an account", Args: cobra.ExactArgs(1), RunE: a.delete})
	cmd.AddCommand(&cobra.Command{Use: "get <id>", Short: "Show one account", Args: cobra.ExactArgs(1), RunE: a.get})
	return cmd
}

func (a *accountCommands) list(cmd *cobra.Command, args []string) error {
	d, err := newDeps(a.serverURL)
	if err != nil {
		return err
	}
	if err := d.accounts.Refresh(cmd.Context()); err != nil {
		return err
	}
	return printJSON(cmd, d.accounts.Accounts())
}

func (a *accountCommands) create(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	typ, _ := cmd.Flags().GetString("type")
	balance, _ := cmd.Flags().GetFloat64("balance")
	d, err := newDeps(a.serverURL)
	if err != nil {
		return err
	}
	created, err := d.accounts.Create(cmd.Context(), name, models.AccountType(typ), balance)
	if err != nil {
		return err
	}
	return printJSON(cmd, created)
}

func (a *accountCommands) update(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	var patch models.AccountPatch
	if name, _ := cmd.Flags().GetString("name"); name != "" {
		patch.Name = &name
	}
	if typ, _ := cmd.Flags().GetString("type"); typ != "" {
		t := models.AccountType(typ)
		patch.Type = &t
	}
	d, err := newDeps(a.serverURL)
	if err != nil {
		return err
	}
	updated, err := d.accounts.Update(cmd.Context(), id, patch)
	if err != nil {
		return err
	}
	return printJSON(cmd, updated)
}

func (a *accountCommands) delete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	d, err := newDeps(a.serverURL)
	if err != nil {
		return err
	}
	if err := d.accounts.Remove(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Deleted")
	return nil
}

func (a *accountCommands) get(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	d, err := newDeps(a.serverURL)
	if err != nil {
		return err
	}
	acc, err := d.accounts.Get(cmd.Context(), id)
	if err != nil {
		return err
	}
	return printJSON(cmd, acc)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid account id %q", arg)
	}
	return id, nil
}
