package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/anudeepmamidala/Banking-System/internal/client/validate"
)

type authCommands struct {
	serverURL *string
}

func newAuthCmd(serverURL *string) *cobra.Command {
	a := &authCommands{serverURL: serverURL}
	cmd := &cobra.Command{Use: "auth", Short: "Authentication and profile commands"}
	cmd.AddCommand(&cobra.Command{Use: "register", Short: "Register new user", RunE: a.register})
	cmd.AddCommand(&cobra.Command{Use: "login", Short: "Login and store tokens", RunE: a.login})
	cmd.AddCommand(&cobra.Command{Use: "logout", Short: "Clear stored session", RunE: a.logout})
	cmd.AddCommand(&cobra.Command{Use: "whoami", Short: "Show current profile", RunE: a.whoami})
	cmd.AddCommand(&cobra.Command{Use: "update-profile <name>", Short: "Change display name", Args: cobra.ExactArgs(1), RunE: a.updateProfile})
	cmd.AddCommand(&cobra.Command{Use: "change-password", Short: "Change password", RunE: a.changePassword})
	return cmd
}

func (a *authCommands) register(cmd *cobra.Command, args []string) error {
	email, err := promptLine(cmd, "Email: ")
	if err != nil {
		return err
	}
	if err := validate.Email(email); err != nil {
		return err
	}
	name, err := promptLine(cmd, "Display name: ")
	if err != nil {
		return err
	}
	if err := validate.DisplayName(name); err != nil {
		return err
	}
	password, err := promptPassword(cmd, "Password: ")
	if err != nil {
		return err
	}
	if err := validate.Password(string(password)); err != nil {
		return err
	}
	d, err := newDeps(a.serverURL)
	if err != nil {
		return err
	}
	if err := d.session.Register(cmd.Context(), email, string(password), name); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Registered")
	return nil
}

func (a *authCommands) login(cmd *cobra.Command, args []string) error {
	email, err := promptLine(cmd, "Email: ")
	if err != nil {
		return err
	}
	if err := validate.Email(email); err != nil {
		return err
	}
	password, err := promptPassword(cmd, "Password: ")
	if err != nil {
		return err
	}
	d, err := newDeps(a.serverURL)
	if err != nil {
		return err
	}
	if err := d.session.Login(cmd.Context(), email, string(password)); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Logged in")
	// best-effort profile hydration; a failure degrades to the partial
	// profile saved at login
	d.session.Hydrate(cmd.Context())
	return nil
}

func (a *authCommands) logout(cmd *cobra.Command, args []string) error {
	d, err := newDeps(a.serverURL)
	if err != nil {
		return err
	}
	d.session.Logout()
	fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
	return nil
}

func (a *authCommands) whoami(cmd *cobra.Command, args []string) error {
	d, err := newDeps(a.serverURL)
	if err != nil {
		return err
	}
	d.session.Hydrate(cmd.Context())
	user, ok := d.session.User()
	if !ok {
		return fmt.Errorf("not logged in")
	}
	if err := printJSON(cmd, user); err != nil {
		return err
	}
	if exp, ok := d.session.TokenExpiry(); ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Token expires:", exp.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func (a *authCommands) updateProfile(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := validate.DisplayName(name); err != nil {
		return err
	}
	d, err := newDeps(a.serverURL)
	if err != nil {
		return err
	}
	user, err := d.session.UpdateProfile(cmd.Context(), name)
	if err != nil {
		return err
	}
	return printJSON(cmd, user)
}

func (a *authCommands) changePassword(cmd *cobra.Command, args []string) error {
	oldPassword, err := promptPassword(cmd, "Current password: ")
	if err != nil {
		return err
	}
	newPassword, err := promptPassword(cmd, "New password: ")
	if err != nil {
		return err
	}
	if err := validate.Password(string(newPassword)); err != nil {
		return err
	}
	confirm, err := promptPassword(cmd, "Repeat new password: ")
	if err != nil {
		return err
	}
	if string(confirm) != string(newPassword) {
		return &validate.Error{Field: "password", Message: "passwords do not match"}
	}
	d, err := newDeps(a.serverURL)
	if err != nil {
		return err
	}
	if err := d.session.ChangePassword(cmd.Context(), string(oldPassword), string(newPassword)); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Password changed")
	return nil
}

func promptLine(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(cmd *cobra.Command, prompt string) ([]byte, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(cmd.OutOrStdout())
	return pass, err
}
