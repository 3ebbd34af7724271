package cmd

import (
	"github.com/spf13/cobra"
)

func newAuditCmd(serverURL *string) *cobra.Command {
	cmd := &cobra.Command{Use: "audit", Short: "Audit trail"}
	list := &cobra.Command{
		Use:   "list",
		Short: "List audit log entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, _ := cmd.Flags().GetInt("page")
			size, _ := cmd.Flags().GetInt("size")
			d, err := newDeps(serverURL)
			if err != nil {
				return err
			}
			out, err := d.audit.Logs(cmd.Context(), page, size)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	list.Flags().Int("page", 0, "page number")
	list.Flags().Int("size", 20, "page size")
	cmd.AddCommand(list)
	return cmd
}
