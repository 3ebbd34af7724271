package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/anudeepmamidala/Banking-System/internal/client/accounts"
	"github.com/anudeepmamidala/Banking-System/internal/client/analytics"
	"github.com/anudeepmamidala/Banking-System/internal/client/api"
	"github.com/anudeepmamidala/Banking-System/internal/client/audit"
	"github.com/anudeepmamidala/Banking-System/internal/client/config"
	"github.com/anudeepmamidala/Banking-System/internal/client/session"
	"github.com/anudeepmamidala/Banking-System/internal/client/storage"
	"github.com/anudeepmamidala/Banking-System/internal/client/transactions"
)

func NewRootCmd(version, buildDate string) *cobra.Command {
	var serverURL string
	root := &cobra.Command{
		Use:   "bankctl",
		Short: "Banking system CLI",
	}
	root.PersistentFlags().StringVar(&serverURL, "server", "", "API base URL (overrides BANKING_SERVER_URL)")

	root.AddCommand(newVersionCmd(version, buildDate))
	root.AddCommand(newAuthCmd(&serverURL))
	root.AddCommand(newAccountsCmd(&serverURL))
	root.AddCommand(newTxCmd(&serverURL))
	root.AddCommand(newAnalyticsCmd(&serverURL))
	root.AddCommand(newAuditCmd(&serverURL))
	return root
}

// deps wires the client stack for one command invocation: config, request
// wrapper, persistent store and the state holders on top.
type deps struct {
	api      *api.Client
	store    *storage.Store
	session  *session.Manager
	accounts *accounts.Cache
	tx       *transactions.Service
	stats    *analytics.Service
	audit    *audit.Service
}

func newDeps(serverURL *string) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	base := cfg.ServerURL
	if serverURL != nil && *serverURL != "" {
		base = *serverURL
	}
	apiClient := api.New(base)
	store := storage.New(cfg.StateDir)
	return &deps{
		api:      apiClient,
		store:    store,
		session:  session.NewManager(apiClient, store, nil),
		accounts: accounts.NewCache(apiClient),
		tx:       transactions.NewService(apiClient),
		stats:    analytics.NewService(apiClient),
		audit:    audit.NewService(apiClient),
	}, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
