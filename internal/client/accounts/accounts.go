// Package accounts caches the signed-in user's account list. Every mutator
// is request-then-apply: the cache only changes after the server accepted
// the mutation, so it never diverges into a state the server rejected. A
// failed refresh keeps the previous list (stale but available).
package accounts

import (
	"context"
	"sync"

	"github.com/anudeepmamidala/Banking-System/internal/client/api"
	"github.com/anudeepmamidala/Banking-System/internal/client/validate"
	"github.com/anudeepmamidala/Banking-System/internal/shared/models"
)

// Cache is the account list state holder. Safe for concurrent use; when two
// mutations race, the response that lands last determines the final state.
type Cache struct {
	api *api.Client

	mu       sync.Mutex
	accounts []models.Account
	lastErr  string
}

func NewCache(apiClient *api.Client) *Cache {
	return &Cache{api: apiClient}
}

// Accounts returns a snapshot of the cached list in server order, with
// client-side appends at the end.
func (c *Cache) Accounts() []models.Account {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}

// Err returns the message recorded by the last failed refresh, cleared by
// the next successful one.
func (c *Cache) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Refresh replaces the cached list wholesale with the server's. On failure
// the previous list is kept and the error message recorded for display.
func (c *Cache) Refresh(ctx context.Context) error {
	var list []models.Account
	if err := c.api.Get(ctx, "/accounts", nil, &list); err != nil {
		c.mu.Lock()
		c.lastErr = errMessage(err)
		c.mu.Unlock()
		return err
	}
	c.mu.Lock()
	c.accounts = list
	c.lastErr = ""
	c.mu.Unlock()
	return nil
}

// Create opens a new account and appends the server's record to the cache.
func (c *Cache) Create(ctx context.Context, name string, typ models.AccountType, initialBalance float64) (models.Account, error) {
	if name == "" {
		return models.Account{}, &validate.Error{Field: "name", Message: "account name is required"}
	}
	if !typ.Valid() {
		return models.Account{}, &validate.Error{Field: "type", Message: "unknown account type"}
	}
	if initialBalance < 0 {
		return models.Account{}, &validate.Error{Field: "initialBalance", Message: "initial balance must be zero or positive"}
	}
	body := map[string]any{"name": name, "type": typ, "initialBalance": initialBalance}
	var created models.Account
	if err := c.api.Post(ctx, "/accounts/create", body, &created); err != nil {
		return models.Account{}, err
	}
	c.mu.Lock()
	c.accounts = append(c.accounts, created)
	c.mu.Unlock()
	return created, nil
}

// Remove deletes the account and drops the matching cached entry.
func (c *Cache) Remove(ctx context.Context, accountID int64) error {
	if err := c.api.Delete(ctx, accountPath(accountID)); err != nil {
		return err
	}
	c.mu.Lock()
	kept := c.accounts[:0]
	for _, acc := range c.accounts {
		if acc.ID != accountID {
			kept = append(kept, acc)
		}
	}
	c.accounts = kept
	c.mu.Unlock()
	return nil
}

// Update sends a partial update and replaces the cached entry in place with
// the server's returned representation, not a local merge.
func (c *Cache) Update(ctx context.Context, accountID int64, patch models.AccountPatch) (models.Account, error) {
	var updated models.Account
	if err := c.api.Put(ctx, accountPath(accountID), patch, &updated); err != nil {
		return models.Account{}, err
	}
	c.mu.Lock()
	for i, acc := range c.accounts {
		if acc.ID == accountID {
			c.accounts[i] = updated
			break
		}
	}
	c.mu.Unlock()
	return updated, nil
}

// Get fetches a single account straight from the server, bypassing the
// cache.
func (c *Cache) Get(ctx context.Context, accountID int64) (models.Account, error) {
	var acc models.Account
	if err := c.api.Get(ctx, accountPath(accountID), nil, &acc); err != nil {
		return models.Account{}, err
	}
	return acc, nil
}
