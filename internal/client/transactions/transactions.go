// Package transactions wraps the transaction endpoints: deposits,
// withdrawals, transfers and paginated history. The package holds no state;
// balances live server-side and surface through the account cache.
package transactions

import (
	"context"
	"net/url"
	"strconv"

	"github.com/anudeepmamidala/Banking-System/internal/client/api"
	"github.com/anudeepmamidala/Banking-System/internal/client/validate"
	"github.com/anudeepmamidala/Banking-System/internal/shared/models"
)

type Service struct {
	api *api.Client
}

func NewService(apiClient *api.Client) *Service {
	return &Service{api: apiClient}
}

func (s *Service) Deposit(ctx context.Context, fromAccountID int64, amount float64, description string) error {
	if err := validate.Amount(amount); err != nil {
		return err
	}
	body := map[string]any{"fromAccountId": fromAccountID, "amount": amount, "description": description}
	return s.api.Post(ctx, "/transactions/deposit", body, nil)
}

func (s *Service) Withdraw(ctx context.Context, fromAccountID int64, amount float64, description string) error {
	if err := validate.Amount(amount); err != nil {
		return err
	}
	body := map[string]any{"fromAccountId": fromAccountID, "amount": amount, "description": description}
	return s.api.Post(ctx, "/transactions/withdraw", body, nil)
}

func (s *Service) Transfer(ctx context.Context, fromAccountID, toAccountID int64, amount float64, description string) error {
	if err := validate.Amount(amount); err != nil {
		return err
	}
	if fromAccountID == toAccountID {
		return &validate.Error{Field: "toAccountId", Message: "cannot transfer to the same account"}
	}
	body := map[string]any{
		"fromAccountId": fromAccountID,
		"toAccountId":   toAccountID,
		"amount":        amount,
		"description":   description,
	}
	return s.api.Post(ctx, "/transactions/transfer", body, nil)
}

// History returns one page of the user's transaction history. Page is
// clamped to zero, size to at least one, matching the service's limits.
func (s *Service) History(ctx context.Context, page, size int) (models.TransactionPage, error) {
	if page < 0 {
		page = 0
	}
	if size < 1 {
		size = 1
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	var out models.TransactionPage
	if err := s.api.Get(ctx, "/transactions/history/paginated", q, &out); err != nil {
		return models.TransactionPage{}, err
	}
	return out, nil
}

// Details fetches one transaction by id.
func (s *Service) Details(ctx context.Context, transactionID int64) (models.Transaction, error) {
	var out models.Transaction
	err := s.api.Get(ctx, "/transactions/"+strconv.FormatInt(transactionID, 10), nil, &out)
	if err != nil {
		return models.Transaction{}, err
	}
	return out, nil
}

// TransferTargets lists every account a transfer may be addressed to,
// including other users' accounts.
func (s *Service) TransferTargets(ctx context.Context) ([]models.Account, error) {
	var out []models.Account
	if err := s.api.Get(ctx, "/accounts/all-for-transfer", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
