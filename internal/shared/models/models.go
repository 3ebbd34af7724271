package models

import "time"

// User is the authenticated actor's profile as returned by /auth/profile.
// A partial profile (email plus placeholder name) is synthesized locally at
// login time and replaced when the full fetch succeeds.
type User struct {
	ID          int64     `json:"id,omitempty"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

type AccountType string

const (
	AccountTypeSavings    AccountType = "SAVINGS"
	AccountTypeChecking   AccountType = "CHECKING"
	AccountTypeInvestment AccountType = "INVESTMENT"
)

// AccountTypes lists the server-accepted account types.
var AccountTypes = []AccountType{AccountTypeSavings, AccountTypeChecking, AccountTypeInvestment}

func (t AccountType) Valid() bool {
	for _, known := range AccountTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Account is one financial account owned by the signed-in user.
type Account struct {
	ID      int64       `json:"id"`
	Name    string      `json:"name"`
	Type    AccountType `json:"type"`
	Balance float64     `json:"balance"`
}

// AccountPatch is a partial account update; nil fields are omitted from the
// request body and left untouched by the server.
type AccountPatch struct {
	Name *string      `json:"name,omitempty"`
	Type *AccountType `json:"type,omitempty"`
}

type Transaction struct {
	ID          int64     `json:"id"`
	AccountID   int64     `json:"accountId,omitempty"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// TransactionPage is the paging envelope of /transactions/history/paginated.
type TransactionPage struct {
	Content    []Transaction `json:"content"`
	TotalPages int           `json:"totalPages"`
	HasNext    bool          `json:"hasNext"`
}

type DashboardSummary struct {
	TotalIncome       float64 `json:"totalIncome"`
	TotalExpenses     float64 `json:"totalExpenses"`
	TotalTransactions int     `json:"totalTransactions"`
}

type CategorySpending struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type MonthlySummary struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

type AccountSummary struct {
	ID               int64       `json:"id"`
	Name             string      `json:"name"`
	Type             AccountType `json:"type"`
	Balance          float64     `json:"balance"`
	TransactionCount int         `json:"transactionCount"`
}

type AuditEntry struct {
	ID         int64     `json:"id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entityType"`
	Details    string    `json:"details"`
	CreatedAt  time.Time `json:"createdAt"`
}
