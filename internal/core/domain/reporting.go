package domain

import (
	"time"

	"github.com/SscSPs/athena_ledger/internal/utils/money"
)

// TrialBalanceRow represents a single account's line in a trial balance report.
type TrialBalanceRow struct {
	AccountID    string       `json:"accountID"`
	AccountName  string       `json:"accountName"`
	AccountCode  *string      `json:"accountCode,omitempty"`
	AccountType  AccountType  `json:"accountType"`
	CurrencyCode string       `json:"currencyCode"`
	TotalDebit   money.Amount `json:"totalDebit"`
	TotalCredit  money.Amount `json:"totalCredit"`
	Balance      money.Amount `json:"balance"` // Signed by the account type's natural side
}

// CurrencyTotals are the report totals over the accounts of one currency.
type CurrencyTotals struct {
	CurrencyCode string       `json:"currencyCode"`
	TotalDebit   money.Amount `json:"totalDebit"`
	TotalCredit  money.Amount `json:"totalCredit"`
	Balanced     bool         `json:"balanced"`
}

// TrialBalanceReport lists every account in a scope with its posted activity.
// TotalDebit and TotalCredit add rows of every currency; they are a money
// figure only when Currencies has a single element. Balanced holds when every
// currency balances on its own.
type TrialBalanceReport struct {
	Scope       Scope             `json:"scope"`
	AsOf        *time.Time        `json:"asOf,omitempty"`
	GeneratedAt time.Time         `json:"generatedAt"`
	Rows        []TrialBalanceRow `json:"rows"`
	Currencies  []CurrencyTotals  `json:"currencies"` // Sorted by currency code
	TotalDebit  money.Amount      `json:"totalDebit"`
	TotalCredit money.Amount      `json:"totalCredit"`
	Balanced    bool              `json:"balanced"`
}

// AccountActivity is the raw posted debit/credit sum for one account.
type AccountActivity struct {
	AccountID   string
	TotalDebit  money.Amount
	TotalCredit money.Amount
}
