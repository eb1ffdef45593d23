package domain

import "time"

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// AccountTypes lists every valid account type.
var AccountTypes = []AccountType{Asset, Liability, Equity, Revenue, Expense}

// IsValid reports whether t is one of the five account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// IncreasesWithDebit reports the natural balance side of the type.
// Asset and Expense accounts grow with debits; the rest grow with credits.
func (t AccountType) IncreasesWithDebit() bool {
	return t == Asset || t == Expense
}

// Account represents an entry in a scope's chart of accounts.
type Account struct {
	AccountID    string      `json:"accountID"`
	Scope        Scope       `json:"scope"`
	Name         string      `json:"name"`
	Code         *string     `json:"code,omitempty"` // Unique within the scope when set
	AccountType  AccountType `json:"accountType"`
	CurrencyCode string      `json:"currencyCode"`
	Description  string      `json:"description"`
	IsActive     bool        `json:"isActive"` // Inactive accounts reject new lines but stay readable
	DeletedAt    *time.Time  `json:"-"`
	AuditFields
}
