package models

import "time"

// AccountType mirrors the account_type column's CHECK constraint.
type AccountType string

// Account is a row of ledger_accounts. Exactly one of OrganizationID and UserID is set.
type Account struct {
	AccountID      string      `db:"account_id"`
	OrganizationID *string     `db:"organization_id"`
	UserID         *string     `db:"user_id"`
	Name           string      `db:"name"`
	Code           *string     `db:"code"`
	AccountType    AccountType `db:"account_type"`
	CurrencyCode   string      `db:"currency_code"`
	Description    string      `db:"description"`
	IsActive       bool        `db:"is_active"`
	DeletedAt      *time.Time  `db:"deleted_at"`
	AuditFields
}
