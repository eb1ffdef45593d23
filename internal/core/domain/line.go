package domain

import (
	"github.com/SscSPs/athena_ledger/internal/apperrors"
	"github.com/SscSPs/athena_ledger/internal/utils/money"
)

// JournalLine is a single debit or credit against one account within an entry.
type JournalLine struct {
	LineID      string       `json:"lineID"`
	EntryID     string       `json:"entryID"`
	AccountID   string       `json:"accountID"`
	Debit       money.Amount `json:"debit"`
	Credit      money.Amount `json:"credit"`
	Description *string      `json:"description,omitempty"`
	LineNo      int          `json:"lineNo"` // Stable order inside the entry, starting at 1
}

// Validate checks the shape of a single line: an account is named, neither
// side is negative, and exactly one side is positive.
func (l JournalLine) Validate() error {
	if l.AccountID == "" {
		return apperrors.Validationf("line %d: account is required", l.LineNo)
	}
	if l.Debit.IsNegative() {
		return apperrors.Validationf("line %d: debit %s is negative", l.LineNo, l.Debit)
	}
	if l.Credit.IsNegative() {
		return apperrors.Validationf("line %d: credit %s is negative", l.LineNo, l.Credit)
	}
	if l.Debit.IsPositive() == l.Credit.IsPositive() {
		return apperrors.Validationf("line %d: exactly one of debit or credit must be positive", l.LineNo)
	}
	return nil
}

// Reversed returns a copy of the line with debit and credit swapped.
func (l JournalLine) Reversed() JournalLine {
	l.Debit, l.Credit = l.Credit, l.Debit
	l.LineID = ""
	l.EntryID = ""
	return l
}

// Totals sums the debit and credit sides of lines.
func Totals(lines []JournalLine) (debit, credit money.Amount) {
	debits := make([]money.Amount, len(lines))
	credits := make([]money.Amount, len(lines))
	for i, l := range lines {
		debits[i], credits[i] = l.Debit, l.Credit
	}
	return money.Sum(debits...), money.Sum(credits...)
}
