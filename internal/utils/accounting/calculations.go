package accounting

import (
	"fmt"

	"github.com/SscSPs/athena_ledger/internal/core/domain"
	"github.com/SscSPs/athena_ledger/internal/utils/money"
)

// NaturalBalance signs an account's posted activity by its normal side.
//
//	ASSET/EXPENSE             -> debit - credit
//	LIABILITY/EQUITY/REVENUE  -> credit - debit
func NaturalBalance(accountType domain.AccountType, debit, credit money.Amount) (money.Amount, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return debit.Sub(credit), nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return credit.Sub(debit), nil
	default:
		return money.Zero(), fmt.Errorf("unknown account type '%s'", accountType)
	}
}

// CheckBalanced returns the debit and credit totals of lines and whether they
// are exactly equal.
func CheckBalanced(lines []domain.JournalLine) (debit, credit money.Amount, balanced bool) {
	debit, credit = domain.Totals(lines)
	return debit, credit, debit.Equal(credit)
}
