package dto

import (
	"time"

	"github.com/SscSPs/athena_ledger/internal/core/domain"
	"github.com/SscSPs/athena_ledger/internal/utils/money"
)

// TrialBalanceParams defines query parameters for the trial balance.
type TrialBalanceParams struct {
	AsOf string `form:"asOf" binding:"omitempty,datetime=2006-01-02"`
}

// TrialBalanceRowResponse is one account's line in the trial balance.
type TrialBalanceRowResponse struct {
	AccountID    string             `json:"accountID"`
	AccountName  string             `json:"accountName"`
	AccountCode  *string            `json:"accountCode,omitempty"`
	AccountType  domain.AccountType `json:"accountType"`
	CurrencyCode string             `json:"currencyCode"`
	TotalDebit   money.Amount       `json:"totalDebit" swaggertype:"string"`
	TotalCredit  money.Amount       `json:"totalCredit" swaggertype:"string"`
	Balance      money.Amount       `json:"balance" swaggertype:"string"`
}

// CurrencyTotalsResponse holds the totals of the accounts in one currency.
type CurrencyTotalsResponse struct {
	CurrencyCode string       `json:"currencyCode"`
	TotalDebit   money.Amount `json:"totalDebit" swaggertype:"string"`
	TotalCredit  money.Amount `json:"totalCredit" swaggertype:"string"`
	Balanced     bool         `json:"balanced"`
}

// TrialBalanceResponse is the trial balance report returned over HTTP.
type TrialBalanceResponse struct {
	AsOf        *time.Time                `json:"asOf,omitempty"`
	GeneratedAt time.Time                 `json:"generatedAt"`
	Rows        []TrialBalanceRowResponse `json:"rows"`
	Currencies  []CurrencyTotalsResponse  `json:"currencies"`
	TotalDebit  money.Amount              `json:"totalDebit" swaggertype:"string"`
	TotalCredit money.Amount              `json:"totalCredit" swaggertype:"string"`
	Balanced    bool                      `json:"balanced"`
}

// ToTrialBalanceResponse converts a domain report to its DTO.
func ToTrialBalanceResponse(r *domain.TrialBalanceReport) TrialBalanceResponse {
	rows := make([]TrialBalanceRowResponse, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = TrialBalanceRowResponse(row)
	}
	currencies := make([]CurrencyTotalsResponse, len(r.Currencies))
	for i, totals := range r.Currencies {
		currencies[i] = CurrencyTotalsResponse(totals)
	}
	return TrialBalanceResponse{
		AsOf:        r.AsOf,
		GeneratedAt: r.GeneratedAt,
		Rows:        rows,
		Currencies:  currencies,
		TotalDebit:  r.TotalDebit,
		TotalCredit: r.TotalCredit,
		Balanced:    r.Balanced,
	}
}
