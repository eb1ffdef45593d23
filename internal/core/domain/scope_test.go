package domain_test

import (
	"testing"

	"github.com/SscSPs/athena_ledger/internal/apperrors"
	"github.com/SscSPs/athena_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestScope_Validate(t *testing.T) {
	assert.NoError(t, domain.OrganizationScope("org_1").Validate())
	assert.NoError(t, domain.UserScope("usr_1").Validate())
	assert.ErrorIs(t, domain.Scope{}.Validate(), apperrors.ErrValidation)
	assert.ErrorIs(t, domain.Scope{OrganizationID: "org_1", UserID: "usr_1"}.Validate(), apperrors.ErrValidation)
}

func TestScope_Identity(t *testing.T) {
	org := domain.OrganizationScope("org_1")
	usr := domain.UserScope("org_1")

	assert.Equal(t, domain.ScopeOrganization, org.Kind())
	assert.Equal(t, domain.ScopeUser, usr.Kind())
	assert.Equal(t, "org_1", org.OwnerID())
	assert.False(t, org.Equal(usr))
	assert.True(t, org.Equal(domain.OrganizationScope("org_1")))
	assert.Equal(t, "ORGANIZATION:org_1", org.String())
}

func TestAccountType(t *testing.T) {
	for _, at := range domain.AccountTypes {
		assert.True(t, at.IsValid(), at)
	}
	assert.False(t, domain.AccountType("CASH").IsValid())

	assert.True(t, domain.Asset.IncreasesWithDebit())
	assert.True(t, domain.Expense.IncreasesWithDebit())
	assert.False(t, domain.Liability.IncreasesWithDebit())
	assert.False(t, domain.Equity.IncreasesWithDebit())
	assert.False(t, domain.Revenue.IncreasesWithDebit())
}

func TestJournalStatus(t *testing.T) {
	assert.True(t, domain.Draft.IsValid())
	assert.True(t, domain.Posted.IsValid())
	assert.True(t, domain.Void.IsValid())
	assert.False(t, domain.JournalStatus("REVERSED").IsValid())

	e := domain.JournalEntry{Status: domain.Draft}
	assert.True(t, e.IsEditable())
	e.Status = domain.Posted
	assert.False(t, e.IsEditable())
}
