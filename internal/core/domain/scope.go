package domain

import (
	"fmt"

	"github.com/SscSPs/athena_ledger/internal/apperrors"
)

// ScopeKind identifies which kind of owner a Scope refers to.
type ScopeKind string

const (
	ScopeOrganization ScopeKind = "ORGANIZATION"
	ScopeUser         ScopeKind = "USER"
)

// Scope is the owner of a set of accounts and journal entries: either an
// organization or an individual user, never both and never neither.
type Scope struct {
	OrganizationID string `json:"organizationID,omitempty"`
	UserID         string `json:"userID,omitempty"`
}

// OrganizationScope returns the scope owned by an organization.
func OrganizationScope(organizationID string) Scope {
	return Scope{OrganizationID: organizationID}
}

// UserScope returns the scope owned by an individual user.
func UserScope(userID string) Scope {
	return Scope{UserID: userID}
}

// Validate checks that exactly one owner is set.
func (s Scope) Validate() error {
	switch {
	case s.OrganizationID != "" && s.UserID != "":
		return apperrors.Validationf("scope cannot belong to both an organization and a user")
	case s.OrganizationID == "" && s.UserID == "":
		return apperrors.Validationf("scope must belong to an organization or a user")
	}
	return nil
}

// Kind reports whether the scope is an organization or a user scope.
func (s Scope) Kind() ScopeKind {
	if s.OrganizationID != "" {
		return ScopeOrganization
	}
	return ScopeUser
}

// OwnerID returns whichever id owns the scope.
func (s Scope) OwnerID() string {
	if s.OrganizationID != "" {
		return s.OrganizationID
	}
	return s.UserID
}

// Equal reports whether both scopes name the same owner.
func (s Scope) Equal(other Scope) bool {
	return s.OrganizationID == other.OrganizationID && s.UserID == other.UserID
}

func (s Scope) String() string {
	return fmt.Sprintf("%s:%s", s.Kind(), s.OwnerID())
}
