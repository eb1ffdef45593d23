package domain_test

import (
	"testing"

	"github.com/SscSPs/athena_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestIsCurrencyCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"AUD", true},
		{"USD", true},
		{"aud", false},
		{"Aud", false},
		{"AU", false},
		{"AUDD", false},
		{"A1D", false},
		{"", false},
		{" AUD", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.IsCurrencyCode(tt.code))
		})
	}
}
