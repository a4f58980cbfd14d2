package identity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompany(t *testing.T) {
	company, err := NewCompany("Al Baraka Trading Company", "100000000000003")
	require.NoError(t, err)

	assert.Equal(t, "AED", company.Currency)
	assert.True(t, company.VATRate.Equal(decimal.NewFromInt(5)))
	assert.True(t, company.VATEnabled)

	_, err = NewCompany("  ", "")
	assert.Error(t, err)
}

func TestCompany_VATSettings(t *testing.T) {
	company, err := NewCompany("Test Co", "")
	require.NoError(t, err)

	t.Run("rate out of range", func(t *testing.T) {
		assert.Error(t, company.UpdateVATSettings(decimal.NewFromInt(101), true))
		assert.Error(t, company.UpdateVATSettings(decimal.NewFromInt(-1), true))
	})

	t.Run("disabled VAT yields zero effective rate", func(t *testing.T) {
		require.NoError(t, company.UpdateVATSettings(decimal.NewFromInt(5), false))
		assert.True(t, company.EffectiveVATRate().IsZero())
	})

	t.Run("enabled VAT uses configured rate", func(t *testing.T) {
		require.NoError(t, company.UpdateVATSettings(decimal.RequireFromString("7.5"), true))
		assert.True(t, company.EffectiveVATRate().Equal(decimal.RequireFromString("7.5")))
	})
}
