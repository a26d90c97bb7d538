package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestLedgerEntry_Balance(t *testing.T) {
	testCases := []struct {
		name    string
		initial string
		credit  string
		debit   string
		want    string
	}{
		{name: "first credit", initial: "0", credit: "100", debit: "0", want: "100"},
		{name: "debit after credit", initial: "100", credit: "0", debit: "20", want: "80"},
		{name: "top up mid chain", initial: "80", credit: "500", debit: "0", want: "580"},
		{name: "drain to zero", initial: "20", credit: "0", debit: "20", want: "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			entry := LedgerEntry{Initial: dec(tc.initial), Credit: dec(tc.credit), Debit: dec(tc.debit)}
			assert.True(t, entry.Balance().Equal(dec(tc.want)), "got %s", entry.Balance())
		})
	}
}

func TestNewCreditEntry_EmptyChainStartsAtZero(t *testing.T) {
	entry := NewCreditEntry(nil, "company-1", "sub-1", dec("100"))

	assert.True(t, entry.Initial.IsZero())
	assert.True(t, entry.Balance().Equal(dec("100")))
	require.NotNil(t, entry.SubscriptionID)
	assert.Equal(t, "sub-1", *entry.SubscriptionID)
	assert.Nil(t, entry.CampaignID)
}

func TestNewCreditEntry_ChainsFromPreviousBalance(t *testing.T) {
	prev := LedgerEntry{CompanyID: "company-1", Initial: dec("100"), Debit: dec("20")}

	entry := NewCreditEntry(&prev, "company-1", "sub-2", dec("500"))

	assert.True(t, entry.Initial.Equal(dec("80")))
	assert.True(t, entry.Balance().Equal(dec("580")))
}

func TestNewDebitEntry_ChainsFromPreviousBalance(t *testing.T) {
	prev := LedgerEntry{CompanyID: "company-1", Initial: dec("0"), Credit: dec("100")}

	entry := NewDebitEntry(prev, "campaign-1", dec("20"))

	assert.Equal(t, "company-1", entry.CompanyID)
	assert.True(t, entry.Initial.Equal(dec("100")))
	assert.True(t, entry.Balance().Equal(dec("80")))
	require.NotNil(t, entry.CampaignID)
	assert.Equal(t, "campaign-1", *entry.CampaignID)
	assert.Nil(t, entry.SubscriptionID)
}

func TestLedgerChain_BalancePropagates(t *testing.T) {
	// credit 100, spend 20, credit 500, spend 580
	first := NewCreditEntry(nil, "company-1", "sub-1", dec("100"))
	second := NewDebitEntry(first, "campaign-1", dec("20"))
	third := NewCreditEntry(&second, "company-1", "sub-2", dec("500"))
	fourth := NewDebitEntry(third, "campaign-2", dec("580"))

	assert.True(t, second.Initial.Equal(first.Balance()))
	assert.True(t, third.Initial.Equal(second.Balance()))
	assert.True(t, fourth.Initial.Equal(third.Balance()))
	assert.True(t, fourth.Balance().IsZero())
}
