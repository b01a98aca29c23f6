package domain_test

import (
	"testing"

	"github.com/SscSPs/settlement_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeMetadata_KeepsUnrelatedKeys(t *testing.T) {
	original := map[string]any{"gateway": "razorpay", "note": "first"}
	merged := domain.MergeMetadata(original, map[string]any{"note": "second", "currencyConversion": "x"})

	assert.Equal(t, "razorpay", merged["gateway"])
	assert.Equal(t, "second", merged["note"])
	assert.Equal(t, "x", merged["currencyConversion"])
	assert.Equal(t, "first", original["note"], "input map must not be mutated")
}

func TestAppendMetadataEntry(t *testing.T) {
	md := map[string]any{"gateway": "razorpay"}

	md = domain.AppendMetadataEntry(md, domain.MetadataKeyExchangeGainLoss, map[string]any{"n": 1})
	md = domain.AppendMetadataEntry(md, domain.MetadataKeyExchangeGainLoss, map[string]any{"n": 2})

	history, ok := md[domain.MetadataKeyExchangeGainLoss].([]any)
	require.True(t, ok)
	require.Len(t, history, 2)
	assert.Equal(t, map[string]any{"n": 1}, history[0])
	assert.Equal(t, map[string]any{"n": 2}, history[1])
	assert.Equal(t, "razorpay", md["gateway"])
}

func TestAppendMetadataEntry_PromotesScalar(t *testing.T) {
	md := domain.AppendMetadataEntry(map[string]any{"k": "legacy"}, "k", map[string]any{"n": 1})
	history := md["k"].([]any)
	require.Len(t, history, 2)
	assert.Equal(t, "legacy", history[0])
}

func TestPaymentTransaction_IsConverted(t *testing.T) {
	code := "INR"
	empty := ""
	rate := decimal.NewFromInt(83)

	assert.False(t, domain.PaymentTransaction{}.IsConverted())
	assert.False(t, domain.PaymentTransaction{SettlementCurrencyCode: &empty, ExchangeRate: &rate}.IsConverted())
	assert.False(t, domain.PaymentTransaction{SettlementCurrencyCode: &code}.IsConverted())
	assert.True(t, domain.PaymentTransaction{SettlementCurrencyCode: &code, ExchangeRate: &rate}.IsConverted())
}

func TestNewGainLoss(t *testing.T) {
	amount, pct, isGain := domain.NewGainLoss(decimal.NewFromInt(83000), decimal.NewFromInt(84000))
	assert.True(t, decimal.NewFromInt(1000).Equal(amount))
	assert.True(t, isGain)
	pctFloat, _ := pct.Float64()
	assert.InDelta(t, 1.2048192771, pctFloat, 1e-9)

	amount, pct, isGain = domain.NewGainLoss(decimal.Zero, decimal.Zero)
	assert.True(t, amount.IsZero())
	assert.True(t, pct.IsZero())
	assert.False(t, isGain)
}
