package service

import (
	"sync"
	"testing"

	"go-warehouse-admin/internal/apperr"
	"go-warehouse-admin/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStaticCurrency(rate int64) CurrencyService {
	return NewCurrencyService(StaticRateSource{Rate: decimal.NewFromInt(rate)})
}

func TestConvertUSDToIQD(t *testing.T) {
	currency := newStaticCurrency(1460)

	conv, err := currency.Convert(model.CurrencyUSD, model.CurrencyIQD, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, conv.ConvertedAmount.Equal(decimal.NewFromInt(146000)),
		"got %s", conv.ConvertedAmount)
	assert.True(t, conv.ExchangeRate.Equal(decimal.NewFromInt(1460)))
}

func TestConvertIQDToUSD(t *testing.T) {
	currency := newStaticCurrency(1460)

	conv, err := currency.Convert(model.CurrencyIQD, model.CurrencyUSD, decimal.NewFromInt(146000))
	require.NoError(t, err)
	assert.True(t, conv.ConvertedAmount.Equal(decimal.NewFromInt(100)),
		"got %s", conv.ConvertedAmount)
}

func TestConvertSameCurrency(t *testing.T) {
	currency := newStaticCurrency(1460)

	conv, err := currency.Convert(model.CurrencyIQD, model.CurrencyIQD, decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.True(t, conv.ConvertedAmount.Equal(decimal.NewFromInt(500)))
	assert.True(t, conv.ExchangeRate.Equal(decimal.NewFromInt(1)))
}

func TestConvertRoundsIQDToWholeDinars(t *testing.T) {
	currency := newStaticCurrency(1460)

	conv, err := currency.Convert(model.CurrencyUSD, model.CurrencyIQD, decimal.NewFromFloat(1.999))
	require.NoError(t, err)
	assert.True(t, conv.ConvertedAmount.Equal(decimal.NewFromInt(2919)),
		"got %s", conv.ConvertedAmount)
}

func TestConvertUnsupportedCurrency(t *testing.T) {
	currency := newStaticCurrency(1460)

	_, err := currency.Convert("EUR", model.CurrencyIQD, decimal.NewFromInt(10))
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestToIQDNormalization(t *testing.T) {
	currency := newStaticCurrency(1500)

	assert.True(t, currency.ToIQD(decimal.NewFromInt(10), model.CurrencyUSD).
		Equal(decimal.NewFromInt(15000)))
	assert.True(t, currency.ToIQD(decimal.NewFromInt(10), model.CurrencyIQD).
		Equal(decimal.NewFromInt(10)))
}

func TestAPIRateSourceFallsBackWithoutKey(t *testing.T) {
	source := &APIRateSource{}
	assert.True(t, source.USDToIQD().Equal(FallbackUSDToIQD))
}

// One rate source is shared by the currency and dashboard handlers, which run
// concurrently; reads must never observe a half-written cache entry.
func TestAPIRateSourceSharedAcrossGoroutines(t *testing.T) {
	source := &APIRateSource{}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				rate := source.USDToIQD()
				assert.True(t, rate.Equal(FallbackUSDToIQD), "rate %s", rate)
			}
		}()
	}
	wg.Wait()
}
