package service

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"go-warehouse-admin/internal/apperr"
	"go-warehouse-admin/internal/model"

	"github.com/shopspring/decimal"
)

// FallbackUSDToIQD is used when the external rate source is unavailable.
var FallbackUSDToIQD = decimal.NewFromInt(1460)

// RateSource supplies the USD->IQD exchange rate.
type RateSource interface {
	USDToIQD() decimal.Decimal
}

// StaticRateSource always returns a fixed rate. Used in demo mode and tests.
type StaticRateSource struct {
	Rate decimal.Decimal
}

func (s StaticRateSource) USDToIQD() decimal.Decimal { return s.Rate }

// APIRateSource fetches the live rate from currencyapi.com, caching it for
// an hour and falling back to the static rate on any failure. One instance
// is shared by every request handler, so the cache is mutex-guarded.
type APIRateSource struct {
	client *http.Client
	apiKey string

	mu        sync.Mutex
	cached    decimal.Decimal
	fetchedAt time.Time
}

func NewAPIRateSource() *APIRateSource {
	return &APIRateSource{
		client: &http.Client{Timeout: 10 * time.Second},
		apiKey: os.Getenv("CURRENCY_API_KEY"),
	}
}

func (s *APIRateSource) USDToIQD() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cached.IsZero() && time.Since(s.fetchedAt) < time.Hour {
		return s.cached
	}
	rate := s.fetch()
	s.cached = rate
	s.fetchedAt = time.Now()
	return rate
}

func (s *APIRateSource) fetch() decimal.Decimal {
	if s.apiKey == "" {
		return FallbackUSDToIQD
	}

	url := fmt.Sprintf("https://api.currencyapi.com/v3/latest?apikey=%s&currencies=IQD&base_currency=USD", s.apiKey)
	resp, err := s.client.Get(url)
	if err != nil {
		return FallbackUSDToIQD
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return FallbackUSDToIQD
	}

	var body struct {
		Data struct {
			IQD struct {
				Value float64 `json:"value"`
			} `json:"IQD"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Data.IQD.Value <= 0 {
		return FallbackUSDToIQD
	}
	return decimal.NewFromFloat(body.Data.IQD.Value)
}

// Conversion is the result of one currency conversion.
type Conversion struct {
	From            model.Currency  `json:"from"`
	To              model.Currency  `json:"to"`
	Amount          decimal.Decimal `json:"amount"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
}

// CurrencyService converts between the two supported currencies.
type CurrencyService interface {
	Convert(from, to model.Currency, amount decimal.Decimal) (*Conversion, error)
	ToIQD(amount decimal.Decimal, currency model.Currency) decimal.Decimal
}

type currencyService struct {
	rates RateSource
}

func NewCurrencyService(rates RateSource) CurrencyService {
	return &currencyService{rates: rates}
}

func (s *currencyService) Convert(from, to model.Currency, amount decimal.Decimal) (*Conversion, error) {
	if !supportedCurrency(from) || !supportedCurrency(to) {
		return nil, apperr.Validation("supported currencies: USD, IQD")
	}

	rate := s.rates.USDToIQD()
	conv := &Conversion{From: from, To: to, Amount: amount}

	switch {
	case from == to:
		conv.ConvertedAmount = amount
		conv.ExchangeRate = decimal.NewFromInt(1)
	case from == model.CurrencyUSD:
		conv.ConvertedAmount = amount.Mul(rate).Round(0)
		conv.ExchangeRate = rate
	default:
		conv.ConvertedAmount = amount.Div(rate).Round(2)
		conv.ExchangeRate = decimal.NewFromInt(1).Div(rate)
	}
	return conv, nil
}

// ToIQD normalizes an amount into IQD for aggregate stats.
func (s *currencyService) ToIQD(amount decimal.Decimal, currency model.Currency) decimal.Decimal {
	if currency == model.CurrencyUSD {
		return amount.Mul(s.rates.USDToIQD())
	}
	return amount
}

func supportedCurrency(c model.Currency) bool {
	return c == model.CurrencyIQD || c == model.CurrencyUSD
}
