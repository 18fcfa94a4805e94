package recon

import (
	"time"

	"github.com/shopspring/decimal"

	"tradelog/internal/models"
)

var (
	testExpiry = time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC)
	testT0     = time.Date(2026, 8, 3, 14, 30, 0, 0, time.UTC)
)

func dec(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func decPtr(s string) *decimal.Decimal {
	v := dec(s)
	return &v
}

func strPtr(s string) *string {
	return &s
}

func timePtr(t time.Time) *time.Time {
	return &t
}

// optionFill builds a call fill at the given strike; indicator may be empty.
func optionFill(id uint64, side, qty, price, strike, indicator string, at time.Time) models.Execution {
	f := models.Execution{
		ID:           id,
		Underlying:   "SPY",
		SecurityType: models.SecurityOption,
		Side:         side,
		Quantity:     dec(qty),
		Price:        dec(price),
		Strike:       decPtr(strike),
		OptionType:   strPtr("C"),
		Expiration:   timePtr(testExpiry),
		Multiplier:   100,
		ExecutedAt:   at,
	}
	if indicator != "" {
		f.OpenClose = strPtr(indicator)
	}
	return f
}

func stockFill(id uint64, side, qty, price string, at time.Time) models.Execution {
	return models.Execution{
		ID:           id,
		Underlying:   "AAPL",
		SecurityType: models.SecurityStock,
		Side:         side,
		Quantity:     dec(qty),
		Price:        dec(price),
		Multiplier:   1,
		ExecutedAt:   at,
	}
}

func withCommission(f models.Execution, commission string) models.Execution {
	f.Commission = dec(commission)
	return f
}

func split(symbol string, date time.Time, from, to string) models.StockSplit {
	fromDec := dec(from)
	toDec := dec(to)
	return models.StockSplit{
		Symbol:           symbol,
		SplitDate:        date,
		RatioFrom:        fromDec,
		RatioTo:          toDec,
		AdjustmentFactor: fromDec.Div(toDec),
		PriceFactor:      toDec.Div(fromDec),
	}
}
