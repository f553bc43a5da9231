// Package position provides risk-based forex position sizing.
package position

import (
	"fmt"
	"math"

	"github.com/betrocker/perfecttrade/internal/errors"
)

// pipValue is the USD value of one pip for one standard lot. Account
// currency is assumed USD for every supported pair; the pair argument is
// kept so per-pair values can be introduced without changing callers.
func PipValue(pair string) float64 {
	_ = pair
	return 10
}

// LotSize returns the standard-lot position size that risks riskPct percent
// of the account balance over stopPips pips.
func LotSize(balance, riskPct float64, stopPips int, pair string) (float64, error) {
	if balance <= 0 {
		return 0, errors.NewValidationError("account_balance", balance, "must be greater than zero")
	}
	if riskPct <= 0 || riskPct > 100 {
		return 0, errors.NewValidationError("risk_percentage", riskPct, "must be in (0, 100]")
	}
	if stopPips <= 0 {
		return 0, errors.NewValidationError("stop_loss_pips", stopPips, "must be greater than zero")
	}
	if pair == "" {
		return 0, errors.NewValidationError("currency_pair", pair, "must not be empty")
	}

	riskAmount := balance * riskPct / 100
	return riskAmount / (float64(stopPips) * PipValue(pair)), nil
}

// FormatLots renders a standard-lot size the way the journal displays it:
// micro lots below 0.01, mini lots below 0.1, fractional lots below 1,
// standard lots otherwise.
func FormatLots(standardLots float64) string {
	switch {
	case standardLots < 0.01:
		microLots := math.Round(standardLots * 1000)
		return fmt.Sprintf("%.0f micro lots (%.4f lots)", microLots, standardLots)
	case standardLots < 0.1:
		return fmt.Sprintf("%.2f mini lots (%.3f lots)", standardLots*100, standardLots)
	case standardLots < 1:
		return fmt.Sprintf("%.3f lots", standardLots)
	default:
		return fmt.Sprintf("%.2f lots", standardLots)
	}
}

// Describe combines LotSize and FormatLots for display surfaces.
func Describe(balance, riskPct float64, stopPips int, pair string) (string, error) {
	lots, err := LotSize(balance, riskPct, stopPips, pair)
	if err != nil {
		return "", err
	}
	return FormatLots(lots), nil
}
