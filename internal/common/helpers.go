package common

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	SOLDecimals = 9 // SOL has 9 decimals (lamports)

	// maxWholeDigits is the most integer digits a SOL amount can have and still fit uint64 lamports
	maxWholeDigits = 20 - SOLDecimals
)

// LamportsToSOL converts lamports to a SOL amount without float precision loss
func LamportsToSOL(lamports uint64) decimal.Decimal {
	return decimal.NewFromUint64(lamports).Shift(-SOLDecimals)
}

// SOLToLamports converts a SOL amount to lamports.
// Amounts finer than one lamport or beyond uint64 are rejected, not truncated.
func SOLToLamports(sol decimal.Decimal) (uint64, error) {
	if sol.IsNegative() {
		return 0, fmt.Errorf("amount must not be negative")
	}
	// Exponent notation ("1e20000000") is bounded before any big.Int is expanded
	if int64(sol.NumDigits())+int64(sol.Exponent()) > maxWholeDigits {
		return 0, fmt.Errorf("amount is too large")
	}
	lamports := sol.Shift(SOLDecimals)
	if !lamports.IsInteger() {
		return 0, fmt.Errorf("amount has more than %d decimal places", SOLDecimals)
	}
	n := lamports.BigInt()
	if !n.IsUint64() {
		return 0, fmt.Errorf("amount is too large")
	}
	return n.Uint64(), nil
}

// ParseAmount parses a positive decimal SOL amount, e.g. "0.25"
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("amount is required")
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("amount %q is not a decimal number", s)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("amount must be greater than zero")
	}

	// Reject precision the ledger cannot represent
	if _, err := SOLToLamports(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// FormatSOL renders a SOL amount with trailing zeros trimmed, e.g. "0.5"
func FormatSOL(sol decimal.Decimal) string {
	return sol.String()
}
