package rpc

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// weiDigits is the number of fractional digits in an ether amount:
// 10^18 wei = 1 ether, so an exact ether string always carries 18 decimals.
const weiDigits = 18

// ParseHexUint64 converts a hex-encoded string (with or without "0x" prefix)
// to uint64. Used for values that fit in 64 bits: block numbers, peer counts,
// transaction counts, filter ids.
//
// Examples:
//   - "0x172721e" -> 24277534
//   - "0x0" -> 0
//   - "" -> 0 (empty string treated as zero)
func ParseHexUint64(hex string) (uint64, error) {
	hex = strings.TrimPrefix(hex, "0x")
	if hex == "" {
		return 0, nil
	}

	// Parse through big.Int so overflow is detected instead of wrapping.
	val := new(big.Int)
	if _, ok := val.SetString(hex, 16); !ok {
		return 0, fmt.Errorf("invalid hex: %s", hex)
	}
	if !val.IsUint64() {
		return 0, fmt.Errorf("value overflows uint64: %s", hex)
	}
	return val.Uint64(), nil
}

// ParseHexBigInt converts a hex-encoded string to *big.Int for values that
// may exceed uint64 range (balances, gas prices — anything denominated in wei).
func ParseHexBigInt(hex string) (*big.Int, error) {
	hex = strings.TrimPrefix(hex, "0x")
	if hex == "" {
		return big.NewInt(0), nil
	}

	val := new(big.Int)
	if _, ok := val.SetString(hex, 16); !ok {
		return nil, fmt.Errorf("invalid hex: %s", hex)
	}
	return val, nil
}

// WeiHexToEther converts a hex wei amount into an exact ether decimal string
// with all 18 fractional digits, no rounding anywhere.
//
// The wei value is formatted in base 10, left-padded with zeros until it has
// at least 19 digits, and the decimal point is inserted 18 digits from the
// right. A wrong decimal point here moves funds by orders of magnitude, which
// is why this never goes through float.
//
// Examples:
//   - "0x1" -> "0.000000000000000001"
//   - "0xde0b6b3a7640000" -> "1.000000000000000000"
//   - "0x2386f26fc10000" -> "0.010000000000000000"
func WeiHexToEther(hex string) (string, error) {
	wei, err := ParseHexBigInt(hex)
	if err != nil {
		return "", err
	}

	dec := wei.String()
	if len(dec) <= weiDigits {
		dec = strings.Repeat("0", weiDigits+1-len(dec)) + dec
	}
	cut := len(dec) - weiDigits
	return dec[:cut] + "." + dec[cut:], nil
}

// EtherToWeiHex converts a decimal ether amount string into a 0x-prefixed
// hex wei value. The scale-by-10^18 step happens in exact decimal
// arithmetic: "0.000000000000000001" ether comes out as 0x1 wei, with no
// float64 on the way.
//
// The amount must be positive and must not carry more than 18 fractional
// digits — anything finer than one wei does not exist on chain.
func EtherToWeiHex(amount string) (string, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return "", fmt.Errorf("invalid ether amount %q: %w", amount, err)
	}
	if d.Sign() <= 0 {
		return "", fmt.Errorf("ether amount must be positive, got %s", amount)
	}

	wei := d.Shift(weiDigits)
	if !wei.IsInteger() {
		return "", fmt.Errorf("ether amount %s is finer than 1 wei", amount)
	}
	return "0x" + wei.BigInt().Text(16), nil
}

// Uint64ToHex converts a uint64 to a 0x-prefixed hex string for RPC params,
// e.g. the unlock duration of personal_unlockAccount.
func Uint64ToHex(n uint64) string {
	return fmt.Sprintf("0x%x", n)
}
