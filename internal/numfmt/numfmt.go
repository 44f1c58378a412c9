// Package numfmt renders raw on-chain integers as the canonical decimal
// strings the field model requires, using shopspring/decimal so division by
// 10^decimals never loses precision the way float64 would.
package numfmt

import (
	"math/big"
	"regexp"

	"github.com/shopspring/decimal"
)

// ProperNumberPattern is the "signed proper number" form: no leading zeros
// except "0.", no trailing zeros after the decimal point, a single leading
// sign for negatives.
var ProperNumberPattern = regexp.MustCompile(`^[-+]?(0|[1-9][0-9]*)(\.[0-9]*[1-9])?$`)

// IsSignedProperNumber reports whether s matches ProperNumberPattern.
func IsSignedProperNumber(s string) bool {
	return ProperNumberPattern.MatchString(s)
}

// TokenAmount divides a raw integer amount by 10^decimals and returns the
// canonical decimal string (trailing zeros after the point stripped, but at
// least one digit kept, e.g. "1" not "1."). No leading-zero padding.
func TokenAmount(raw *big.Int, decimals uint8) string {
	d := decimal.NewFromBigInt(raw, 0).Shift(-int32(decimals))
	return canonicalize(d)
}

// canonicalize renders a decimal.Decimal as a proper-number string: strip
// trailing fractional zeros (and a bare trailing point), keep sign.
func canonicalize(d decimal.Decimal) string {
	s := d.String()
	if !regexHasDot.MatchString(s) {
		return s
	}
	i := len(s)
	for i > 0 && s[i-1] == '0' {
		i--
	}
	if i > 0 && s[i-1] == '.' {
		i--
	}
	return s
}

var regexHasDot = regexp.MustCompile(`\.`)

// WeiToEther renders a wei amount as an ether decimal string with trailing
// zeros stripped (18 decimals).
func WeiToEther(wei *big.Int) string {
	return TokenAmount(wei, 18)
}

// etherGweiThreshold is 10^-6 ETH; the display switches to gwei below this.
var etherGweiThreshold = decimal.New(1, -6)

// FormatEtherValue returns the amount string and its unit ("ETH" or "gwei")
// for a wei value, switching units below etherGweiThreshold.
func FormatEtherValue(wei *big.Int) (amount string, unit string) {
	etherValue := decimal.NewFromBigInt(wei, -18)
	if wei.Sign() != 0 && etherValue.Abs().LessThan(etherGweiThreshold) {
		gweiValue := decimal.NewFromBigInt(wei, -9)
		return canonicalize(gweiValue), "gwei"
	}
	return canonicalize(etherValue), "ETH"
}

// RawUnits renders a raw integer with no decimal division, for use when a
// token's decimals are unknown; callers should note the fallback in
// FallbackText.
func RawUnits(raw *big.Int) string {
	return raw.String()
}
