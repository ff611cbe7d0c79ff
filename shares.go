package statements

import (
	"github.com/shopspring/decimal"
)

// SharesDigits is the number of decimal digits kept for share quantities.
const SharesDigits = 8

// Shares is a share quantity scaled by 10^SharesDigits.
type Shares int64

// SharesOf converts a decimal quantity, rounding to SharesDigits.
func SharesOf[T float64 | int | int64 | decimal.Decimal](value T) Shares {
	return Shares(newDecimal(value).Round(SharesDigits).Shift(SharesDigits).IntPart())
}

// Decimal returns the unscaled quantity.
func (s Shares) Decimal() decimal.Decimal { return decimal.New(int64(s), -SharesDigits) }

func (s Shares) IsZero() bool   { return s == 0 }
func (s Shares) String() string { return s.Decimal().String() }

// Abs returns the magnitude of s.
func (s Shares) Abs() Shares {
	if s < 0 {
		return -s
	}
	return s
}

func (s Shares) MarshalJSON() ([]byte, error) { return s.Decimal().MarshalJSON() }
