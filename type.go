package statements

import "fmt"

// Type is the closed enumeration of transaction types.
type Type string

const (
	Buy              Type = "BUY"
	Sell             Type = "SELL"
	Dividends        Type = "DIVIDENDS"
	Deposit          Type = "DEPOSIT"
	Removal          Type = "REMOVAL"
	TransferIn       Type = "TRANSFER_IN"
	TransferOut      Type = "TRANSFER_OUT"
	Fees             Type = "FEES"
	FeesRefund       Type = "FEES_REFUND"
	Taxes            Type = "TAXES"
	TaxRefund        Type = "TAX_REFUND"
	Interest         Type = "INTEREST"
	InterestCharge   Type = "INTEREST_CHARGE"
	DeliveryInbound  Type = "DELIVERY_INBOUND"
	DeliveryOutbound Type = "DELIVERY_OUTBOUND"
)

// AccountTypes lists the types a cash account transaction can have, in display order.
func AccountTypes() []Type {
	return []Type{Deposit, Removal, Interest, InterestCharge, Dividends, Fees, FeesRefund, Taxes, TaxRefund, Buy, Sell, TransferIn, TransferOut}
}

// PortfolioTypes lists the types a securities portfolio transaction can have, in display order.
func PortfolioTypes() []Type {
	return []Type{Buy, Sell, TransferIn, TransferOut, DeliveryInbound, DeliveryOutbound}
}

// IsAccount reports whether t is valid on a cash account.
func (t Type) IsAccount() bool { return contains(AccountTypes(), t) }

// IsPortfolio reports whether t is valid on a securities portfolio.
func (t Type) IsPortfolio() bool { return contains(PortfolioTypes(), t) }

// IsCash reports whether t never carries shares.
func (t Type) IsCash() bool {
	switch t {
	case Deposit, Removal, TransferIn, TransferOut, Interest, InterestCharge:
		return true
	}
	return false
}

// RequiresSecurity reports whether a transaction of type t must reference a security.
func (t Type) RequiresSecurity() bool {
	switch t {
	case Buy, Sell, Dividends, DeliveryInbound, DeliveryOutbound:
		return true
	}
	return false
}

// RequiresShares reports whether a transaction of type t must have a non-zero quantity.
func (t Type) RequiresShares() bool {
	switch t {
	case Buy, Sell, DeliveryInbound, DeliveryOutbound:
		return true
	}
	return false
}

// IsDebit reports whether t takes cash out of an account.
func (t Type) IsDebit() bool {
	switch t {
	case Removal, TransferOut, Fees, Taxes, InterestCharge, Buy:
		return true
	}
	return false
}

func (t Type) String() string { return string(t) }

// ParseType returns the Type named s.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if t.IsAccount() || t.IsPortfolio() {
		return t, nil
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

func contains(types []Type, t Type) bool {
	for _, v := range types {
		if v == t {
			return true
		}
	}
	return false
}

// UnitType is the kind of a monetary component of a transaction.
type UnitType string

const (
	GrossValue UnitType = "GROSS_VALUE"
	Tax        UnitType = "TAX"
	Fee        UnitType = "FEE"
)
