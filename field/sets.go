package field

import "github.com/etnz/statements"

// AccountFields returns the fields of cash account statements. Their order is
// the positional binding of headerless files.
func AccountFields() []Field {
	return []Field{
		NewDate(Date, "Date", false),
		NewTime(Time, "Time"),
		NewISIN(ISIN, "ISIN", true),
		NewText(Ticker, "Ticker Symbol", true),
		NewText(WKN, "WKN", true),
		NewAmount(Value, "Value", false),
		NewText(Currency, "Transaction Currency", true),
		NewEnum(Type, "Type", true, statements.AccountTypes(), TypeLabels),
		NewText(SecurityName, "Security Name", true),
		NewAmount(Shares, "Shares", true),
		NewText(Note, "Note", true),
		NewAmount(Taxes, "Taxes", true),
		NewAmount(Fees, "Fees", true),
		NewText(Account, "Cash Account", true),
		NewText(Account2nd, "Offset Account", true),
		NewText(Portfolio, "Securities Account", true),
		NewAmount(Gross, "Gross Amount", true),
		NewText(CurrencyGross, "Currency Gross Amount", true),
		NewAmount(ExchangeRate, "Exchange Rate", true),
		NewText(SEDOL, "SEDOL", true),
	}
}

// PortfolioFields returns the fields of securities account statements. Their
// order is the positional binding of headerless files.
func PortfolioFields() []Field {
	return []Field{
		NewDate(Date, "Date", false),
		NewTime(Time, "Time"),
		NewISIN(ISIN, "ISIN", true),
		NewText(Ticker, "Ticker Symbol", true),
		NewText(WKN, "WKN", true),
		NewText(SecurityName, "Security Name", true),
		NewAmount(Value, "Value", false),
		NewText(Currency, "Transaction Currency", true),
		NewAmount(Fees, "Fees", true),
		NewAmount(Taxes, "Taxes", true),
		NewAmount(Gross, "Gross Amount", true),
		NewText(CurrencyGross, "Currency Gross Amount", true),
		NewAmount(ExchangeRate, "Exchange Rate", true),
		NewAmount(Shares, "Shares", false),
		NewEnum(Type, "Type", true, statements.PortfolioTypes(), TypeLabels),
		NewText(Note, "Note", true),
		NewText(Account, "Cash Account", true),
		NewText(Portfolio, "Securities Account", true),
		NewText(Portfolio2nd, "Offset Securities Account", true),
		NewText(SEDOL, "SEDOL", true),
	}
}

// TypeMapping returns the transaction type mapping of fields, if any.
func TypeMapping(fields []Field) (*EnumMap[statements.Type], bool) {
	f, ok := Lookup(fields, Type)
	if !ok {
		return nil, false
	}
	e, ok := f.(*EnumField[statements.Type])
	if !ok {
		return nil, false
	}
	return e.Mapping(), true
}
