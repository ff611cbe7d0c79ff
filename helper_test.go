package statements

import "github.com/etnz/statements/date"

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return MoneyOf(v, "EUR") }

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return MoneyOf(v, "USD") }

// on is a helper for test to create a date time at midnight.
func on(s string) date.DateTime { return date.Midnight(date.MustParse(s)) }

// sap returns a fresh SAP security.
func sap() *Security {
	return &Security{UUID: "sap", Name: "SAP SE", ISIN: "DE0007164600", WKN: "716460", Currency: "EUR"}
}
