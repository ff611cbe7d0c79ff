package statements

// ItemKind identifies the variant of an Item.
type ItemKind string

const (
	KindSecurity          ItemKind = "security"
	KindTransaction       ItemKind = "transaction"
	KindBuySell           ItemKind = "buysell"
	KindAccountTransfer   ItemKind = "account-transfer"
	KindPortfolioTransfer ItemKind = "portfolio-transfer"
	KindNonImportable     ItemKind = "non-importable"
)

// Item is one unit emitted by an extraction. Items are immutable once emitted.
type Item interface {
	Kind() ItemKind
	Source() string
	Note() string
	Labels() Labels
}

// Labels names the accounts and portfolios an item should be booked on.
// Empty labels mean the caller's defaults.
type Labels struct {
	Account      string
	Account2nd   string
	Portfolio    string
	Portfolio2nd string
}

func (l Labels) marshal(w *object) {
	w.omitZero("account", l.Account)
	w.omitZero("account2nd", l.Account2nd)
	w.omitZero("portfolio", l.Portfolio)
	w.omitZero("portfolio2nd", l.Portfolio2nd)
}

// SecurityItem announces a security created during the extraction.
type SecurityItem struct {
	Security *Security
}

func (i *SecurityItem) Kind() ItemKind { return KindSecurity }
func (i *SecurityItem) Source() string { return "" }
func (i *SecurityItem) Note() string   { return "" }
func (i *SecurityItem) Labels() Labels { return Labels{} }

// TransactionItem holds a single account or portfolio transaction.
type TransactionItem struct {
	Transaction Transaction
	Booking     Labels
}

func (i *TransactionItem) Kind() ItemKind { return KindTransaction }
func (i *TransactionItem) Source() string { return i.Transaction.Base().Source }
func (i *TransactionItem) Note() string   { return i.Transaction.Base().Note }
func (i *TransactionItem) Labels() Labels { return i.Booking }

// BuySellItem holds a trade.
type BuySellItem struct {
	Entry   *BuySellEntry
	Booking Labels
}

func (i *BuySellItem) Kind() ItemKind { return KindBuySell }
func (i *BuySellItem) Source() string { return i.Entry.Portfolio.Source }
func (i *BuySellItem) Note() string   { return i.Entry.Portfolio.Note }
func (i *BuySellItem) Labels() Labels { return i.Booking }

// AccountTransferItem holds a cash transfer between two accounts.
type AccountTransferItem struct {
	Entry   *AccountTransferEntry
	Booking Labels
}

func (i *AccountTransferItem) Kind() ItemKind { return KindAccountTransfer }
func (i *AccountTransferItem) Source() string { return i.Entry.Source.Source }
func (i *AccountTransferItem) Note() string   { return i.Entry.Source.Note }
func (i *AccountTransferItem) Labels() Labels { return i.Booking }

// PortfolioTransferItem holds a share transfer between two portfolios.
type PortfolioTransferItem struct {
	Entry   *PortfolioTransferEntry
	Booking Labels
}

func (i *PortfolioTransferItem) Kind() ItemKind { return KindPortfolioTransfer }
func (i *PortfolioTransferItem) Source() string { return i.Entry.Source.Source }
func (i *PortfolioTransferItem) Note() string   { return i.Entry.Source.Note }
func (i *PortfolioTransferItem) Labels() Labels { return i.Booking }

// NonImportableItem explains why a recognized record carries no transaction.
type NonImportableItem struct {
	Type   Type
	Reason string
	Origin string
	Memo   string
}

func (i *NonImportableItem) Kind() ItemKind { return KindNonImportable }
func (i *NonImportableItem) Source() string { return i.Origin }
func (i *NonImportableItem) Note() string   { return i.Memo }
func (i *NonImportableItem) Labels() Labels { return Labels{} }

// Transactions returns the transactions held by item, cash leg first.
func Transactions(item Item) []Transaction {
	switch i := item.(type) {
	case *TransactionItem:
		return []Transaction{i.Transaction}
	case *BuySellItem:
		return []Transaction{i.Entry.Account, i.Entry.Portfolio}
	case *AccountTransferItem:
		return []Transaction{i.Entry.Source, i.Entry.Target}
	case *PortfolioTransferItem:
		return []Transaction{i.Entry.Source, i.Entry.Target}
	}
	return nil
}
