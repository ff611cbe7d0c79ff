package statements

// Client is the read view of an existing ledger that extractions resolve against.
type Client struct {
	BaseCurrency string
	securities   []*Security
}

// NewClient returns an empty ledger view.
func NewClient(baseCurrency string) *Client {
	return &Client{BaseCurrency: baseCurrency}
}

// AddSecurity appends securities to the ledger view.
func (c *Client) AddSecurity(s ...*Security) { c.securities = append(c.securities, s...) }

// Securities returns the ledger securities.
func (c *Client) Securities() []*Security { return c.securities }

// Currency returns the ledger base currency.
func (c *Client) Currency() string { return c.BaseCurrency }

// Merge adds the securities created by an extraction and returns how many were added.
// Callers running several extractions concurrently must serialize calls to Merge.
func (c *Client) Merge(items []Item) int {
	known := make(map[*Security]bool, len(c.securities))
	for _, s := range c.securities {
		known[s] = true
	}
	n := 0
	for _, item := range items {
		si, ok := item.(*SecurityItem)
		if !ok || known[si.Security] {
			continue
		}
		known[si.Security] = true
		c.securities = append(c.securities, si.Security)
		n++
	}
	return n
}
