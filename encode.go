package statements

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"

	"github.com/google/uuid"
)

// object is a JSON object whose keys keep their insertion order. The first
// failing value is reported by MarshalJSON.
type object struct {
	keys   []string
	values []json.RawMessage
	err    error
}

func (o *object) set(key string, v any) {
	if o.err != nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		o.err = fmt.Errorf("could not encode %s: %w", key, err)
		return
	}
	o.keys = append(o.keys, key)
	o.values = append(o.values, raw)
}

// omitZero sets key unless v is the zero value of its type.
func (o *object) omitZero(key string, v any) {
	if rv := reflect.ValueOf(v); rv.IsValid() && !rv.IsZero() {
		o.set(key, v)
	}
}

// inline copies the members of the JSON object v encodes to.
func (o *object) inline(v any) {
	if o.err != nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		o.err = fmt.Errorf("could not encode %T: %w", v, err)
		return
	}
	members := bytes.TrimSpace(raw)
	if len(members) < 2 || members[0] != '{' {
		o.err = fmt.Errorf("could not inline %T: not an object", v)
		return
	}
	if members = bytes.TrimSpace(members[1 : len(members)-1]); len(members) > 0 {
		// a blank key marks members written as is
		o.keys = append(o.keys, "")
		o.values = append(o.values, members)
	}
}

func (o *object) MarshalJSON() ([]byte, error) {
	if o.err != nil {
		return nil, o.err
	}
	var b bytes.Buffer
	b.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		if key != "" {
			k, _ := json.Marshal(key)
			b.Write(k)
			b.WriteByte(':')
		}
		b.Write(o.values[i])
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func (i *SecurityItem) MarshalJSON() ([]byte, error) {
	var w object
	w.set("kind", i.Kind())
	w.inline(i.Security)
	return w.MarshalJSON()
}

func (i *TransactionItem) MarshalJSON() ([]byte, error) {
	var w object
	w.set("kind", i.Kind())
	w.set("leg", i.Transaction.Kind())
	i.Transaction.Base().marshal(&w)
	i.Booking.marshal(&w)
	return w.MarshalJSON()
}

func (i *BuySellItem) MarshalJSON() ([]byte, error) {
	var w object
	w.set("kind", i.Kind())
	w.set("cash", i.Entry.Account)
	w.set("securities", i.Entry.Portfolio)
	i.Booking.marshal(&w)
	return w.MarshalJSON()
}

func (i *AccountTransferItem) MarshalJSON() ([]byte, error) {
	var w object
	w.set("kind", i.Kind())
	w.set("from", i.Entry.Source)
	w.set("to", i.Entry.Target)
	i.Booking.marshal(&w)
	return w.MarshalJSON()
}

func (i *PortfolioTransferItem) MarshalJSON() ([]byte, error) {
	var w object
	w.set("kind", i.Kind())
	w.set("from", i.Entry.Source)
	w.set("to", i.Entry.Target)
	i.Booking.marshal(&w)
	return w.MarshalJSON()
}

func (i *NonImportableItem) MarshalJSON() ([]byte, error) {
	var w object
	w.set("kind", i.Kind())
	w.omitZero("type", i.Type)
	w.set("reason", i.Reason)
	w.omitZero("source", i.Origin)
	w.omitZero("note", i.Memo)
	return w.MarshalJSON()
}

// EncodeItems writes items as JSONL, one object per line, in emission order.
func EncodeItems(w io.Writer, items []Item) error {
	for _, item := range items {
		line, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("could not encode %s item: %w", item.Kind(), err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", line); err != nil {
			return err
		}
	}
	return nil
}

// DecodeSecurities reads a JSONL list of securities. Securities without a UUID get a new one.
func DecodeSecurities(r io.Reader) ([]*Security, error) {
	var securities []*Security
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		s := new(Security)
		if err := json.Unmarshal(lineBytes, s); err != nil {
			return nil, fmt.Errorf("line %d: could not decode security: %w", line, err)
		}
		if s.UUID == "" {
			s.UUID = uuid.NewString()
		}
		s.ISIN = NormalizeIdentifier(s.ISIN)
		s.WKN = NormalizeIdentifier(s.WKN)
		securities = append(securities, s)
	}
	return securities, scanner.Err()
}

// EncodeSecurities writes securities as JSONL.
func EncodeSecurities(w io.Writer, securities []*Security) error {
	enc := json.NewEncoder(w)
	for _, s := range securities {
		if err := enc.Encode(s); err != nil {
			return err
		}
	}
	return nil
}
