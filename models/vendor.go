// Package models defines data structures for the fetchers.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Zone is a named delivery zone of the platform.
type Zone struct {
	Name string
	ID   int
}

// VendorID is the textual form of a vendor's Id, as it appears in menu
// endpoint queries and output keys.
type VendorID string

// VendorRecord is a vendor object as returned by the search endpoint. It is
// kept verbatim so saved listings round-trip unchanged.
type VendorRecord json.RawMessage

// MarshalJSON emits the record with its key order and number literals
// unchanged. String escapes such as \u0915 are written as UTF-8 text.
func (r VendorRecord) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return unescapeJSON(r)
}

// UnmarshalJSON keeps a copy of the raw record.
func (r *VendorRecord) UnmarshalJSON(data []byte) error {
	if r == nil {
		return fmt.Errorf("models: VendorRecord: UnmarshalJSON on nil pointer")
	}
	*r = append((*r)[0:0], data...)
	return nil
}

// ZoneVendors holds the vendors fetched for one zone, in page order.
type ZoneVendors struct {
	Zone    string
	Vendors []VendorRecord
}

// ZoneListing maps zone names to vendors while keeping zone order. It encodes
// as a JSON object {zoneName: [vendor, ...]}.
type ZoneListing []ZoneVendors

// Total counts vendor records across all zones.
func (l ZoneListing) Total() int {
	total := 0
	for _, zv := range l {
		total += len(zv.Vendors)
	}
	return total
}

// MarshalJSON encodes the listing as an object in zone order.
func (l ZoneListing) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, zv := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalUnescaped(zv.Zone)
		if err != nil {
			return nil, fmt.Errorf("encode zone name: %w", err)
		}
		vendors := zv.Vendors
		if vendors == nil {
			vendors = []VendorRecord{}
		}
		value, err := marshalUnescaped(vendors)
		if err != nil {
			return nil, fmt.Errorf("encode zone %q: %w", zv.Zone, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object of zone arrays, keeping the document's key
// order. A repeated zone keeps its first position and its last value.
func (l *ZoneListing) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read listing: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("listing must be a JSON object of zone arrays")
	}

	var out ZoneListing
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("read zone name: %w", err)
		}
		zone, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v in listing", tok)
		}

		var vendors []VendorRecord
		if err := dec.Decode(&vendors); err != nil {
			return fmt.Errorf("decode zone %q: %w", zone, err)
		}

		if i, dup := index[zone]; dup {
			out[i].Vendors = vendors
			continue
		}
		index[zone] = len(out)
		out = append(out, ZoneVendors{Zone: zone, Vendors: vendors})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("read listing end: %w", err)
	}

	*l = out
	return nil
}

func marshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// unescapeJSON re-emits a JSON value token by token. Strings are re-encoded
// without \uXXXX or HTML escapes; numbers keep their original literal.
func unescapeJSON(data []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	type frame struct {
		object bool
		count  int
	}
	var (
		buf   bytes.Buffer
		stack []frame
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		if delim, ok := tok.(json.Delim); ok && (delim == '}' || delim == ']') {
			stack = stack[:len(stack)-1]
			buf.WriteByte(byte(delim))
			continue
		}

		if n := len(stack); n > 0 {
			top := &stack[n-1]
			switch {
			case top.object && top.count%2 == 1:
				buf.WriteByte(':')
			case top.count > 0:
				buf.WriteByte(',')
			}
			top.count++
		}

		switch v := tok.(type) {
		case json.Delim:
			buf.WriteByte(byte(v))
			stack = append(stack, frame{object: v == '{'})
		case string:
			text, err := marshalUnescaped(v)
			if err != nil {
				return nil, err
			}
			buf.Write(text)
		case json.Number:
			buf.WriteString(v.String())
		case bool:
			if v {
				buf.WriteString("true")
			} else {
				buf.WriteString("false")
			}
		case nil:
			buf.WriteString("null")
		default:
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
	}
	return buf.Bytes(), nil
}
