// Package query maps Bynder request objects to flat wire parameters.
//
// Every request type declares its wire schema explicitly by implementing Encoder:
//
//	func (q *MediaQuery) QueryFields() []query.Field {
//		return []query.Field{
//			query.String("keyword", q.Keyword),
//			query.Bool("count", q.Count),
//			query.List("ids", q.IDs),
//			query.Options("property_", q.Metaproperties).OmitSeparator(),
//		}
//	}
//
//	params := query.Encode(q)
//	body := params.Encode() // keyword=...&count=1&ids=a%2Cb&property_xyz=...
//
// Absent values are never sent. Converted empty strings are never sent either, except for
// Optional fields in the cleared state, which are how callers ask the API to erase a value.
package query

import (
	"net/url"
	"strings"
)

// Params is an ordered mapping from wire name to string value.
// Keys are unique; the first Set of a key fixes its position.
type Params struct {
	keys   []string
	values map[string]string
}

// NewParams creates an empty Params.
func NewParams() *Params {
	return &Params{values: make(map[string]string)}
}

// Set stores value under key, keeping the original position of an existing key.
func (p *Params) Set(key, value string) {
	if p.values == nil {
		p.values = make(map[string]string)
	}

	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}

	p.values[key] = value
}

// Get returns the value stored under key.
func (p *Params) Get(key string) (string, bool) {
	if p == nil {
		return "", false
	}

	v, ok := p.values[key]

	return v, ok
}

// Len returns the number of entries.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}

	return len(p.keys)
}

// Keys returns the wire names in insertion order.
func (p *Params) Keys() []string {
	if p == nil {
		return nil
	}

	out := make([]string, len(p.keys))
	copy(out, p.keys)

	return out
}

// Merge copies every entry of other into p, in other's order.
func (p *Params) Merge(other *Params) {
	if other == nil {
		return
	}

	for _, k := range other.keys {
		p.Set(k, other.values[k])
	}
}

// Values converts p to url.Values.
func (p *Params) Values() url.Values {
	vals := make(url.Values, p.Len())
	if p == nil {
		return vals
	}

	for _, k := range p.keys {
		vals.Set(k, p.values[k])
	}

	return vals
}

// Encode renders p as application/x-www-form-urlencoded text in insertion order.
// Unlike url.Values.Encode, keys are not sorted.
func (p *Params) Encode() string {
	if p.Len() == 0 {
		return ""
	}

	var b strings.Builder

	for i, k := range p.keys {
		if i > 0 {
			b.WriteByte('&')
		}

		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.values[k]))
	}

	return b.String()
}

// FromMap builds Params from a plain map. Keys are sorted so the result is deterministic.
func FromMap(m map[string]string) *Params {
	p := NewParams()
	for _, k := range sortedKeys(m) {
		p.Set(k, m[k])
	}

	return p
}
