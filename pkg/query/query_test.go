package query_test

import (
	"strings"
	"testing"
	"time"

	"github.com/Bynder/bynder-go-sdk/pkg/query"
)

type color int

const (
	colorRed color = iota
	colorDarkBlue
)

func (c color) String() string {
	switch c {
	case colorRed:
		return "Red"
	case colorDarkBlue:
		return "DarkBlue"
	}

	return "Unknown"
}

// sampleQuery exercises every field kind.
type sampleQuery struct {
	ID          string // path only, never encoded
	Name        string
	Limit       int
	Public      *bool
	Tags        []string
	Color       *color
	Since       *time.Time
	IDs         []string
	Options     map[string][]string
	Properties  map[string][]string
	Description query.Optional[string]
}

func (q *sampleQuery) QueryFields() []query.Field {
	return []query.Field{
		query.String("name", q.Name),
		query.Int("limit", q.Limit),
		query.Bool("isPublic", q.Public),
		query.List("tags", q.Tags),
		query.Enum("color", q.Color),
		query.Time("since", q.Since),
		query.JSON("data", q.IDs),
		query.Options("metaproperty", q.Options),
		query.Options("property_", q.Properties).OmitSeparator(),
		query.Erasable("description", q.Description),
	}
}

// TestEncode_OmitsAbsentValues checks that nil and empty values produce no entries.
func TestEncode_OmitsAbsentValues(t *testing.T) {
	p := query.Encode(&sampleQuery{ID: "abc"})

	if p.Len() != 0 {
		t.Fatalf("expected no entries, got %v", p.Keys())
	}

	if _, ok := p.Get("isPublic"); ok {
		t.Error("nil bool must not be encoded")
	}
}

// TestEncode_BoolDigits checks the boolean digit encoding.
func TestEncode_BoolDigits(t *testing.T) {
	p := query.Encode(&sampleQuery{Public: query.Ptr(false)})
	if v, _ := p.Get("isPublic"); v != "0" {
		t.Errorf("false: expected %q, got %q", "0", v)
	}

	p = query.Encode(&sampleQuery{Public: query.Ptr(true)})
	if v, _ := p.Get("isPublic"); v != "1" {
		t.Errorf("true: expected %q, got %q", "1", v)
	}
}

// TestEncode_DeclarationOrder checks that entries follow the schema order.
func TestEncode_DeclarationOrder(t *testing.T) {
	since := time.Date(2018, 1, 20, 22, 12, 0, 0, time.UTC)
	q := &sampleQuery{
		Name:   "logo.png",
		Limit:  50,
		Public: query.Ptr(true),
		Tags:   []string{"a", "b"},
		Color:  query.Ptr(colorDarkBlue),
		Since:  &since,
		IDs:    []string{"m1", "m2"},
	}

	p := query.Encode(q)

	want := []string{"name", "limit", "isPublic", "tags", "color", "since", "data"}
	got := p.Keys()

	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected keys %v, got %v", want, got)
	}

	expected := map[string]string{
		"name":     "logo.png",
		"limit":    "50",
		"isPublic": "1",
		"tags":     "a,b",
		"color":    "darkblue",
		"since":    "2018-01-20T22:12:00Z",
		"data":     `["m1","m2"]`,
	}
	for k, v := range expected {
		if got, _ := p.Get(k); got != v {
			t.Errorf("%s: expected %q, got %q", k, v, got)
		}
	}

	body := p.Encode()
	if !strings.HasPrefix(body, "name=logo.png&limit=50&isPublic=1&tags=a%2Cb") {
		t.Errorf("unexpected form body %q", body)
	}
}

// TestEncode_MapFlattening checks composite keys produced by the metaproperty converter.
func TestEncode_MapFlattening(t *testing.T) {
	q := &sampleQuery{Options: map[string][]string{
		"B": {"z"},
		"A": {"x", "y"},
	}}

	p := query.Encode(q)

	if p.Len() != 2 {
		t.Fatalf("expected 2 entries, got %v", p.Keys())
	}

	if v, _ := p.Get("metaproperty.A"); v != "x,y" {
		t.Errorf("metaproperty.A: expected %q, got %q", "x,y", v)
	}

	if v, _ := p.Get("metaproperty.B"); v != "z" {
		t.Errorf("metaproperty.B: expected %q, got %q", "z", v)
	}
}

// TestEncode_OmitSeparator checks the separator-less composite key form.
func TestEncode_OmitSeparator(t *testing.T) {
	p := query.Encode(&sampleQuery{Properties: map[string][]string{"size": {"large"}}})

	if v, ok := p.Get("property_size"); !ok || v != "large" {
		t.Errorf("expected property_size=large, got %q (present=%v)", v, ok)
	}
}

// TestEncode_Erasure checks the three states of an erasable field.
func TestEncode_Erasure(t *testing.T) {
	cases := []struct {
		name    string
		value   query.Optional[string]
		present bool
		want    string
	}{
		{name: "unset", value: query.Optional[string]{}, present: false},
		{name: "set", value: query.Some("new text"), present: true, want: "new text"},
		{name: "set empty", value: query.Some(""), present: false},
		{name: "cleared", value: query.Clear[string](), present: true, want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := query.Encode(&sampleQuery{Description: tc.value})

			got, ok := p.Get("description")
			if ok != tc.present {
				t.Fatalf("expected present=%v, got %v", tc.present, ok)
			}

			if got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}

	body := query.Encode(&sampleQuery{Description: query.Clear[string]()}).Encode()
	if body != "description=" {
		t.Errorf("expected cleared field in body, got %q", body)
	}
}

// TestEncode_ErasableTime checks that a cleared date is sent empty and a set date is formatted.
func TestEncode_ErasableTime(t *testing.T) {
	p := query.EncodeFields(query.ErasableTime("datePublished", query.Clear[time.Time]()))
	if v, ok := p.Get("datePublished"); !ok || v != "" {
		t.Errorf("cleared: expected empty entry, got %q (present=%v)", v, ok)
	}

	at := time.Date(2020, 5, 1, 8, 30, 0, 0, time.UTC)

	p = query.EncodeFields(query.ErasableTime("datePublished", query.Some(at)))
	if v, _ := p.Get("datePublished"); v != "2020-05-01T08:30:00Z" {
		t.Errorf("set: unexpected value %q", v)
	}
}

type upperConverter struct{}

func (upperConverter) CanConvert(v any) bool {
	_, ok := v.(string)
	return ok
}

func (upperConverter) Convert(v any) string {
	return strings.ToUpper(v.(string))
}

// TestEncode_CustomConverter checks per-field converters and their fallback.
func TestEncode_CustomConverter(t *testing.T) {
	p := query.EncodeFields(
		query.Custom("applied", "abc", upperConverter{}),
		query.Custom("fallback", 42, upperConverter{}),
		query.Custom("nilconv", 7, nil),
		query.Custom("absent", nil, upperConverter{}),
	)

	if v, _ := p.Get("applied"); v != "ABC" {
		t.Errorf("applied: expected %q, got %q", "ABC", v)
	}

	if v, _ := p.Get("fallback"); v != "42" {
		t.Errorf("fallback: expected %q, got %q", "42", v)
	}

	if v, _ := p.Get("nilconv"); v != "7" {
		t.Errorf("nilconv: expected %q, got %q", "7", v)
	}

	if _, ok := p.Get("absent"); ok {
		t.Error("absent: nil value must not be encoded")
	}
}

// TestEncode_NilEncoder checks that a nil request yields no parameters.
func TestEncode_NilEncoder(t *testing.T) {
	var q *sampleQuery

	if p := query.Encode(q); p.Len() != 0 {
		t.Errorf("expected empty params, got %v", p.Keys())
	}
}
