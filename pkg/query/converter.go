package query

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

const (
	// Separator joins a field's wire name with the sub-keys produced by a MapConverter.
	Separator = "."
	// ListSeparator joins list values into a single wire value.
	ListSeparator = ","
	// DateTimeLayout is the sortable layout the API expects; a literal Z is appended.
	DateTimeLayout = "2006-01-02T15:04:05"
)

// Converter turns a field value into a single wire string.
type Converter interface {
	// CanConvert reports whether the converter handles v's type.
	CanConvert(v any) bool
	// Convert returns the wire string for v. An empty result means "omit".
	Convert(v any) string
}

// MapConverter turns a field value into several wire entries keyed by sub-key.
type MapConverter interface {
	CanConvert(v any) bool
	ConvertMap(v any) map[string]string
}

var (
	// BoolDigit encodes booleans as "1" and "0".
	BoolDigit Converter = boolDigitConverter{}
	// ListJoin joins a []string with commas.
	ListJoin Converter = listJoinConverter{}
	// LowerEnum encodes an enumerated value as its lowercased canonical name.
	LowerEnum Converter = lowerEnumConverter{}
	// DateTime formats an instant as 2006-01-02T15:04:05Z without changing its zone.
	DateTime Converter = dateTimeConverter{}
	// JSONEmbed serializes any value to a JSON literal carried in one field.
	JSONEmbed Converter = jsonEmbedConverter{}
	// MetapropertyOptions flattens metaproperty id -> option ids into comma-joined entries.
	MetapropertyOptions MapConverter = metapropertyOptionsConverter{}
)

type boolDigitConverter struct{}

func (boolDigitConverter) CanConvert(v any) bool {
	switch v.(type) {
	case bool, *bool:
		return true
	}

	return false
}

func (boolDigitConverter) Convert(v any) string {
	var b bool

	switch t := v.(type) {
	case bool:
		b = t
	case *bool:
		if t == nil {
			return ""
		}

		b = *t
	default:
		return ""
	}

	if b {
		return "1"
	}

	return "0"
}

type listJoinConverter struct{}

func (listJoinConverter) CanConvert(v any) bool {
	_, ok := v.([]string)
	return ok
}

func (listJoinConverter) Convert(v any) string {
	list, ok := v.([]string)
	if !ok {
		return ""
	}

	return strings.Join(list, ListSeparator)
}

type lowerEnumConverter struct{}

func (lowerEnumConverter) CanConvert(v any) bool {
	_, ok := v.(fmt.Stringer)
	return ok
}

func (lowerEnumConverter) Convert(v any) string {
	s, ok := v.(fmt.Stringer)
	if !ok || isNil(v) {
		return ""
	}

	return strings.ToLower(s.String())
}

type dateTimeConverter struct{}

func (dateTimeConverter) CanConvert(v any) bool {
	switch v.(type) {
	case time.Time, *time.Time:
		return true
	}

	return false
}

func (dateTimeConverter) Convert(v any) string {
	switch t := v.(type) {
	case time.Time:
		return FormatDateTime(t)
	case *time.Time:
		if t == nil {
			return ""
		}

		return FormatDateTime(*t)
	}

	return ""
}

// FormatDateTime renders t's wall clock followed by a literal Z. The offset is not applied.
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout) + "Z"
}

type jsonEmbedConverter struct{}

func (jsonEmbedConverter) CanConvert(any) bool { return true }

func (jsonEmbedConverter) Convert(v any) string {
	if isNil(v) {
		return ""
	}

	s, err := sonic.MarshalString(v)
	if err != nil || s == "null" {
		return ""
	}

	return s
}

type metapropertyOptionsConverter struct{}

func (metapropertyOptionsConverter) CanConvert(v any) bool {
	_, ok := v.(map[string][]string)
	return ok
}

func (metapropertyOptionsConverter) ConvertMap(v any) map[string]string {
	m, ok := v.(map[string][]string)
	if !ok {
		return nil
	}

	out := make(map[string]string, len(m))
	for id, options := range m {
		out[id] = strings.Join(options, ListSeparator)
	}

	return out
}

// defaultString is the fallback conversion when no converter applies.
func defaultString(v any) string {
	if isNil(v) {
		return ""
	}

	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer {
		v = rv.Elem().Interface()
	}

	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	}

	return fmt.Sprint(v)
}

// isNil reports whether v is nil or a typed nil pointer, map, slice or interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}

	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
