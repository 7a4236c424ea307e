package query

import (
	"fmt"
	"strconv"
	"time"
)

// Encoder is implemented by every request type that carries wire parameters.
// Fields that only build the URL path (entity ids) are simply left out of the schema.
type Encoder interface {
	QueryFields() []Field
}

// Field is one entry of a request schema: a wire name, the current value and its converter.
type Field struct {
	name          string
	value         any
	present       bool
	keepEmpty     bool
	omitSeparator bool
	conv          Converter
	mapConv       MapConverter
}

// Name returns the wire name.
func (f Field) Name() string { return f.name }

// OmitSeparator makes a map-converted field emit "{name}{subKey}" instead of "{name}.{subKey}".
func (f Field) OmitSeparator() Field {
	f.omitSeparator = true
	return f
}

// String declares a plain text field. An empty string is not sent.
func String(name, v string) Field {
	return Field{name: name, value: v, present: v != ""}
}

// Int declares an integer field. Zero is treated as absent.
func Int(name string, v int) Field {
	return Field{name: name, value: strconv.Itoa(v), present: v != 0}
}

// Int64 declares a 64-bit integer field that is always sent.
func Int64(name string, v int64) Field {
	return Field{name: name, value: strconv.FormatInt(v, 10), present: true}
}

// Bool declares a boolean field encoded as "1"/"0". A nil pointer is not sent.
func Bool(name string, v *bool) Field {
	return convField(name, v, v != nil, BoolDigit)
}

// List declares a comma-joined list field. A nil or empty list is not sent.
func List(name string, v []string) Field {
	return convField(name, v, len(v) > 0, ListJoin)
}

// Enum declares an enumerated field sent as its lowercased name. A nil pointer is not sent.
func Enum[T fmt.Stringer](name string, v *T) Field {
	if v == nil {
		return Field{name: name}
	}

	return convField(name, *v, true, LowerEnum)
}

// Time declares an instant field formatted by DateTime. A nil pointer is not sent.
func Time(name string, v *time.Time) Field {
	if v == nil {
		return Field{name: name}
	}

	return convField(name, *v, true, DateTime)
}

// JSON declares a field whose whole value is embedded as a JSON literal.
func JSON(name string, v any) Field {
	return convField(name, v, !isNil(v), JSONEmbed)
}

// Options declares a metaproperty option map, flattened to one entry per metaproperty id.
func Options(name string, v map[string][]string) Field {
	return Field{name: name, value: v, present: len(v) > 0, mapConv: MetapropertyOptions}
}

// Custom declares a field with a caller-supplied converter. When the converter cannot handle
// the value, the default string form is used instead.
func Custom(name string, v any, c Converter) Field {
	return convField(name, v, !isNil(v), c)
}

// CustomMap declares a field expanded by a caller-supplied MapConverter.
func CustomMap(name string, v any, c MapConverter) Field {
	return Field{name: name, value: v, present: !isNil(v), mapConv: c}
}

// Erasable declares a text field that can be cleared with Clear[string]().
// Some("") is treated like an unset value; only a cleared Optional sends an empty string.
func Erasable(name string, o Optional[string]) Field {
	switch {
	case o.IsCleared():
		return Field{name: name, value: "", present: true, keepEmpty: true}
	case o.IsSet():
		v, _ := o.Get()
		return String(name, v)
	}

	return Field{name: name}
}

// ErasableTime declares an instant field that can be cleared with Clear[time.Time]().
func ErasableTime(name string, o Optional[time.Time]) Field {
	switch {
	case o.IsCleared():
		return Field{name: name, value: "", present: true, keepEmpty: true}
	case o.IsSet():
		v, _ := o.Get()
		return Time(name, &v)
	}

	return Field{name: name}
}

func convField(name string, v any, present bool, c Converter) Field {
	return Field{name: name, value: v, present: present, conv: c}
}
