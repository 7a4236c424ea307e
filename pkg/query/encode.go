package query

// Encode evaluates the schema of e and returns its wire parameters in declaration order.
// A nil Encoder yields empty Params.
func Encode(e Encoder) *Params {
	if e == nil || isNil(e) {
		return NewParams()
	}

	return EncodeFields(e.QueryFields()...)
}

// EncodeFields evaluates an ad-hoc list of fields.
func EncodeFields(fields ...Field) *Params {
	p := NewParams()

	for _, f := range fields {
		encodeField(p, f)
	}

	return p
}

func encodeField(p *Params, f Field) {
	if !f.present || f.name == "" {
		return
	}

	// map converters expand into composite keys
	if f.mapConv != nil && f.mapConv.CanConvert(f.value) {
		sub := f.mapConv.ConvertMap(f.value)
		for _, key := range sortedKeys(sub) {
			if sub[key] == "" {
				continue
			}

			p.Set(compositeName(f, key), sub[key])
		}

		return
	}

	var value string
	if f.conv != nil && f.conv.CanConvert(f.value) {
		value = f.conv.Convert(f.value)
	} else {
		value = defaultString(f.value)
	}

	if value == "" && !f.keepEmpty {
		return
	}

	p.Set(f.name, value)
}

func compositeName(f Field, key string) string {
	if f.omitSeparator {
		return f.name + key
	}

	return f.name + Separator + key
}
