package record

// Encode writes values as one tuple of schema into dst and returns the
// number of bytes written. Each value must have the type of its attribute.
func Encode(schema *Schema, values []Value, dst []byte) (int, error) {
	if len(values) != schema.Len() {
		return 0, violation("schema has %d attributes, got %d values", schema.Len(), len(values))
	}
	w := NewWriter(dst)
	for i, attr := range schema.attrs {
		v := values[i]
		if v.IsZero() || v.typ != attr.Type {
			return 0, violation("attribute %q expects %s, got %s", attr.Name, attr.Type, v.typ)
		}
		if err := w.Write(v.raw); err != nil {
			return 0, err
		}
	}
	return w.Len(), nil
}

// EncodeTuple encodes values into a freshly allocated buffer sized to fit.
func EncodeTuple(schema *Schema, values ...Value) ([]byte, error) {
	size := 0
	for _, v := range values {
		size += len(v.raw)
	}
	buf := make([]byte, size)
	n, err := Encode(schema, values, buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// Decode splits the tuple in buf into one Value per attribute.
func Decode(schema *Schema, buf []byte) ([]Value, error) {
	fields, err := NewLayoutFromSchema(schema).Fields(buf)
	if err != nil {
		return nil, err
	}
	values := make([]Value, len(fields))
	for i, f := range fields {
		values[i] = f.Value(buf)
	}
	return values, nil
}
