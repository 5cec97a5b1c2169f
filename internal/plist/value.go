package plist

// Value is a node of the property-list value model. The set of
// implementations is closed: Identifier, String, Array and Mapping.
type Value interface {
	isValue()
}

// Identifier is a bare token referencing another record by id.
// It is rendered verbatim, without quoting or escaping.
type Identifier string

// String is a text value, rendered quoted and escaped.
type String string

// Array is an ordered sequence of values.
type Array []Value

// Mapping is a keyed collection of values. Key order is irrelevant;
// rendering sorts the keys.
type Mapping map[string]Value

func (Identifier) isValue() {}
func (String) isValue()     {}
func (Array) isValue()      {}
func (Mapping) isValue()    {}

// Strings builds an Array of String values.
func Strings(items ...string) Array {
	arr := make(Array, 0, len(items))
	for _, s := range items {
		arr = append(arr, String(s))
	}

	return arr
}

// Identifiers builds an Array of Identifier values.
func Identifiers(ids ...string) Array {
	arr := make(Array, 0, len(ids))
	for _, id := range ids {
		arr = append(arr, Identifier(id))
	}

	return arr
}

// Walk calls fn for v and every value nested inside it, depth first.
// Mapping entries are visited in sorted key order.
func Walk(v Value, fn func(Value)) {
	fn(v)

	switch val := v.(type) {
	case Array:
		for _, item := range val {
			Walk(item, fn)
		}
	case Mapping:
		for _, k := range SortedKeys(val) {
			Walk(val[k], fn)
		}
	}
}
