package section

import "strconv"

// Value is the scalar carried by a leaf node: a string, an unsigned
// integer, or nothing for containers.
type Value struct {
	kind Kind
	str  string
	num  uint64
}

// StringValue returns a string scalar.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// UintValue returns an integer scalar.
func UintValue(v uint64) Value {
	return Value{kind: KindUint, num: v}
}

// Kind returns KindContainer for the zero Value.
func (v Value) Kind() Kind {
	return v.kind
}

// Str returns the string scalar, if that is what v holds.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == KindString
}

// Uint returns the integer scalar, if that is what v holds.
func (v Value) Uint() (uint64, bool) {
	return v.num, v.kind == KindUint
}

func (v Value) String() string {
	switch v.kind {
	case KindString:
		return strconv.Quote(v.str)
	case KindUint:
		return strconv.FormatUint(v.num, 10)
	default:
		return ""
	}
}
