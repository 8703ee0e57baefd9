package models

// ValueKind identifies which branch of a Value is populated.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindObject
	KindArray
	KindString
	KindNumber
	KindBoolean
	KindBinary
	KindOpaque
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindBinary:
		return "binary"
	case KindOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// NumberKind is the numeric representation the decoder chose for a number.
type NumberKind int

const (
	NumberUnknown NumberKind = iota
	NumberInt
	NumberLong
	NumberBigInteger
	NumberShort
	NumberFloat
	NumberDouble
	NumberDecimal
)

func (k NumberKind) String() string {
	switch k {
	case NumberInt:
		return "int"
	case NumberLong:
		return "long"
	case NumberBigInteger:
		return "big_integer"
	case NumberShort:
		return "short"
	case NumberFloat:
		return "float"
	case NumberDouble:
		return "double"
	case NumberDecimal:
		return "decimal"
	default:
		return "unknown"
	}
}

// Member is a single key/value entry of a JSON object.
type Member struct {
	Key   string
	Value Value
}

// Value is a decoded JSON value. Only the fields matching Kind are meaningful.
// Object members keep the order they had in the source document.
type Value struct {
	Kind ValueKind

	Members  []Member
	Elements []Value

	Str        string
	Number     string // source text of a number
	NumberKind NumberKind
	Bool       bool
	Bytes      []byte
	Opaque     any
}

// Object builds an object value from members in order.
func Object(members ...Member) Value {
	return Value{Kind: KindObject, Members: members}
}

// Array builds an array value.
func Array(elements ...Value) Value {
	return Value{Kind: KindArray, Elements: elements}
}

// String builds a string value.
func String(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// Number builds a number value from its textual form and subtype.
func Number(text string, kind NumberKind) Value {
	return Value{Kind: KindNumber, Number: text, NumberKind: kind}
}

// Bool builds a boolean value.
func Bool(b bool) Value {
	return Value{Kind: KindBoolean, Bool: b}
}

// Null builds a null value.
func Null() Value {
	return Value{Kind: KindNull}
}

// Binary builds a binary value.
func Binary(b []byte) Value {
	return Value{Kind: KindBinary, Bytes: b}
}

// Opaque wraps a value that has no JSON representation.
func Opaque(v any) Value {
	return Value{Kind: KindOpaque, Opaque: v}
}

// IsObject reports whether v is an object.
func (v Value) IsObject() bool { return v.Kind == KindObject }

// IsArray reports whether v is an array.
func (v Value) IsArray() bool { return v.Kind == KindArray }

// IsScalar reports whether v is neither an object nor an array.
func (v Value) IsScalar() bool { return !v.IsObject() && !v.IsArray() }

// Len returns the number of members or elements of a container, 0 otherwise.
func (v Value) Len() int {
	switch v.Kind {
	case KindObject:
		return len(v.Members)
	case KindArray:
		return len(v.Elements)
	default:
		return 0
	}
}

// Get returns the value stored under key in an object.
func (v Value) Get(key string) (Value, bool) {
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}
