// Package schema holds the pure, behaviorless schema model: a Schema owns
// an ordered list of Definitions, each owning an ordered list of Fields.
// Cross-references between fields and definitions are resolved by name, not
// by pointer — there is no cyclic ownership in this package, matching the
// flat owning-container design the toolchain relies on for a trivial
// structural equality check.
package schema

// Kind identifies which of the three aggregate forms a Definition is.
type Kind int

const (
	KindEnum Kind = iota
	KindStruct
	KindMessage
)

func (k Kind) String() string {
	switch k {
	case KindEnum:
		return "enum"
	case KindStruct:
		return "struct"
	case KindMessage:
		return "message"
	default:
		return ""
	}
}

// NativeType is one of the eight built-in primitive types, in their
// canonical declaration order. A native type's wire type number is the
// bitwise complement of its NativeType value.
type NativeType int

const (
	NativeBool NativeType = iota
	NativeByte
	NativeInt
	NativeUInt
	NativeFloat
	NativeString
	NativeInt64
	NativeUInt64

	nativeTypeCount
)

// nativeNames is indexed by NativeType and fixes the canonical order used
// both by the verifier's defined-type set and by the binary codec's type
// number table.
var nativeNames = [...]string{
	NativeBool:   "bool",
	NativeByte:   "byte",
	NativeInt:    "int",
	NativeUInt:   "uint",
	NativeFloat:  "float",
	NativeString: "string",
	NativeInt64:  "int64",
	NativeUInt64: "uint64",
}

func (n NativeType) String() string {
	if n < 0 || int(n) >= len(nativeNames) {
		return ""
	}
	return nativeNames[n]
}

// TypeNumber returns the wire type number for a native type: the bitwise
// complement of its index, i.e. always negative.
func (n NativeType) TypeNumber() int32 {
	return ^int32(n)
}

// NativeTypeByName looks up a native type by its textual name. ok is false
// for any name that is not one of the eight built-ins.
func NativeTypeByName(name string) (NativeType, bool) {
	for i, n := range nativeNames {
		if n == name {
			return NativeType(i), true
		}
	}
	return 0, false
}

// NativeTypeCount is the number of built-in primitive types.
const NativeTypeCount = int(nativeTypeCount)

// ReservedNames are identifiers a definition may never use, regardless of
// whether they collide with a native type.
var ReservedNames = [...]string{"ByteBuffer", "package"}

// Position is a 1-based line/column into the IDL source text a schema was
// parsed from. It is the zero value, {0, 0}, for definitions and fields
// reconstructed by decoding a binary schema.
type Position struct {
	Line   int
	Column int
}

// Field describes one member of a Definition.
//
// TypeName is empty for enum variants (they carry no referenced type) and
// always set for struct/message fields. IsDeprecated is only ever true on a
// message field; the parser rejects it elsewhere.
type Field struct {
	Name         string
	Pos          Position
	TypeName     string
	IsArray      bool
	IsDeprecated bool
	ID           int
}

// Definition is one enum, struct, or message declared in a schema.
type Definition struct {
	Name   string
	Pos    Position
	Kind   Kind
	Fields []Field
}

// FieldByName returns the field with the given name, if present.
func (d Definition) FieldByName(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FieldByID returns the field with the given id, if present.
func (d Definition) FieldByID(id int) (Field, bool) {
	for _, f := range d.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

// Schema is an optional package name plus an ordered sequence of
// definitions. Definition order is significant: it fixes each definition's
// type index in the binary schema format.
type Schema struct {
	Package     string
	HasPackage  bool
	Definitions []Definition
}

// DefinitionByName returns the definition with the given name, if present.
func (s Schema) DefinitionByName(name string) (Definition, bool) {
	for _, d := range s.Definitions {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}

// DefinitionIndex returns the 0-based declaration-order index of the named
// definition, used as its non-negative binary type number.
func (s Schema) DefinitionIndex(name string) (int, bool) {
	for i, d := range s.Definitions {
		if d.Name == name {
			return i, true
		}
	}
	return 0, false
}
