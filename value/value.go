// Package value implements the dynamic, schema-driven runtime representation
// of data described by a compiled schema.Schema: a tagged union Value plus a
// Codec that encodes and decodes Values against a specific schema without
// any generated or reflected Go type standing between the two.
package value

import "fmt"

// Kind identifies which alternative of the Value union is populated.
type Kind int

const (
	KindBool Kind = iota
	KindByte
	KindInt32
	KindUInt32
	KindFloat32
	KindString
	KindInt64
	KindUInt64
	KindArray
	KindEnum
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindByte:
		return "byte"
	case KindInt32:
		return "int32"
	case KindUInt32:
		return "uint32"
	case KindFloat32:
		return "float32"
	case KindString:
		return "string"
	case KindInt64:
		return "int64"
	case KindUInt64:
		return "uint64"
	case KindArray:
		return "array"
	case KindEnum:
		return "enum"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Object is the payload of a KindObject Value: a struct or message instance,
// named by the schema definition it was built against. Fields holds one
// entry per present field, keyed by field name. For a struct every field is
// always present; for a message an absent key means the field was never set
// (and is omitted entirely when re-encoded).
type Object struct {
	TypeName string
	Fields   map[string]Value
}

// Value is a tagged union over every shape the dynamic codec can produce or
// consume. The zero Value is KindBool/false.
type Value struct {
	kind Kind

	boolVal     bool
	byteVal     byte
	int32Val    int32
	uint32Val   uint32
	floatVal    float32
	stringVal   string
	int64Val    int64
	uint64Val   uint64
	arrayVal    []Value
	enumDefName string
	enumVariant string
	objectVal   *Object
}

// Kind reports which alternative v holds.
func (v Value) Kind() Kind { return v.kind }

func Bool(b bool) Value         { return Value{kind: KindBool, boolVal: b} }
func Byte(b byte) Value         { return Value{kind: KindByte, byteVal: b} }
func Int32(i int32) Value       { return Value{kind: KindInt32, int32Val: i} }
func UInt32(u uint32) Value     { return Value{kind: KindUInt32, uint32Val: u} }
func Float32(f float32) Value   { return Value{kind: KindFloat32, floatVal: f} }
func String(s string) Value     { return Value{kind: KindString, stringVal: s} }
func Int64(i int64) Value       { return Value{kind: KindInt64, int64Val: i} }
func UInt64(u uint64) Value     { return Value{kind: KindUInt64, uint64Val: u} }
func Array(elems []Value) Value { return Value{kind: KindArray, arrayVal: elems} }
func Enum(defName, variant string) Value {
	return Value{kind: KindEnum, enumDefName: defName, enumVariant: variant}
}
func NewObject(o *Object) Value { return Value{kind: KindObject, objectVal: o} }

// AsBool returns v's bool payload. ok is false if v is not a KindBool.
func (v Value) AsBool() (bool, bool) { return v.boolVal, v.kind == KindBool }

// AsByte returns v's byte payload. ok is false if v is not a KindByte.
func (v Value) AsByte() (byte, bool) { return v.byteVal, v.kind == KindByte }

// AsInt32 returns v's int32 payload. ok is false if v is not a KindInt32.
func (v Value) AsInt32() (int32, bool) { return v.int32Val, v.kind == KindInt32 }

// AsUInt32 returns v's uint32 payload. ok is false if v is not a KindUInt32.
func (v Value) AsUInt32() (uint32, bool) { return v.uint32Val, v.kind == KindUInt32 }

// AsFloat32 returns v's float32 payload. ok is false if v is not a KindFloat32.
func (v Value) AsFloat32() (float32, bool) { return v.floatVal, v.kind == KindFloat32 }

// AsString returns v's string payload. ok is false if v is not a KindString.
func (v Value) AsString() (string, bool) { return v.stringVal, v.kind == KindString }

// AsInt64 returns v's int64 payload. ok is false if v is not a KindInt64.
func (v Value) AsInt64() (int64, bool) { return v.int64Val, v.kind == KindInt64 }

// AsUInt64 returns v's uint64 payload. ok is false if v is not a KindUInt64.
func (v Value) AsUInt64() (uint64, bool) { return v.uint64Val, v.kind == KindUInt64 }

// AsArray returns v's element slice. ok is false if v is not a KindArray.
func (v Value) AsArray() ([]Value, bool) { return v.arrayVal, v.kind == KindArray }

// AsEnum returns v's defining enum name and variant name. ok is false if v
// is not a KindEnum.
func (v Value) AsEnum() (defName, variant string, ok bool) {
	return v.enumDefName, v.enumVariant, v.kind == KindEnum
}

// AsObject returns v's Object payload. ok is false if v is not a KindObject.
func (v Value) AsObject() (*Object, bool) { return v.objectVal, v.kind == KindObject }

func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return fmt.Sprintf("%t", v.boolVal)
	case KindByte:
		return fmt.Sprintf("%d", v.byteVal)
	case KindInt32:
		return fmt.Sprintf("%d", v.int32Val)
	case KindUInt32:
		return fmt.Sprintf("%d", v.uint32Val)
	case KindFloat32:
		return fmt.Sprintf("%g", v.floatVal)
	case KindString:
		return v.stringVal
	case KindInt64:
		return fmt.Sprintf("%d", v.int64Val)
	case KindUInt64:
		return fmt.Sprintf("%d", v.uint64Val)
	case KindArray:
		return fmt.Sprintf("array[%d]", len(v.arrayVal))
	case KindEnum:
		return fmt.Sprintf("%s.%s", v.enumDefName, v.enumVariant)
	case KindObject:
		if v.objectVal == nil {
			return "object(nil)"
		}
		return fmt.Sprintf("%s{...}", v.objectVal.TypeName)
	default:
		return "<invalid value>"
	}
}
