package value

import (
	"fmt"

	"github.com/eriksen/brineschema/bb"
	"github.com/eriksen/brineschema/brineerr"
	"github.com/eriksen/brineschema/schema"
)

// definitionInfo caches the per-definition lookups the codec needs on every
// encode/decode call, so a schema's O(n) schema.Definition.FieldByID scans
// are paid once, at NewCodec time, rather than per message field.
type definitionInfo struct {
	def         schema.Definition
	fieldByName map[string]schema.Field
	fieldByID   map[int]schema.Field
}

// Codec encodes and decodes dynamic Values against one fixed, already
// verified schema.Schema. A Codec is safe for concurrent use by multiple
// goroutines: it never mutates state after construction.
type Codec struct {
	definitionIndex map[string]int
	defs            map[string]definitionInfo
}

// NewCodec builds the lookup tables for s. The caller is responsible for
// having already run verify.Verify on s; NewCodec does not re-check schema
// invariants.
func NewCodec(s schema.Schema) (*Codec, error) {
	c := &Codec{
		definitionIndex: make(map[string]int, len(s.Definitions)),
		defs:            make(map[string]definitionInfo, len(s.Definitions)),
	}

	for i, def := range s.Definitions {
		c.definitionIndex[def.Name] = i

		byName := make(map[string]schema.Field, len(def.Fields))
		byID := make(map[int]schema.Field, len(def.Fields))
		for _, f := range def.Fields {
			byName[f.Name] = f
			byID[f.ID] = f
		}
		c.defs[def.Name] = definitionInfo{def: def, fieldByName: byName, fieldByID: byID}
	}

	return c, nil
}

func (c *Codec) definition(name string) (definitionInfo, error) {
	info, ok := c.defs[name]
	if !ok {
		return definitionInfo{}, fmt.Errorf("%w: %q is not a definition in this schema", brineerr.ErrValueEncode, name)
	}
	return info, nil
}

// Encode serializes v, which must describe an instance of the definition
// named typeName, using that definition's wire layout (struct: every field
// required in declaration order; message: present fields only, as id+payload
// pairs terminated by a 0x00 sentinel; enum: the field id of the named
// variant).
func (c *Codec) Encode(typeName string, v Value) ([]byte, error) {
	w := bb.NewWriter()
	if err := c.encodeScalar(w, typeName, v); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Decode parses b as an instance of the definition named typeName.
func (c *Codec) Decode(typeName string, b []byte) (Value, error) {
	r := bb.NewReader(b)
	return c.decodeScalar(r, typeName)
}

func (c *Codec) encodeTyped(w *bb.Writer, typeName string, isArray bool, v Value) error {
	if !isArray {
		return c.encodeScalar(w, typeName, v)
	}

	elems, ok := v.AsArray()
	if !ok {
		return fmt.Errorf("%w: expected an array value for type %q[]", brineerr.ErrValueEncode, typeName)
	}
	w.WriteVarUint32(uint32(len(elems)))
	for _, elem := range elems {
		if err := c.encodeScalar(w, typeName, elem); err != nil {
			return err
		}
	}
	return nil
}

func (c *Codec) encodeScalar(w *bb.Writer, typeName string, v Value) error {
	if native, ok := schema.NativeTypeByName(typeName); ok {
		return c.encodeNative(w, native, v)
	}

	info, err := c.definition(typeName)
	if err != nil {
		return err
	}

	switch info.def.Kind {
	case schema.KindEnum:
		return c.encodeEnum(w, info, v)
	case schema.KindStruct:
		return c.encodeStruct(w, info, v)
	case schema.KindMessage:
		return c.encodeMessage(w, info, v)
	default:
		return fmt.Errorf("%w: %q has an unrecognized kind", brineerr.ErrValueEncode, typeName)
	}
}

func (c *Codec) encodeNative(w *bb.Writer, native schema.NativeType, v Value) error {
	switch native {
	case schema.NativeBool:
		b, ok := v.AsBool()
		if !ok {
			return fmt.Errorf("%w: expected bool, got %s", brineerr.ErrValueEncode, v.Kind())
		}
		w.WriteBool(b)
	case schema.NativeByte:
		b, ok := v.AsByte()
		if !ok {
			return fmt.Errorf("%w: expected byte, got %s", brineerr.ErrValueEncode, v.Kind())
		}
		_ = w.WriteByte(b)
	case schema.NativeInt:
		i, ok := v.AsInt32()
		if !ok {
			return fmt.Errorf("%w: expected int, got %s", brineerr.ErrValueEncode, v.Kind())
		}
		w.WriteVarInt32(i)
	case schema.NativeUInt:
		u, ok := v.AsUInt32()
		if !ok {
			return fmt.Errorf("%w: expected uint, got %s", brineerr.ErrValueEncode, v.Kind())
		}
		w.WriteVarUint32(u)
	case schema.NativeFloat:
		f, ok := v.AsFloat32()
		if !ok {
			return fmt.Errorf("%w: expected float, got %s", brineerr.ErrValueEncode, v.Kind())
		}
		w.WriteVarFloat(f)
	case schema.NativeString:
		s, ok := v.AsString()
		if !ok {
			return fmt.Errorf("%w: expected string, got %s", brineerr.ErrValueEncode, v.Kind())
		}
		w.WriteString(s)
	case schema.NativeInt64:
		i, ok := v.AsInt64()
		if !ok {
			return fmt.Errorf("%w: expected int64, got %s", brineerr.ErrValueEncode, v.Kind())
		}
		w.WriteVarInt64(i)
	case schema.NativeUInt64:
		u, ok := v.AsUInt64()
		if !ok {
			return fmt.Errorf("%w: expected uint64, got %s", brineerr.ErrValueEncode, v.Kind())
		}
		w.WriteVarUint64(u)
	default:
		return fmt.Errorf("%w: unrecognized native type %v", brineerr.ErrValueEncode, native)
	}
	return nil
}

func (c *Codec) encodeEnum(w *bb.Writer, info definitionInfo, v Value) error {
	defName, variant, ok := v.AsEnum()
	if !ok {
		return fmt.Errorf("%w: expected enum value for %q, got %s", brineerr.ErrValueEncode, info.def.Name, v.Kind())
	}
	if defName != info.def.Name {
		return fmt.Errorf("%w: expected enum %q, got enum %q", brineerr.ErrValueEncode, info.def.Name, defName)
	}
	field, ok := info.fieldByName[variant]
	if !ok {
		return fmt.Errorf("%w: %q has no variant %q", brineerr.ErrValueEncode, info.def.Name, variant)
	}
	w.WriteVarUint32(uint32(field.ID))
	return nil
}

func (c *Codec) encodeStruct(w *bb.Writer, info definitionInfo, v Value) error {
	obj, ok := v.AsObject()
	if !ok {
		return fmt.Errorf("%w: expected object value for %q, got %s", brineerr.ErrValueEncode, info.def.Name, v.Kind())
	}
	for _, field := range info.def.Fields {
		fv, present := obj.Fields[field.Name]
		if !present {
			return fmt.Errorf("%w: struct %q is missing required field %q", brineerr.ErrMissingField, info.def.Name, field.Name)
		}
		if err := c.encodeTyped(w, field.TypeName, field.IsArray, fv); err != nil {
			return err
		}
	}
	return nil
}

func (c *Codec) encodeMessage(w *bb.Writer, info definitionInfo, v Value) error {
	obj, ok := v.AsObject()
	if !ok {
		return fmt.Errorf("%w: expected object value for %q, got %s", brineerr.ErrValueEncode, info.def.Name, v.Kind())
	}
	for _, field := range info.def.Fields {
		fv, present := obj.Fields[field.Name]
		if !present {
			continue
		}
		w.WriteVarUint32(uint32(field.ID))
		if err := c.encodeTyped(w, field.TypeName, field.IsArray, fv); err != nil {
			return err
		}
	}
	w.WriteVarUint32(0)
	return nil
}

func (c *Codec) decodeTyped(r *bb.Reader, typeName string, isArray bool) (Value, error) {
	if !isArray {
		return c.decodeScalar(r, typeName)
	}

	count, err := r.ReadVarUint32()
	if err != nil {
		return Value{}, fmt.Errorf("%w: reading array length for %q[]: %v", brineerr.ErrValueDecode, typeName, err)
	}
	elems := make([]Value, 0, count)
	for i := uint32(0); i < count; i++ {
		elem, err := c.decodeScalar(r, typeName)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, elem)
	}
	return Array(elems), nil
}

func (c *Codec) decodeScalar(r *bb.Reader, typeName string) (Value, error) {
	if native, ok := schema.NativeTypeByName(typeName); ok {
		return c.decodeNative(r, native)
	}

	info, err := c.definition(typeName)
	if err != nil {
		return Value{}, err
	}

	switch info.def.Kind {
	case schema.KindEnum:
		return c.decodeEnum(r, info)
	case schema.KindStruct:
		return c.decodeStruct(r, info)
	case schema.KindMessage:
		return c.decodeMessage(r, info)
	default:
		return Value{}, fmt.Errorf("%w: %q has an unrecognized kind", brineerr.ErrValueDecode, typeName)
	}
}

func (c *Codec) decodeNative(r *bb.Reader, native schema.NativeType) (Value, error) {
	switch native {
	case schema.NativeBool:
		b, err := r.ReadBool()
		return Bool(b), wrapDecode(err)
	case schema.NativeByte:
		b, err := r.ReadByte()
		return Byte(b), wrapDecode(err)
	case schema.NativeInt:
		i, err := r.ReadVarInt32()
		return Int32(i), wrapDecode(err)
	case schema.NativeUInt:
		u, err := r.ReadVarUint32()
		return UInt32(u), wrapDecode(err)
	case schema.NativeFloat:
		f, err := r.ReadVarFloat()
		return Float32(f), wrapDecode(err)
	case schema.NativeString:
		s, err := r.ReadString()
		return String(s), wrapDecode(err)
	case schema.NativeInt64:
		i, err := r.ReadVarInt64()
		return Int64(i), wrapDecode(err)
	case schema.NativeUInt64:
		u, err := r.ReadVarUint64()
		return UInt64(u), wrapDecode(err)
	default:
		return Value{}, fmt.Errorf("%w: unrecognized native type %v", brineerr.ErrValueDecode, native)
	}
}

func wrapDecode(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", brineerr.ErrValueDecode, err)
}

func (c *Codec) decodeEnum(r *bb.Reader, info definitionInfo) (Value, error) {
	id, err := r.ReadVarUint32()
	if err != nil {
		return Value{}, fmt.Errorf("%w: reading enum id for %q: %v", brineerr.ErrValueDecode, info.def.Name, err)
	}
	field, ok := info.fieldByID[int(id)]
	if !ok {
		return Value{}, fmt.Errorf("%w: %q has no variant with id %d", brineerr.ErrValueDecode, info.def.Name, id)
	}
	// The verifier allows two variants to share a value; such an id cannot
	// be mapped back to one variant, so it is rejected here.
	for _, other := range info.def.Fields {
		if other.ID == field.ID && other.Name != field.Name {
			return Value{}, fmt.Errorf("%w: %q has more than one variant with id %d", brineerr.ErrValueDecode, info.def.Name, id)
		}
	}
	return Enum(info.def.Name, field.Name), nil
}

func (c *Codec) decodeStruct(r *bb.Reader, info definitionInfo) (Value, error) {
	fields := make(map[string]Value, len(info.def.Fields))
	for _, field := range info.def.Fields {
		fv, err := c.decodeTyped(r, field.TypeName, field.IsArray)
		if err != nil {
			return Value{}, fmt.Errorf("%w: struct %q field %q: %v", brineerr.ErrValueDecode, info.def.Name, field.Name, err)
		}
		fields[field.Name] = fv
	}
	return NewObject(&Object{TypeName: info.def.Name, Fields: fields}), nil
}

func (c *Codec) decodeMessage(r *bb.Reader, info definitionInfo) (Value, error) {
	fields := make(map[string]Value, len(info.def.Fields))
	for {
		id, err := r.ReadVarUint32()
		if err != nil {
			return Value{}, fmt.Errorf("%w: reading field id for message %q: %v", brineerr.ErrValueDecode, info.def.Name, err)
		}
		if id == 0 {
			break
		}
		field, ok := info.fieldByID[int(id)]
		if !ok {
			return Value{}, fmt.Errorf("%w: message %q has no field with id %d", brineerr.ErrValueDecode, info.def.Name, id)
		}
		fv, err := c.decodeTyped(r, field.TypeName, field.IsArray)
		if err != nil {
			return Value{}, fmt.Errorf("%w: message %q field %q: %v", brineerr.ErrValueDecode, info.def.Name, field.Name, err)
		}
		// Last write wins: a duplicate id simply overwrites the prior value.
		fields[field.Name] = fv
	}
	return NewObject(&Object{TypeName: info.def.Name, Fields: fields}), nil
}
