// Package binschema encodes and decodes a schema.Schema as the compact,
// self-describing binary artifact defined by the wire format:
//
//	schema := defn_count defn*
//	defn   := name:string kind:byte field_count:varuint field*
//	field  := name:string type_num:varint is_array:byte id:varuint
//
// The package name, field source positions, and deprecation flags are not
// part of this wire format; decoding a schema that was encoded from a
// verified schema always reproduces it modulo those three fields.
package binschema

import (
	"fmt"

	"github.com/eriksen/brineschema/bb"
	"github.com/eriksen/brineschema/brineerr"
	"github.com/eriksen/brineschema/schema"
)

// Encode serializes s to its binary schema form. Every field's TypeName
// must resolve to a native type or to another definition in s; an
// unresolved type reference is an encode error.
func Encode(s schema.Schema) ([]byte, error) {
	w := bb.NewWriter()
	w.WriteVarUint32(uint32(len(s.Definitions)))

	for _, def := range s.Definitions {
		w.WriteString(def.Name)
		w.WriteByte(byte(def.Kind))
		w.WriteVarUint32(uint32(len(def.Fields)))

		for _, field := range def.Fields {
			w.WriteString(field.Name)

			typeNum, err := typeNumber(s, def, field)
			if err != nil {
				return nil, err
			}
			w.WriteVarInt32(typeNum)

			var flags byte
			if field.IsArray {
				flags = 1
			}
			w.WriteByte(flags)
			w.WriteVarUint32(uint32(field.ID))
		}
	}

	return w.Bytes(), nil
}

func typeNumber(s schema.Schema, def schema.Definition, field schema.Field) (int32, error) {
	if def.Kind == schema.KindEnum {
		return 0, nil
	}
	if native, ok := schema.NativeTypeByName(field.TypeName); ok {
		return native.TypeNumber(), nil
	}
	if idx, ok := s.DefinitionIndex(field.TypeName); ok {
		return int32(idx), nil
	}
	return 0, fmt.Errorf("%w: field %q references unresolved type %q", brineerr.ErrSchemaEncode, field.Name, field.TypeName)
}

type rawField struct {
	name    string
	typeNum int32
	isArray bool
	id      int
}

type rawDefinition struct {
	name   string
	kind   schema.Kind
	fields []rawField
}

// Decode parses a binary schema artifact back into a schema.Schema. Package
// name is unset (HasPackage false) and every Position is the zero value.
// Trailing bytes after the last definition, if any, are left unread; use
// DecodeConsumed to detect them.
func Decode(data []byte) (schema.Schema, error) {
	s, _, err := DecodeConsumed(data)
	return s, err
}

// DecodeConsumed behaves like Decode but additionally reports how many of
// data's trailing bytes, if any, were left unread by the decode. A caller
// that expects data to hold nothing but the schema (no appended envelope or
// padding) can treat a nonzero count as suspicious.
func DecodeConsumed(data []byte) (schema.Schema, int, error) {
	r := bb.NewReader(data)

	defnCount, err := r.ReadVarUint32()
	if err != nil {
		return schema.Schema{}, 0, fmt.Errorf("%w: reading definition count: %v", brineerr.ErrSchemaDecode, err)
	}

	raws := make([]rawDefinition, 0, defnCount)
	for i := uint32(0); i < defnCount; i++ {
		name, err := r.ReadString()
		if err != nil {
			return schema.Schema{}, 0, fmt.Errorf("%w: reading definition name: %v", brineerr.ErrSchemaDecode, err)
		}

		kindByte, err := r.ReadByte()
		if err != nil {
			return schema.Schema{}, 0, fmt.Errorf("%w: reading kind for %q: %v", brineerr.ErrSchemaDecode, name, err)
		}
		kind, err := kindFromByte(kindByte)
		if err != nil {
			return schema.Schema{}, 0, fmt.Errorf("%w: definition %q: %v", brineerr.ErrSchemaDecode, name, err)
		}

		fieldCount, err := r.ReadVarUint32()
		if err != nil {
			return schema.Schema{}, 0, fmt.Errorf("%w: reading field count for %q: %v", brineerr.ErrSchemaDecode, name, err)
		}

		fields := make([]rawField, 0, fieldCount)
		for j := uint32(0); j < fieldCount; j++ {
			fieldName, err := r.ReadString()
			if err != nil {
				return schema.Schema{}, 0, fmt.Errorf("%w: reading field name in %q: %v", brineerr.ErrSchemaDecode, name, err)
			}
			typeNum, err := r.ReadVarInt32()
			if err != nil {
				return schema.Schema{}, 0, fmt.Errorf("%w: reading type number for %q.%q: %v", brineerr.ErrSchemaDecode, name, fieldName, err)
			}
			flags, err := r.ReadByte()
			if err != nil {
				return schema.Schema{}, 0, fmt.Errorf("%w: reading flags for %q.%q: %v", brineerr.ErrSchemaDecode, name, fieldName, err)
			}
			id, err := r.ReadVarUint32()
			if err != nil {
				return schema.Schema{}, 0, fmt.Errorf("%w: reading id for %q.%q: %v", brineerr.ErrSchemaDecode, name, fieldName, err)
			}
			fields = append(fields, rawField{
				name:    fieldName,
				typeNum: typeNum,
				isArray: flags&1 != 0,
				id:      int(id),
			})
		}

		raws = append(raws, rawDefinition{name: name, kind: kind, fields: fields})
	}

	definitions := make([]schema.Definition, 0, len(raws))
	for _, raw := range raws {
		fields := make([]schema.Field, 0, len(raw.fields))
		for _, rf := range raw.fields {
			var typeName string
			if raw.kind != schema.KindEnum {
				resolved, err := resolveTypeNumber(rf.typeNum, raws)
				if err != nil {
					return schema.Schema{}, 0, fmt.Errorf("%w: field %q.%q: %v", brineerr.ErrSchemaDecode, raw.name, rf.name, err)
				}
				typeName = resolved
			}
			fields = append(fields, schema.Field{
				Name:     rf.name,
				TypeName: typeName,
				IsArray:  rf.isArray,
				ID:       rf.id,
			})
		}
		definitions = append(definitions, schema.Definition{
			Name:   raw.name,
			Kind:   raw.kind,
			Fields: fields,
		})
	}

	return schema.Schema{Definitions: definitions}, r.Remaining(), nil
}

func kindFromByte(b byte) (schema.Kind, error) {
	switch b {
	case 0:
		return schema.KindEnum, nil
	case 1:
		return schema.KindStruct, nil
	case 2:
		return schema.KindMessage, nil
	default:
		return 0, fmt.Errorf("invalid definition kind byte %d", b)
	}
}

func resolveTypeNumber(typeNum int32, raws []rawDefinition) (string, error) {
	if typeNum < 0 {
		index := int(^typeNum)
		if index < 0 || index >= schema.NativeTypeCount {
			return "", fmt.Errorf("invalid native type index %d", typeNum)
		}
		return schema.NativeType(index).String(), nil
	}
	index := int(typeNum)
	if index < 0 || index >= len(raws) {
		return "", fmt.Errorf("invalid definition index %d", typeNum)
	}
	return raws[index].name, nil
}
