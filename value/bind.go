package value

import (
	"fmt"
	"reflect"
	"sync"
)

// structFieldMap caches, per concrete Go struct type, the mapping from a
// schema field name (as given in a `brine:"name"` tag, or the Go field name
// verbatim when untagged) to that struct field's index. Computing this by
// reflection on every call would dominate decode cost for hot struct types.
var structFieldMap sync.Map // map[reflect.Type]map[string]int

func fieldIndexByTag(t reflect.Type) map[string]int {
	if cached, ok := structFieldMap.Load(t); ok {
		return cached.(map[string]int)
	}

	m := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := sf.Tag.Get("brine")
		if name == "" {
			name = sf.Name
		}
		m[name] = i
	}

	structFieldMap.Store(t, m)
	return m
}

// Bind copies the fields of an object-kind Value into the exported fields of
// the struct pointed to by dst, matching a schema field to a Go field by its
// `brine` struct tag or, absent a tag, by identical name. Bind does not
// recurse into nested object or array values; it is meant for flattening a
// decoded top-level struct or message into a typed Go value, not as a full
// object-graph mapper.
func Bind(v Value, dst any) error {
	obj, ok := v.AsObject()
	if !ok {
		return fmt.Errorf("value: Bind requires an object value, got %s", v.Kind())
	}

	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("value: Bind requires a non-nil pointer, got %T", dst)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("value: Bind requires a pointer to a struct, got %T", dst)
	}

	indexByName := fieldIndexByTag(rv.Type())

	for name, fv := range obj.Fields {
		idx, ok := indexByName[name]
		if !ok {
			continue
		}
		field := rv.Field(idx)
		if !field.CanSet() {
			continue
		}
		if err := assign(field, fv); err != nil {
			return fmt.Errorf("value: field %q: %w", name, err)
		}
	}
	return nil
}

func assign(dst reflect.Value, v Value) error {
	switch v.Kind() {
	case KindBool:
		b, _ := v.AsBool()
		return setValue(dst, reflect.ValueOf(b))
	case KindByte:
		b, _ := v.AsByte()
		return setValue(dst, reflect.ValueOf(b))
	case KindInt32:
		i, _ := v.AsInt32()
		return setValue(dst, reflect.ValueOf(i))
	case KindUInt32:
		u, _ := v.AsUInt32()
		return setValue(dst, reflect.ValueOf(u))
	case KindFloat32:
		f, _ := v.AsFloat32()
		return setValue(dst, reflect.ValueOf(f))
	case KindString:
		s, _ := v.AsString()
		return setValue(dst, reflect.ValueOf(s))
	case KindInt64:
		i, _ := v.AsInt64()
		return setValue(dst, reflect.ValueOf(i))
	case KindUInt64:
		u, _ := v.AsUInt64()
		return setValue(dst, reflect.ValueOf(u))
	case KindEnum:
		_, variant, _ := v.AsEnum()
		return setValue(dst, reflect.ValueOf(variant))
	default:
		return fmt.Errorf("unsupported kind %s for a flat bind target", v.Kind())
	}
}

func setValue(dst, src reflect.Value) error {
	if !src.Type().ConvertibleTo(dst.Type()) {
		return fmt.Errorf("cannot assign %s into %s", src.Type(), dst.Type())
	}
	dst.Set(src.Convert(dst.Type()))
	return nil
}
