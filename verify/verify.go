// Package verify performs the single post-parse pass that enforces every
// semantic invariant a schema.Schema must satisfy before it can be encoded
// or used to drive the dynamic value codec: unique non-reserved names,
// resolved field types, unique/bounded/positive struct and message field
// ids, and acyclic struct nesting.
package verify

import (
	"github.com/eriksen/brineschema/brineerr"
	"github.com/eriksen/brineschema/schema"
)

// Verify checks s against every invariant in the data model and returns the
// first violation found, wrapping brineerr.ErrVerify.
func Verify(s schema.Schema) error {
	definedTypes := make(map[string]bool, schema.NativeTypeCount+len(s.Definitions))
	for i := 0; i < schema.NativeTypeCount; i++ {
		definedTypes[schema.NativeType(i).String()] = true
	}

	reserved := make(map[string]bool, len(schema.ReservedNames))
	for _, name := range schema.ReservedNames {
		reserved[name] = true
	}

	definitionsByName := make(map[string]schema.Definition, len(s.Definitions))

	for _, def := range s.Definitions {
		if definedTypes[def.Name] {
			return brineerr.Verify(def.Pos, "the type %q is defined twice", def.Name)
		}
		if reserved[def.Name] {
			return brineerr.Verify(def.Pos, "the type name %q is reserved", def.Name)
		}
		definedTypes[def.Name] = true
		definitionsByName[def.Name] = def
	}

	for _, def := range s.Definitions {
		if def.Kind == schema.KindEnum {
			continue
		}

		for _, field := range def.Fields {
			if field.TypeName != "" && !definedTypes[field.TypeName] {
				return brineerr.Verify(field.Pos, "the type %q is not defined for field %q", field.TypeName, field.Name)
			}
		}

		seenIDs := make(map[int]bool, len(def.Fields))
		for _, field := range def.Fields {
			if seenIDs[field.ID] {
				return brineerr.Verify(field.Pos, "the id for field %q is used twice", field.Name)
			}
			if field.ID <= 0 {
				return brineerr.Verify(field.Pos, "the id for field %q must be positive", field.Name)
			}
			if field.ID > len(def.Fields) {
				return brineerr.Verify(field.Pos, "the id for field %q cannot be larger than %d", field.Name, len(def.Fields))
			}
			seenIDs[field.ID] = true
		}
	}

	return checkRecursion(s, definitionsByName)
}

type recursionState int

const (
	stateUnseen recursionState = iota
	stateOnStack
	stateDone
)

// checkRecursion runs a three-colour DFS over the subgraph of struct
// definitions connected by non-array field references. References through
// arrays, or into messages/enums, do not propagate the recursion relation.
func checkRecursion(s schema.Schema, byName map[string]schema.Definition) error {
	state := make(map[string]recursionState, len(s.Definitions))

	var visit func(name string) error
	visit = func(name string) error {
		def, ok := byName[name]
		if !ok || def.Kind != schema.KindStruct {
			return nil
		}

		switch state[name] {
		case stateOnStack:
			return brineerr.Verify(def.Pos, "recursive nesting of %q is not allowed", name)
		case stateDone:
			return nil
		}

		state[name] = stateOnStack
		for _, field := range def.Fields {
			if field.IsArray {
				continue
			}
			if field.TypeName == "" {
				continue
			}
			if err := visit(field.TypeName); err != nil {
				return err
			}
		}
		state[name] = stateDone
		return nil
	}

	for _, def := range s.Definitions {
		if err := visit(def.Name); err != nil {
			return err
		}
	}
	return nil
}
