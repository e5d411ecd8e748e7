// internal/entityid/parser.go
package entityid

import (
	"fmt"
	"strings"

	"github.com/skyrig/chassis/internal/atom"
)

const (
	sysDivider    = "::"
	typePrefix    = "@"
	schemaDivider = "."
)

// TryParse parses a string as an EntityID, returning ok=false when the
// value does not match the grammar. It never returns an error; callers
// that need one should use Parse.
func TryParse(raw string) (EntityID, bool) {
	if len(raw) < 4 {
		return EntityID{}, false
	}

	sysIdx := strings.Index(raw, sysDivider)
	if sysIdx < 0 {
		return EntityID{}, false
	}

	prefix := raw[:sysIdx]
	address := raw[sysIdx+len(sysDivider):]
	if address == "" {
		return EntityID{}, false
	}

	var sys, typ, schema atom.Atom
	tpIdx := strings.Index(prefix, typePrefix)
	if tpIdx < 0 {
		// system::address form
		if prefix == "" {
			return EntityID{}, false
		}
		a, err := atom.Encode(prefix)
		if err != nil {
			return EntityID{}, false
		}
		sys = a
	} else {
		typeSchema := prefix[:tpIdx]
		system := prefix[tpIdx+len(typePrefix):]
		if typeSchema == "" || system == "" {
			return EntityID{}, false
		}
		a, err := atom.Encode(system)
		if err != nil {
			return EntityID{}, false
		}
		sys = a

		schemaIdx := strings.Index(typeSchema, schemaDivider)
		if schemaIdx < 0 {
			// type@system::address form
			a, err := atom.Encode(typeSchema)
			if err != nil {
				return EntityID{}, false
			}
			typ = a
		} else {
			typePart := typeSchema[:schemaIdx]
			schemaPart := typeSchema[schemaIdx+len(schemaDivider):]
			if typePart == "" || schemaPart == "" {
				return EntityID{}, false
			}
			ta, err := atom.Encode(typePart)
			if err != nil {
				return EntityID{}, false
			}
			sa, err := atom.Encode(schemaPart)
			if err != nil {
				return EntityID{}, false
			}
			typ, schema = ta, sa
		}
	}

	return EntityID{System: sys, Type: typ, Schema: schema, Address: address}, true
}

// Parse parses a string as an EntityID, returning an error when the
// value does not match the grammar.
func Parse(raw string) (EntityID, error) {
	id, ok := TryParse(raw)
	if !ok {
		return EntityID{}, fmt.Errorf("entityid: value %q is not parsable as an entity id", raw)
	}
	return id, nil
}
