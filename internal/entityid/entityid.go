// internal/entityid/entityid.go
package entityid

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/skyrig/chassis/internal/atom"
)

// EntityID identifies an object by an address string interpreted in the
// scope of a type/schema, which is in turn scoped by a system. The
// concept is close to a URI in intent.
type EntityID struct {
	System  atom.Atom
	Type    atom.Atom
	Schema  atom.Atom
	Address string
}

// New assembles an EntityID from its components.
func New(system, typ, schema atom.Atom, address string) EntityID {
	return EntityID{System: system, Type: typ, Schema: schema, Address: address}
}

// String renders the canonical minimal form: the type qualifier is
// omitted when zero, the schema sub-qualifier is omitted when zero.
func (e EntityID) String() string {
	var sb strings.Builder
	if !e.Type.IsZero() {
		sb.WriteString(e.Type.String())
		if !e.Schema.IsZero() {
			sb.WriteString(schemaDivider)
			sb.WriteString(e.Schema.String())
		}
		sb.WriteString(typePrefix)
	}
	sb.WriteString(e.System.String())
	sb.WriteString(sysDivider)
	sb.WriteString(e.Address)
	return sb.String()
}

// Equal checks component-wise equality between two EntityIDs.
func (e EntityID) Equal(other EntityID) bool {
	return e.System == other.System &&
		e.Type == other.Type &&
		e.Schema == other.Schema &&
		e.Address == other.Address
}

// IsCompositeAddress reports whether the address is a composite JSON
// object, i.e. starts with '{' and ends with '}' with no surrounding
// whitespace.
func (e EntityID) IsCompositeAddress() bool {
	return strings.HasPrefix(e.Address, "{") && strings.HasSuffix(e.Address, "}")
}

// CompositeAddress parses a composite JSON address into a map. It
// returns (nil, nil) when the address is not composite.
func (e EntityID) CompositeAddress() (map[string]any, error) {
	if !e.IsCompositeAddress() {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(e.Address), &m); err != nil {
		return nil, fmt.Errorf("entityid: invalid composite address: %w", err)
	}
	return m, nil
}
