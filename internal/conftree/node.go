package conftree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/skyrig/chassis/internal/atom"
	"github.com/skyrig/chassis/internal/entityid"
)

// Node is the read surface common to sections and attributes.
type Node interface {
	Name() string
	Value() string
	Exists() bool
	IsSection() bool
	Parent() *Section
	Path() string

	AsString(dflt string) string
	AsInt(dflt int64) (int64, error)
	AsFloat(dflt float64) (float64, error)
	AsBool(dflt bool) (bool, error)
	AsAtom(dflt atom.Atom) (atom.Atom, error)
	AsEntityID(dflt entityid.EntityID) (entityid.EntityID, error)
}

// node carries the name/value behavior shared by sections and attributes.
type node struct {
	name   string
	value  string
	parent *Section
	exists bool
}

func (n *node) Name() string  { return n.name }
func (n *node) Value() string { return n.value }
func (n *node) Exists() bool  { return n.exists }

func (n *node) sameName(name string) bool {
	return n.exists && strings.EqualFold(n.name, name)
}

// Parent returns the owning section, or the empty sentinel for roots and
// sentinels.
func (n *node) Parent() *Section {
	if n.parent == nil {
		return emptySection
	}
	return n.parent
}

// AsString returns the node value, or dflt when the node is absent or
// its value is empty.
func (n *node) AsString(dflt string) string {
	if !n.exists || n.value == "" {
		return dflt
	}
	return n.value
}

// AsInt parses the value as an integer, honoring 0x/0o/0b prefixes.
func (n *node) AsInt(dflt int64) (int64, error) {
	if !n.exists || n.value == "" {
		return dflt, nil
	}
	v, err := strconv.ParseInt(strings.TrimSpace(n.value), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("conftree: invalid int value %q", n.value)
	}
	return v, nil
}

// AsFloat parses the value as a float64.
func (n *node) AsFloat(dflt float64) (float64, error) {
	if !n.exists || n.value == "" {
		return dflt, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(n.value), 64)
	if err != nil {
		return 0, fmt.Errorf("conftree: invalid float value %q", n.value)
	}
	return v, nil
}

// AsBool parses the value as a boolean, accepting the usual spellings
// (true/t/yes/y/1/on and their negatives).
func (n *node) AsBool(dflt bool) (bool, error) {
	if !n.exists || n.value == "" {
		return dflt, nil
	}
	switch strings.ToLower(strings.TrimSpace(n.value)) {
	case "true", "t", "yes", "y", "1", "on":
		return true, nil
	case "false", "f", "no", "n", "0", "off":
		return false, nil
	}
	return false, fmt.Errorf("conftree: invalid bool value %q", n.value)
}

// AsAtom parses the value as an atom identifier.
func (n *node) AsAtom(dflt atom.Atom) (atom.Atom, error) {
	if !n.exists || n.value == "" {
		return dflt, nil
	}
	a, err := atom.Encode(strings.TrimSpace(n.value))
	if err != nil {
		return atom.Zero, err
	}
	return a, nil
}

// AsEntityID parses the value as an entity address.
func (n *node) AsEntityID(dflt entityid.EntityID) (entityid.EntityID, error) {
	if !n.exists || n.value == "" {
		return dflt, nil
	}
	return entityid.Parse(strings.TrimSpace(n.value))
}
