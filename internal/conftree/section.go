package conftree

import (
	"fmt"
	"strconv"
	"strings"
)

// Section is a configuration tree node that can hold child sections and
// attributes.
type Section struct {
	node
	children []*Section
	attrs    []*Attr
}

// Attr is a leaf configuration node.
type Attr struct {
	node
}

// Shared sentinels returned for lookup misses. They are immutable:
// mutation attempts panic.
var (
	emptySection = &Section{}
	emptyAttr    = &Attr{}
)

// EmptySection returns the section sentinel for absent nodes.
func EmptySection() *Section { return emptySection }

// EmptyAttr returns the attribute sentinel for absent nodes.
func EmptyAttr() *Attr { return emptyAttr }

// NewRoot creates a new root section.
func NewRoot(name, value string) *Section {
	return &Section{node: node{name: strings.TrimSpace(name), value: value, exists: true}}
}

// IsSection implements Node.
func (s *Section) IsSection() bool { return true }

// IsSection implements Node.
func (a *Attr) IsSection() bool { return false }

// Root walks up to the topmost existing section.
func (s *Section) Root() *Section {
	cur := s
	for cur.parent != nil && cur.parent.exists {
		cur = cur.parent
	}
	return cur
}

// IsRoot reports whether the section has no existing parent.
func (s *Section) IsRoot() bool {
	return s.parent == nil || !s.parent.exists
}

// AddSection appends a child section and returns it. Adding to an absent
// node is a programmer error and panics.
func (s *Section) AddSection(name, value string) *Section {
	s.checkCanModify()
	child := &Section{node: node{name: strings.TrimSpace(name), value: value, parent: s, exists: true}}
	s.children = append(s.children, child)
	return child
}

// AddAttr appends an attribute node and returns it.
func (s *Section) AddAttr(name, value string) *Attr {
	s.checkCanModify()
	attr := &Attr{node: node{name: strings.TrimSpace(name), value: value, parent: s, exists: true}}
	s.attrs = append(s.attrs, attr)
	return attr
}

func (s *Section) checkCanModify() {
	if !s.exists {
		panic("conftree: cannot modify an absent section")
	}
}

// Children returns the child sections in declaration order.
func (s *Section) Children() []*Section {
	return append([]*Section(nil), s.children...)
}

// Attrs returns the attribute nodes in declaration order.
func (s *Section) Attrs() []*Attr {
	return append([]*Attr(nil), s.attrs...)
}

// Child returns the first child section with the given name, or the
// empty sentinel.
func (s *Section) Child(name string) *Section {
	for _, c := range s.children {
		if c.sameName(name) {
			return c
		}
	}
	return emptySection
}

// Attr returns the first attribute with the given name, or the empty
// sentinel.
func (s *Section) Attr(name string) *Attr {
	for _, a := range s.attrs {
		if a.sameName(name) {
			return a
		}
	}
	return emptyAttr
}

// ChildAt returns the child section at idx, or the empty sentinel.
func (s *Section) ChildAt(idx int) *Section {
	if idx < 0 || idx >= len(s.children) {
		return emptySection
	}
	return s.children[idx]
}

// AttrAt returns the attribute at idx, or the empty sentinel.
func (s *Section) AttrAt(idx int) *Attr {
	if idx < 0 || idx >= len(s.attrs) {
		return emptyAttr
	}
	return s.attrs[idx]
}

// Path returns the absolute path of the section from its root.
func (s *Section) Path() string {
	return nodePath(s, s.name, false)
}

// Path returns the absolute path of the attribute from its root.
func (a *Attr) Path() string {
	return nodePath(a, a.name, true)
}

func nodePath(n Node, name string, isAttr bool) string {
	parent := n.Parent()
	if !parent.Exists() {
		return "/"
	}

	prefix := ""
	if isAttr {
		prefix = "$"
	}
	segment := prefix + name
	if idx := siblingIndex(parent, n, name, isAttr); idx >= 0 {
		segment = fmt.Sprintf("%s[%d]", prefix, idx)
	}

	if parent.IsRoot() {
		return "/" + segment
	}
	return strings.TrimSuffix(parent.Path(), "/") + "/" + segment
}

// siblingIndex returns the position of n among same-named siblings, or
// -1 when the name is unique.
func siblingIndex(parent *Section, n Node, name string, isAttr bool) int {
	var siblings []Node
	if isAttr {
		for _, a := range parent.attrs {
			if a.sameName(name) {
				siblings = append(siblings, a)
			}
		}
	} else {
		for _, c := range parent.children {
			if c.sameName(name) {
				siblings = append(siblings, c)
			}
		}
	}
	if len(siblings) <= 1 {
		return -1
	}
	for i, sib := range siblings {
		if sib == n {
			return i
		}
	}
	return -1
}

// Navigate walks a path expression from this section and returns the
// addressed node. Misses yield empty sentinel nodes; prefixing the path
// with `!` makes a miss an error instead.
//
// Grammar: `/` anchors at the root, `..` steps to the parent, `$name`
// addresses an attribute, `[i]` a child (or `$[i]` an attribute) by
// index, `name[value]` a child by section value and `name[attr=value]`
// a child by attribute value.
func (s *Section) Navigate(path string) (Node, error) {
	working := strings.TrimSpace(path)
	if working == "" {
		return nil, fmt.Errorf("conftree: navigation path is empty")
	}

	required := false
	if strings.HasPrefix(working, "!") {
		required = true
		working = working[1:]
	}

	var current Node = s
	if strings.HasPrefix(working, "/") || strings.HasPrefix(working, "\\") {
		working = working[1:]
		current = s.Root()
	}

	if working != "" {
		var err error
		current, err = navigateSegments(current, strings.ReplaceAll(working, "\\", "/"), path)
		if err != nil {
			return nil, err
		}
	}

	if required && !current.Exists() {
		return nil, fmt.Errorf("conftree: required node not found at path %q", path)
	}
	return current, nil
}

func navigateSegments(current Node, working, fullPath string) (Node, error) {
	for _, seg := range strings.Split(working, "/") {
		if seg == "" {
			continue
		}
		if !current.Exists() {
			break
		}
		if seg == ".." {
			current = current.Parent()
			continue
		}

		section, ok := current.(*Section)
		if !ok {
			return nil, fmt.Errorf("conftree: path segment %q of %q addresses into a non-section node", seg, fullPath)
		}

		next, err := navigateOne(section, seg, fullPath)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

func navigateOne(section *Section, seg, fullPath string) (Node, error) {
	isAttr := false
	if strings.HasPrefix(seg, "$") {
		isAttr = true
		seg = strings.TrimSpace(seg[1:])
	}

	// Pure index form: [i] / $[i].
	if strings.HasPrefix(seg, "[") && strings.HasSuffix(seg, "]") {
		idx, err := strconv.Atoi(seg[1 : len(seg)-1])
		if err != nil {
			return nil, fmt.Errorf("conftree: invalid index in path %q", fullPath)
		}
		if isAttr {
			return section.AttrAt(idx), nil
		}
		return section.ChildAt(idx), nil
	}

	// Query form: name[value] / name[attr=value].
	if open := strings.Index(seg, "["); open >= 0 && strings.HasSuffix(seg, "]") && !isAttr {
		name := seg[:open]
		query := seg[open+1 : len(seg)-1]
		if eq := strings.Index(query, "="); eq >= 0 {
			attrName, attrValue := query[:eq], query[eq+1:]
			for _, child := range section.children {
				if child.sameName(name) && strings.EqualFold(child.Attr(attrName).Value(), attrValue) {
					return child, nil
				}
			}
			return emptySection, nil
		}
		for _, child := range section.children {
			if child.sameName(name) && strings.EqualFold(child.Value(), query) {
				return child, nil
			}
		}
		return emptySection, nil
	}

	if isAttr {
		return section.Attr(seg), nil
	}
	return section.Child(seg), nil
}
