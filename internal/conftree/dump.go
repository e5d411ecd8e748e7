package conftree

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented plain-text rendering of the section and its
// subtree, attributes first, matching declaration order.
func Dump(w io.Writer, s *Section) error {
	return dumpSection(w, s, 0)
}

func dumpSection(w io.Writer, s *Section, depth int) error {
	indent := strings.Repeat("  ", depth)
	header := s.Name()
	if s.Value() != "" {
		header += " = " + s.Value()
	}
	if _, err := fmt.Fprintf(w, "%s%s\n", indent, header); err != nil {
		return err
	}
	for _, a := range s.Attrs() {
		if _, err := fmt.Fprintf(w, "%s  $%s = %s\n", indent, a.Name(), a.Value()); err != nil {
			return err
		}
	}
	for _, c := range s.Children() {
		if err := dumpSection(w, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}
