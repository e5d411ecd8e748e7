package atom

import "fmt"

// MaxLength is the maximum number of characters an Atom can hold.
const MaxLength = 8

// Atom is a short identifier packed into a uint64. The zero Atom
// represents the empty string.
type Atom uint64

// Zero is the empty Atom.
const Zero Atom = 0

func validChar(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= 'a' && c <= 'z':
		return true
	case c == '_' || c == '-':
		return true
	}
	return false
}

// Encode packs a string into an Atom. The value must be at most eight
// characters long and contain only [0-9A-Za-z_-]. The empty string
// encodes to the zero Atom.
func Encode(s string) (Atom, error) {
	if len(s) > MaxLength {
		return Zero, fmt.Errorf("atom: value %q exceeds %d characters", s, MaxLength)
	}
	var a uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !validChar(c) {
			return Zero, fmt.Errorf("atom: invalid character %q in %q", c, s)
		}
		a |= uint64(c) << (8 * uint(i))
	}
	return Atom(a), nil
}

// MustEncode is like Encode but panics on invalid input. It is intended
// for compile-time-constant identifiers.
func MustEncode(s string) Atom {
	a, err := Encode(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Decode unpacks an Atom back into its string form. It validates every
// byte so that a corrupted value cannot round-trip silently.
func Decode(a Atom) (string, error) {
	if a == Zero {
		return "", nil
	}
	buf := make([]byte, 0, MaxLength)
	v := uint64(a)
	for i := 0; i < MaxLength; i++ {
		c := byte(v & 0xff)
		if c == 0 {
			break
		}
		if !validChar(c) {
			return "", fmt.Errorf("atom: invalid character byte %#x in value %d", c, uint64(a))
		}
		buf = append(buf, c)
		v >>= 8
	}
	return string(buf), nil
}

// IsZero reports whether the Atom is the empty identifier.
func (a Atom) IsZero() bool { return a == Zero }

// String implements fmt.Stringer. Invalid atoms render as an error
// marker rather than panicking inside formatting code.
func (a Atom) String() string {
	s, err := Decode(a)
	if err != nil {
		return fmt.Sprintf("<invalid atom %d>", uint64(a))
	}
	return s
}
