// Package atom implements a fixed-width codec for short identifiers.
//
// An Atom packs up to eight characters from the set [0-9A-Za-z_-] into a
// single uint64, one byte per character, first character in the lowest
// byte. Atoms are meant for a small, finite vocabulary of identifiers
// (application ids, type names) where cheap equality and map keys matter
// more than arbitrary text.
package atom
