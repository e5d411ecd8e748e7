// Package conftree defines the structured configuration tree produced by
// a grammar reader from resolved configuration text.
//
// The tree is made of section nodes (which hold child sections and
// attributes) and attribute nodes (leaves). Lookups never return nil:
// a miss yields an empty sentinel node whose Exists method reports
// false, so navigation chains do not need nil checks. Node names are
// matched case-insensitively.
//
// Values in the tree are verbatim strings; variable expansion happens
// upstream in the assembly pipeline, never here.
package conftree
