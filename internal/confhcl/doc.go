// Package confhcl is the HCL-specific grammar reader: it consumes
// resolved configuration text and produces a conftree node tree.
//
// The reader is a swappable collaborator of the bootstrap pipeline; the
// pipeline itself never depends on a particular grammar. HCL blocks map
// to sections (the block's first label becomes the section value) and
// HCL attributes map to attribute nodes. Attribute expressions must be
// self-contained literals; by the time text reaches this reader, all
// `$(var)` interpolation has already happened upstream.
package confhcl
