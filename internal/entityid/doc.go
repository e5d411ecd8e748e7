// internal/entityid/doc.go

/*
Package entityid provides a structured, type-safe representation for
hierarchical entity addresses, based on the canonical format
`type.schema@system::address`.

The system qualifier is required; the type and schema qualifiers are
optional and denote the system's default type when absent, e.g.
`dealer::I9973OD` vs `car.vin@dealer::1A8987339HBz0909W874`.

This package enforces the identifier schema and centralizes all
formatting and parsing logic.
*/
package entityid
