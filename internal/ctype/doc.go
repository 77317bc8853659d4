// Package ctype is the type model of a declaration.
//
// A Type is three independent flag sets, one per Part: base types (int,
// char, struct ...), storage (storage classes, C++ specifiers and qualifiers)
// and attributes. Each flag has a dense per-part Tag; the per-dialect legality
// of every flag and the combinability of every pair of flags within a part
// are tables keyed by tags.
//
// Types are values. Add rejects a flag that is already present, with the one
// exception of "long" added to "long", which becomes "long long".
package ctype
