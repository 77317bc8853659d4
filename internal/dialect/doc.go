// Package dialect models the C and C++ language versions a declaration is
// checked against.
//
// Every dialect is a single bit. K&R C through C23 occupy the low bits,
// followed by two extension-profile bits (Embedded C, Unified Parallel C) and
// then C++98 through C++23. Comparing bits therefore orders dialects
// chronologically within a family and places every C++ dialect after every C
// dialect. Ranges such as "C99 and newer" are plain bit arithmetic.
//
// The active dialect is never global: callers build a Context and pass it to
// every legality query.
package dialect
