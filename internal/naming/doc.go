// Package naming resolves the file names of one build: the native executable
// (derived from the source name or given explicitly) and the intermediate
// file the transpiler writes.
//
// Derived mode strips exactly one trailing source extension from the final
// path component, keeping the directory:
//
//	src/foo.22l  ->  output src/foo, intermediate src/foo.cpp
//
// Explicit mode takes the output name from the caller and places the
// intermediate file next to the source:
//
//	src/foo.22l bar  ->  output bar, intermediate src/foo.22l.cpp
package naming
