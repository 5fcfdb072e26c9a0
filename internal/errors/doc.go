// Package errors provides structured, actionable error messages for the
// vango-refs command line.
//
// Each error has a unique code (e.g., "R001") that maps to a category, a
// short message, a detailed explanation and a documentation URL. Fixture
// errors carry the file location they were found at.
//
// # Error Categories
//
//   - refs: reference declaration and lifecycle errors
//   - fixture: tree fixture decoding and validation errors
//   - config: configuration loading errors
//   - cli: command usage errors
//
// # Usage
//
//	err := errors.New("R012").
//	    WithLocation("tree.yaml", 14, 7).
//	    WithSuggestion(`Add "item-card" under components:`)
//
//	errors.PrintError(err)
package errors
