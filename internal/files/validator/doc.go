// Package validator runs the structural checks a candidate file must pass
// before it is handed to the loader.
//
// Checks run in a fixed order and fail fast:
//  1. Extension is in the allow-list
//  2. Size does not exceed the configured limit
//  3. At least one line has non-whitespace content
//
// The validator only reads; it never modifies files.
package validator
