// Package sanitizer normalizes user-supplied content before validation and
// storage. All functions are idempotent and handle bad input by returning
// empty values rather than errors.
package sanitizer
