// Package matcher implements the family selection patterns used in
// configuration.
package matcher
