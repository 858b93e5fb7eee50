// Package conv provides small helpers to coerce decoded record scalars into
// the numeric form expected by distribution factories.
package conv
