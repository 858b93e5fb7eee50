package dist

import (
	"fmt"
	"strings"
)

// MalformedInputError reports a decoded record that does not consist of
// exactly the name and params fields, or whose fields cannot be read.
type MalformedInputError struct {
	Reason string
}

func (e *MalformedInputError) Error() string {
	return "malformed distribution record: " + e.Reason
}

// UnknownDistributionError reports a source distribution name that is
// neither a registered family nor present in the name table.
type UnknownDistributionError struct {
	Name string
}

func (e *UnknownDistributionError) Error() string {
	return fmt.Sprintf("unknown distribution %q", e.Name)
}

// UnknownParameterMappingError reports a family missing from the parameter
// table.
type UnknownParameterMappingError struct {
	Family string
}

func (e *UnknownParameterMappingError) Error() string {
	return fmt.Sprintf("unknown parameters for %v", e.Family)
}

// MissingParameterError reports a source parameter referenced by the
// parameter table but absent from the record.
type MissingParameterError struct {
	Family    string
	Parameter string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing parameter %q for %v", e.Parameter, e.Family)
}

// InvalidParameterError reports a keyword a family constructor rejected.
type InvalidParameterError struct {
	Family    string
	Parameter string
	Reason    string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %q for %v: %v", e.Parameter, e.Family, e.Reason)
}

func malformed(format string, args ...interface{}) error {
	return &MalformedInputError{Reason: fmt.Sprintf(format, args...)}
}

func quoted(names []string) string {
	ret := make([]string, len(names))
	for i, name := range names {
		ret[i] = fmt.Sprintf("%q", name)
	}
	return "[" + strings.Join(ret, ", ") + "]"
}
