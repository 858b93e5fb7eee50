// Package record defines the decoded form of a serialized distribution
// record and the decoders that produce it. A record is a tree of Values:
// indexable sequences that may carry element names, the shape shared by R
// vectors and lists as well as YAML/JSON sequences and mappings.
package record
