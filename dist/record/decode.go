package record

import (
	"bytes"
	"fmt"
	"io"

	"github.com/viant/distload/dist/record/rds"
)

// Format identifies the encoding of a serialized record.
type Format string

const (
	FormatRDS  Format = "rds"
	FormatYAML Format = "yaml"
)

// Detect inspects leading bytes: anything that looks like an R
// serialization stream (compressed or not) is RDS, the rest is treated as
// YAML, which also covers JSON.
func Detect(data []byte) Format {
	if rds.IsSerialized(data) {
		return FormatRDS
	}
	return FormatYAML
}

// Decode decodes a record in any supported format.
func Decode(data []byte) (*Value, error) {
	switch Detect(data) {
	case FormatRDS:
		return DecodeRDS(bytes.NewReader(data))
	default:
		return DecodeYAML(data)
	}
}

// DecodeRDS decodes an RDS or RDA stream. A workspace holding a single
// object is unwrapped to that object.
func DecodeRDS(r io.Reader) (*Value, error) {
	obj, header, err := rds.ReadWithHeader(r)
	if err != nil {
		return nil, fmt.Errorf("decode rds: %w", err)
	}
	if header.Workspace && obj.Type == rds.PairListType && len(obj.Items) == 1 {
		obj = obj.Items[0]
	}
	return FromRDS(obj)
}
