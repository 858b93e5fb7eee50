package rds

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

const (
	asciiMask = 1 << 6
	utf8Mask  = 1 << 3
)

// DefaultWriterVersion is the R version recorded by Write.
var DefaultWriterVersion = NewRVersion(4, 3, 1)

type writeOptions struct {
	version       int
	compression   Compression
	writerVersion RVersion
}

// WriteOption customizes Write.
type WriteOption func(*writeOptions)

// WithVersion selects serialization version 2 or 3 (default).
func WithVersion(version int) WriteOption {
	return func(o *writeOptions) {
		o.version = version
	}
}

// WithCompression selects the container compression, gzip by default as
// saveRDS does.
func WithCompression(compression Compression) WriteOption {
	return func(o *writeOptions) {
		o.compression = compression
	}
}

// WithWriterVersion overrides the R version recorded in the header.
func WithWriterVersion(version RVersion) WriteOption {
	return func(o *writeOptions) {
		o.writerVersion = version
	}
}

// Write serializes obj in XDR format the way saveRDS does.
func Write(w io.Writer, obj *Object, options ...WriteOption) error {
	opts := &writeOptions{version: 3, compression: Gzip, writerVersion: DefaultWriterVersion}
	for _, option := range options {
		option(opts)
	}
	if opts.version != 2 && opts.version != 3 {
		return fmt.Errorf("rds: serialization version %d: %w", opts.version, ErrUnsupportedFormat)
	}
	zw, err := compress(w, opts.compression)
	if err != nil {
		return err
	}
	e := &encoder{w: bufio.NewWriter(zw), symbols: map[string]int{}}
	e.header(opts)
	e.item(obj)
	if e.err == nil {
		e.err = e.w.Flush()
	}
	if err := zw.Close(); err != nil && e.err == nil {
		e.err = err
	}
	return e.err
}

type encoder struct {
	w       *bufio.Writer
	symbols map[string]int
	refs    int
	buf     [8]byte
	err     error
}

func (e *encoder) header(opts *writeOptions) {
	e.bytes([]byte("X\n"))
	e.int(int32(opts.version))
	e.int(int32(opts.writerVersion))
	if opts.version == 2 {
		e.int(int32(NewRVersion(2, 3, 0)))
		return
	}
	e.int(int32(NewRVersion(3, 5, 0)))
	e.int(int32(len("UTF-8")))
	e.bytes([]byte("UTF-8"))
}

func (e *encoder) bytes(data []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(data)
}

func (e *encoder) int(v int32) {
	binary.BigEndian.PutUint32(e.buf[:4], uint32(v))
	e.bytes(e.buf[:4])
}

func (e *encoder) float(v float64) {
	binary.BigEndian.PutUint64(e.buf[:8], math.Float64bits(v))
	e.bytes(e.buf[:8])
}

func (e *encoder) item(o *Object) {
	if o == nil || o.Type == NilType {
		e.int(int32(nilValueType))
		return
	}
	switch o.Type {
	case SymbolType:
		e.symbol(o.Symbol)
		return
	case EnvType:
		e.int(int32(globalEnvType))
		return
	case PairListType, LangType:
		e.pairList(o.Type, o.Items, o.Tags, o.Attributes)
		return
	case CharType:
		e.char(o.Strings[0], len(o.NA) > 0 && o.NA[0])
		return
	}
	f := int32(o.Type)
	if len(o.Attributes) > 0 {
		f |= 1 << 9
	}
	if o.Attr("class") != nil {
		f |= 1 << 8
	}
	e.int(f)
	switch o.Type {
	case LogicalType, IntType:
		e.int(int32(len(o.Ints)))
		for _, v := range o.Ints {
			e.int(v)
		}
	case RealType:
		e.int(int32(len(o.Reals)))
		for _, v := range o.Reals {
			e.float(v)
		}
	case ComplexType:
		e.int(int32(len(o.Complexes)))
		for _, v := range o.Complexes {
			e.float(real(v))
			e.float(imag(v))
		}
	case StringType:
		e.int(int32(len(o.Strings)))
		for i, v := range o.Strings {
			e.char(v, i < len(o.NA) && o.NA[i])
		}
	case VectorType, ExpressionType:
		e.int(int32(len(o.Items)))
		for _, item := range o.Items {
			e.item(item)
		}
	case RawType:
		e.int(int32(len(o.Raw)))
		e.bytes(o.Raw)
	case S4Type:
	default:
		if e.err == nil {
			e.err = &UnsupportedTypeError{Type: o.Type}
		}
		return
	}
	if len(o.Attributes) > 0 {
		tags := make([]string, len(o.Attributes))
		values := make([]*Object, len(o.Attributes))
		for i, attr := range o.Attributes {
			tags[i], values[i] = attr.Name, attr.Value
		}
		e.pairList(PairListType, values, tags, nil)
	}
}

func (e *encoder) symbol(name string) {
	if index, ok := e.symbols[name]; ok {
		e.int(int32(index<<8) | int32(refType))
		return
	}
	e.refs++
	e.symbols[name] = e.refs
	e.int(int32(SymbolType))
	e.char(name, false)
}

func (e *encoder) pairList(t Type, items []*Object, tags []string, attrs []Attribute) {
	for i, item := range items {
		f := int32(t)
		tag := ""
		if i < len(tags) {
			tag = tags[i]
		}
		if i == 0 && len(attrs) > 0 {
			f |= 1 << 9
		}
		if tag != "" {
			f |= 1 << 10
		}
		e.int(f)
		if i == 0 && len(attrs) > 0 {
			e.item(&Object{Type: PairListType, Items: attributeValues(attrs), Tags: attributeNames(attrs)})
		}
		if tag != "" {
			e.symbol(tag)
		}
		e.item(item)
	}
	e.int(int32(nilValueType))
}

func (e *encoder) char(s string, na bool) {
	if na {
		e.int(int32(CharType))
		e.int(-1)
		return
	}
	levels := int32(asciiMask)
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			levels = utf8Mask
			break
		}
	}
	e.int(int32(CharType) | levels<<12)
	e.int(int32(len(s)))
	e.bytes([]byte(s))
}

func attributeValues(attrs []Attribute) []*Object {
	ret := make([]*Object, len(attrs))
	for i, attr := range attrs {
		ret[i] = attr.Value
	}
	return ret
}

func attributeNames(attrs []Attribute) []string {
	ret := make([]string, len(attrs))
	for i, attr := range attrs {
		ret[i] = attr.Name
	}
	return ret
}
