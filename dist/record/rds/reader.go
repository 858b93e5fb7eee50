package rds

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"golang.org/x/text/encoding/charmap"
)

// ErrUnsupportedFormat is returned for streams that are not R serialization
// in a supported format (ASCII serialization is not supported).
var ErrUnsupportedFormat = errors.New("rds: unsupported serialization format")

// UnsupportedTypeError reports an object that cannot be represented as data,
// for example a closure or byte code.
type UnsupportedTypeError struct {
	Type  Type
	Class string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Class != "" {
		return fmt.Sprintf("rds: unsupported ALTREP class %q", e.Class)
	}
	return fmt.Sprintf("rds: unsupported object type %v", e.Type)
}

// Format identifies the byte layout of a serialization stream.
type Format string

const (
	FormatXDR    Format = "xdr"
	FormatBinary Format = "binary"
)

// RVersion is an R version packed as major*65536 + minor*256 + patch.
type RVersion int32

// NewRVersion packs an R version.
func NewRVersion(major, minor, patch int) RVersion {
	return RVersion(major<<16 | minor<<8 | patch)
}

func (v RVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v>>16, (v>>8)&0xFF, v&0xFF)
}

// Header describes a decoded serialization stream.
type Header struct {
	Format           Format
	Version          int
	WriterVersion    RVersion
	MinReaderVersion RVersion
	// Encoding is the native encoding recorded by version 3 streams.
	Encoding string
	// Workspace is set for RDA (save/load) files.
	Workspace bool
}

const (
	maxPreallocate = 1 << 16
	latin1Mask     = 1 << 2
)

// MaxCompactLength caps the number of elements a compact ALTREP sequence may
// expand to; longer sequences fail to decode.
var MaxCompactLength = 1 << 22

// Read decodes a single R object from an RDS or RDA stream. Compressed
// streams (gzip, bzip2, xz) are detected automatically. An RDA stream yields
// a pairlist whose tags are the saved variable names.
func Read(r io.Reader) (*Object, error) {
	obj, _, err := ReadWithHeader(r)
	return obj, err
}

// ReadWithHeader behaves like Read and also returns the stream header.
func ReadWithHeader(r io.Reader) (*Object, *Header, error) {
	plain, err := decompress(r)
	if err != nil {
		return nil, nil, err
	}
	header, order, err := readHeader(plain)
	if err != nil {
		return nil, nil, err
	}
	d := &decoder{r: plain, order: order}
	obj, err := d.item()
	if err != nil {
		return nil, nil, err
	}
	return obj, header, nil
}

func readHeader(r io.Reader) (*Header, binary.ByteOrder, error) {
	header := &Header{}
	magic := make([]byte, 2)
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, nil, fmt.Errorf("rds: read magic: %w", err)
	}
	if string(magic) == "RD" {
		workspace := make([]byte, 3)
		if _, err := io.ReadFull(r, workspace); err != nil {
			return nil, nil, fmt.Errorf("rds: read workspace magic: %w", err)
		}
		switch string(workspace) {
		case "X2\n", "X3\n", "B2\n", "B3\n":
		default:
			return nil, nil, ErrUnsupportedFormat
		}
		header.Workspace = true
		if _, err := io.ReadFull(r, magic); err != nil {
			return nil, nil, fmt.Errorf("rds: read format: %w", err)
		}
	}
	var order binary.ByteOrder
	switch string(magic) {
	case "X\n":
		header.Format, order = FormatXDR, binary.BigEndian
	case "B\n":
		header.Format, order = FormatBinary, binary.LittleEndian
	default:
		return nil, nil, ErrUnsupportedFormat
	}
	d := &decoder{r: r, order: order}
	version, err := d.readInt()
	if err != nil {
		return nil, nil, fmt.Errorf("rds: read version: %w", err)
	}
	if version != 2 && version != 3 {
		return nil, nil, fmt.Errorf("rds: serialization version %d: %w", version, ErrUnsupportedFormat)
	}
	header.Version = int(version)
	writer, err := d.readInt()
	if err != nil {
		return nil, nil, fmt.Errorf("rds: read writer version: %w", err)
	}
	minReader, err := d.readInt()
	if err != nil {
		return nil, nil, fmt.Errorf("rds: read reader version: %w", err)
	}
	header.WriterVersion, header.MinReaderVersion = RVersion(writer), RVersion(minReader)
	if version == 3 {
		n, err := d.readInt()
		if err != nil {
			return nil, nil, fmt.Errorf("rds: read encoding: %w", err)
		}
		encoding, err := d.readBytes(int(n))
		if err != nil {
			return nil, nil, fmt.Errorf("rds: read encoding: %w", err)
		}
		header.Encoding = string(encoding)
	}
	return header, order, nil
}

type flags int32

func (f flags) typ() Type { return Type(f & 0xFF) }
func (f flags) levels() int32 { return int32(f) >> 12 }
func (f flags) hasAttr() bool { return f&(1<<9) != 0 }
func (f flags) hasTag() bool { return f&(1<<10) != 0 }
func (f flags) refIndex() int { return int(f) >> 8 }
func (f flags) isPairList() bool {
	switch f.typ() {
	case PairListType, LangType, attrListType, attrLangType:
		return true
	}
	return false
}

type decoder struct {
	r     io.Reader
	order binary.ByteOrder
	refs  []*Object
	buf   [8]byte
}

func (d *decoder) readInt() (int32, error) {
	if _, err := io.ReadFull(d.r, d.buf[:4]); err != nil {
		return 0, err
	}
	return int32(d.order.Uint32(d.buf[:4])), nil
}

func (d *decoder) readFloat() (float64, error) {
	if _, err := io.ReadFull(d.r, d.buf[:8]); err != nil {
		return 0, err
	}
	return math.Float64frombits(d.order.Uint64(d.buf[:8])), nil
}

func (d *decoder) readBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("rds: negative length %d", n)
	}
	data, err := io.ReadAll(io.LimitReader(d.r, int64(n)))
	if err != nil {
		return nil, err
	}
	if len(data) != n {
		return nil, io.ErrUnexpectedEOF
	}
	return data, nil
}

func (d *decoder) readFlags() (flags, error) {
	v, err := d.readInt()
	return flags(v), err
}

func (d *decoder) readLength() (int, error) {
	n, err := d.readInt()
	if err != nil {
		return 0, err
	}
	if n >= 0 {
		return int(n), nil
	}
	if n != -1 {
		return 0, fmt.Errorf("rds: invalid length %d", n)
	}
	upper, err := d.readInt()
	if err != nil {
		return 0, err
	}
	lower, err := d.readInt()
	if err != nil {
		return 0, err
	}
	long := int64(upper)<<32 + int64(uint32(lower))
	if long < 0 || long > math.MaxInt32*64 {
		return 0, fmt.Errorf("rds: invalid long length %d", long)
	}
	return int(long), nil
}

func (d *decoder) item() (*Object, error) {
	f, err := d.readFlags()
	if err != nil {
		return nil, err
	}
	return d.itemWithFlags(f)
}

func (d *decoder) itemWithFlags(f flags) (*Object, error) {
	var obj *Object
	var err error
	switch t := f.typ(); t {
	case nilValueType:
		return Null(), nil
	case emptyEnvType, baseEnvType, globalEnvType, baseNamespaceType:
		return &Object{Type: EnvType}, nil
	case unboundValueType, missingArgType:
		return Null(), nil
	case refType:
		index := f.refIndex()
		if index == 0 {
			i, err := d.readInt()
			if err != nil {
				return nil, err
			}
			index = int(i)
		}
		if index < 1 || index > len(d.refs) {
			return nil, fmt.Errorf("rds: invalid reference %d", index)
		}
		return d.refs[index-1], nil
	case packageType, namespaceType, persistType:
		if _, err = d.stringVector(); err != nil {
			return nil, err
		}
		obj = &Object{Type: EnvType}
		d.refs = append(d.refs, obj)
		return obj, nil
	case EnvType:
		return d.environment()
	case SymbolType:
		name, err := d.item()
		if err != nil {
			return nil, err
		}
		if name.Type != CharType || len(name.Strings) != 1 {
			return nil, fmt.Errorf("rds: invalid symbol name of type %v", name.Type)
		}
		obj = NewSymbol(name.Strings[0])
		d.refs = append(d.refs, obj)
		return obj, nil
	case PairListType, LangType, attrListType, attrLangType:
		return d.pairList(f)
	case altrepType:
		return d.altrep()
	case CharType:
		s, na, err := d.char(f)
		if err != nil {
			return nil, err
		}
		return &Object{Type: CharType, Strings: []string{s}, NA: []bool{na}}, nil
	case LogicalType, IntType:
		obj, err = d.ints(t)
	case RealType:
		obj, err = d.reals()
	case ComplexType:
		obj, err = d.complexes()
	case StringType:
		obj, err = d.strings()
	case VectorType, ExpressionType:
		obj, err = d.list(t)
	case RawType:
		var n int
		if n, err = d.readLength(); err == nil {
			obj = &Object{Type: RawType}
			obj.Raw, err = d.readBytes(n)
		}
	case S4Type:
		obj = &Object{Type: S4Type}
	default:
		return nil, &UnsupportedTypeError{Type: t}
	}
	if err != nil {
		return nil, err
	}
	if f.hasAttr() {
		attrs, err := d.item()
		if err != nil {
			return nil, err
		}
		obj.Attributes = toAttributes(attrs)
	}
	return obj, nil
}

func (d *decoder) environment() (*Object, error) {
	obj := &Object{Type: EnvType}
	d.refs = append(d.refs, obj)
	if _, err := d.readInt(); err != nil { // locked
		return nil, err
	}
	for i := 0; i < 4; i++ { // enclosure, frame, hash table, attributes
		if _, err := d.item(); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

func (d *decoder) stringVector() ([]string, error) {
	if _, err := d.readInt(); err != nil {
		return nil, err
	}
	n, err := d.readLength()
	if err != nil {
		return nil, err
	}
	ret := make([]string, 0, min(n, maxPreallocate))
	for i := 0; i < n; i++ {
		item, err := d.item()
		if err != nil {
			return nil, err
		}
		if item.Type != CharType {
			return nil, fmt.Errorf("rds: expected char, got %v", item.Type)
		}
		ret = append(ret, item.Strings[0])
	}
	return ret, nil
}

func (d *decoder) pairList(f flags) (*Object, error) {
	ret := &Object{Type: PairListType}
	switch f.typ() {
	case LangType, attrLangType:
		ret.Type = LangType
	}
	for {
		if f.hasAttr() {
			attrs, err := d.item()
			if err != nil {
				return nil, err
			}
			if len(ret.Items) == 0 {
				ret.Attributes = toAttributes(attrs)
			}
		}
		tag := ""
		if f.hasTag() {
			sym, err := d.item()
			if err != nil {
				return nil, err
			}
			tag = sym.Symbol
		}
		car, err := d.item()
		if err != nil {
			return nil, err
		}
		ret.Items = append(ret.Items, car)
		ret.Tags = append(ret.Tags, tag)
		if f, err = d.readFlags(); err != nil {
			return nil, err
		}
		if f.typ() == nilValueType {
			return ret, nil
		}
		if !f.isPairList() {
			cdr, err := d.itemWithFlags(f)
			if err != nil {
				return nil, err
			}
			ret.Items = append(ret.Items, cdr)
			ret.Tags = append(ret.Tags, "")
			return ret, nil
		}
	}
}

func (d *decoder) char(f flags) (string, bool, error) {
	n, err := d.readInt()
	if err != nil {
		return "", false, err
	}
	if n == -1 {
		return "", true, nil
	}
	data, err := d.readBytes(int(n))
	if err != nil {
		return "", false, err
	}
	if f.levels()&latin1Mask != 0 {
		if data, err = charmap.ISO8859_1.NewDecoder().Bytes(data); err != nil {
			return "", false, fmt.Errorf("rds: decode latin1 string: %w", err)
		}
	}
	return string(data), false, nil
}

func (d *decoder) ints(t Type) (*Object, error) {
	n, err := d.readLength()
	if err != nil {
		return nil, err
	}
	ret := &Object{Type: t, Ints: make([]int32, 0, min(n, maxPreallocate))}
	for i := 0; i < n; i++ {
		v, err := d.readInt()
		if err != nil {
			return nil, err
		}
		ret.Ints = append(ret.Ints, v)
	}
	return ret, nil
}

func (d *decoder) reals() (*Object, error) {
	n, err := d.readLength()
	if err != nil {
		return nil, err
	}
	ret := &Object{Type: RealType, Reals: make([]float64, 0, min(n, maxPreallocate))}
	for i := 0; i < n; i++ {
		v, err := d.readFloat()
		if err != nil {
			return nil, err
		}
		ret.Reals = append(ret.Reals, v)
	}
	return ret, nil
}

func (d *decoder) complexes() (*Object, error) {
	n, err := d.readLength()
	if err != nil {
		return nil, err
	}
	ret := &Object{Type: ComplexType, Complexes: make([]complex128, 0, min(n, maxPreallocate))}
	for i := 0; i < n; i++ {
		re, err := d.readFloat()
		if err != nil {
			return nil, err
		}
		im, err := d.readFloat()
		if err != nil {
			return nil, err
		}
		ret.Complexes = append(ret.Complexes, complex(re, im))
	}
	return ret, nil
}

func (d *decoder) strings() (*Object, error) {
	n, err := d.readLength()
	if err != nil {
		return nil, err
	}
	ret := &Object{Type: StringType, Strings: make([]string, 0, min(n, maxPreallocate)), NA: make([]bool, 0, min(n, maxPreallocate))}
	for i := 0; i < n; i++ {
		f, err := d.readFlags()
		if err != nil {
			return nil, err
		}
		if f.typ() != CharType {
			return nil, fmt.Errorf("rds: expected char in character vector, got %v", f.typ())
		}
		s, na, err := d.char(f)
		if err != nil {
			return nil, err
		}
		ret.Strings = append(ret.Strings, s)
		ret.NA = append(ret.NA, na)
	}
	return ret, nil
}

func (d *decoder) list(t Type) (*Object, error) {
	n, err := d.readLength()
	if err != nil {
		return nil, err
	}
	ret := &Object{Type: t, Items: make([]*Object, 0, min(n, maxPreallocate))}
	for i := 0; i < n; i++ {
		item, err := d.item()
		if err != nil {
			return nil, err
		}
		ret.Items = append(ret.Items, item)
	}
	return ret, nil
}

func (d *decoder) altrep() (*Object, error) {
	info, err := d.item()
	if err != nil {
		return nil, err
	}
	state, err := d.item()
	if err != nil {
		return nil, err
	}
	attrs, err := d.item()
	if err != nil {
		return nil, err
	}
	class := ""
	if info.Type == PairListType && len(info.Items) > 0 && info.Items[0].Type == SymbolType {
		class = info.Items[0].Symbol
	}
	obj, err := expandAltrep(class, state)
	if err != nil {
		return nil, err
	}
	if attrs.Type == PairListType {
		obj.Attributes = toAttributes(attrs)
	}
	return obj, nil
}

func expandAltrep(class string, state *Object) (*Object, error) {
	switch class {
	case "compact_intseq", "compact_realseq":
		if state.Type != RealType || len(state.Reals) != 3 {
			return nil, fmt.Errorf("rds: invalid %s state", class)
		}
		n, start, step := state.Reals[0], state.Reals[1], state.Reals[2]
		if math.IsNaN(n) || n < 0 || n != math.Trunc(n) {
			return nil, fmt.Errorf("rds: invalid %s length %v", class, n)
		}
		if n > float64(MaxCompactLength) {
			return nil, fmt.Errorf("rds: %s length %v exceeds limit %d", class, n, MaxCompactLength)
		}
		if class == "compact_intseq" {
			ret := &Object{Type: IntType, Ints: make([]int32, int(n))}
			for i := range ret.Ints {
				ret.Ints[i] = int32(start + float64(i)*step)
			}
			return ret, nil
		}
		ret := &Object{Type: RealType, Reals: make([]float64, int(n))}
		for i := range ret.Reals {
			ret.Reals[i] = start + float64(i)*step
		}
		return ret, nil
	case "wrap_real", "wrap_integer", "wrap_logical", "wrap_string", "wrap_complex", "wrap_raw", "wrap_list":
		if len(state.Items) == 0 {
			return nil, fmt.Errorf("rds: invalid %s state", class)
		}
		wrapped := *state.Items[0]
		return &wrapped, nil
	case "deferred_string":
		if len(state.Items) == 0 {
			return nil, fmt.Errorf("rds: invalid %s state", class)
		}
		return deferredStrings(state.Items[0])
	}
	return nil, &UnsupportedTypeError{Type: altrepType, Class: class}
}

func deferredStrings(arg *Object) (*Object, error) {
	ret := &Object{Type: StringType}
	switch arg.Type {
	case IntType:
		for _, v := range arg.Ints {
			ret.Strings = append(ret.Strings, strconv.Itoa(int(v)))
			ret.NA = append(ret.NA, v == NAInteger)
		}
	case RealType:
		for _, v := range arg.Reals {
			ret.Strings = append(ret.Strings, strconv.FormatFloat(v, 'g', 15, 64))
			ret.NA = append(ret.NA, math.IsNaN(v))
		}
	default:
		return nil, fmt.Errorf("rds: invalid deferred_string argument of type %v", arg.Type)
	}
	return ret, nil
}

func toAttributes(pairList *Object) []Attribute {
	if pairList == nil || pairList.Type != PairListType {
		return nil
	}
	ret := make([]Attribute, 0, len(pairList.Items))
	for i, item := range pairList.Items {
		ret = append(ret, Attribute{Name: pairList.Tags[i], Value: item})
	}
	return ret
}

func newBufferedReader(r io.Reader) *bufio.Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return br
	}
	return bufio.NewReader(r)
}
