package rds

import (
	"fmt"
	"math"
)

// Type is an R SEXP type code.
type Type uint8

// Types of objects that can appear in a serialization stream.
const (
	NilType        Type = 0
	SymbolType     Type = 1
	PairListType   Type = 2
	ClosureType    Type = 3
	EnvType        Type = 4
	PromiseType    Type = 5
	LangType       Type = 6
	SpecialType    Type = 7
	BuiltinType    Type = 8
	CharType       Type = 9
	LogicalType    Type = 10
	IntType        Type = 13
	RealType       Type = 14
	ComplexType    Type = 15
	StringType     Type = 16
	DotType        Type = 17
	AnyType        Type = 18
	VectorType     Type = 19
	ExpressionType Type = 20
	BytecodeType   Type = 21
	ExtPtrType     Type = 22
	WeakRefType    Type = 23
	RawType        Type = 24
	S4Type         Type = 25
)

// pseudo types only found in the stream
const (
	altrepType        Type = 238
	attrListType      Type = 239
	attrLangType      Type = 240
	baseEnvType       Type = 241
	emptyEnvType      Type = 242
	bcRepRefType      Type = 243
	bcRepDefType      Type = 244
	genericRefType    Type = 245
	classRefType      Type = 246
	persistType       Type = 247
	packageType       Type = 248
	namespaceType     Type = 249
	baseNamespaceType Type = 250
	missingArgType    Type = 251
	unboundValueType  Type = 252
	globalEnvType     Type = 253
	nilValueType      Type = 254
	refType           Type = 255
)

var typeNames = map[Type]string{
	NilType:        "NULL",
	SymbolType:     "symbol",
	PairListType:   "pairlist",
	ClosureType:    "closure",
	EnvType:        "environment",
	PromiseType:    "promise",
	LangType:       "language",
	SpecialType:    "special",
	BuiltinType:    "builtin",
	CharType:       "char",
	LogicalType:    "logical",
	IntType:        "integer",
	RealType:       "double",
	ComplexType:    "complex",
	StringType:     "character",
	DotType:        "...",
	AnyType:        "any",
	VectorType:     "list",
	ExpressionType: "expression",
	BytecodeType:   "bytecode",
	ExtPtrType:     "externalptr",
	WeakRefType:    "weakref",
	RawType:        "raw",
	S4Type:         "S4",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// NAInteger is the sentinel R uses for a missing integer or logical.
const NAInteger = math.MinInt32

// Attribute is a single named attribute attached to an object.
type Attribute struct {
	Name  string
	Value *Object
}

// Object is a decoded R object. Only the fields relevant to Type are set.
type Object struct {
	Type Type
	// Reals holds double vectors.
	Reals []float64
	// Ints holds integer and logical vectors, NAInteger marks NA.
	Ints []int32
	// Strings holds character vectors, with NA flagging missing elements.
	Strings []string
	NA      []bool
	// Complexes holds complex vectors.
	Complexes []complex128
	// Raw holds raw vectors.
	Raw []byte
	// Items holds list, expression and pairlist elements.
	Items []*Object
	// Tags holds pairlist tags, parallel to Items.
	Tags []string
	// Symbol holds the print name of a symbol.
	Symbol     string
	Attributes []Attribute
}

// Len returns the number of elements of a vector, list or pairlist.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	switch o.Type {
	case RealType:
		return len(o.Reals)
	case IntType, LogicalType:
		return len(o.Ints)
	case StringType, CharType:
		return len(o.Strings)
	case ComplexType:
		return len(o.Complexes)
	case RawType:
		return len(o.Raw)
	case VectorType, ExpressionType, PairListType, LangType:
		return len(o.Items)
	}
	return 0
}

// Attr returns the named attribute value or nil.
func (o *Object) Attr(name string) *Object {
	if o == nil {
		return nil
	}
	for _, attr := range o.Attributes {
		if attr.Name == name {
			return attr.Value
		}
	}
	return nil
}

// Names returns the "names" attribute or pairlist tags.
func (o *Object) Names() []string {
	if o == nil {
		return nil
	}
	if names := o.Attr("names"); names != nil && names.Type == StringType {
		return names.Strings
	}
	if o.Type == PairListType && len(o.Tags) > 0 {
		return o.Tags
	}
	return nil
}

// Class returns the "class" attribute.
func (o *Object) Class() []string {
	if class := o.Attr("class"); class != nil && class.Type == StringType {
		return class.Strings
	}
	return nil
}

// SetAttr adds or replaces an attribute.
func (o *Object) SetAttr(name string, value *Object) *Object {
	for i := range o.Attributes {
		if o.Attributes[i].Name == name {
			o.Attributes[i].Value = value
			return o
		}
	}
	o.Attributes = append(o.Attributes, Attribute{Name: name, Value: value})
	return o
}

// Null returns an R NULL.
func Null() *Object {
	return &Object{Type: NilType}
}

// NewReal returns a double vector.
func NewReal(values ...float64) *Object {
	return &Object{Type: RealType, Reals: append([]float64{}, values...)}
}

// NewInt returns an integer vector.
func NewInt(values ...int32) *Object {
	return &Object{Type: IntType, Ints: append([]int32{}, values...)}
}

// NewLogical returns a logical vector.
func NewLogical(values ...bool) *Object {
	ints := make([]int32, len(values))
	for i, v := range values {
		if v {
			ints[i] = 1
		}
	}
	return &Object{Type: LogicalType, Ints: ints}
}

// NewString returns a character vector without missing values.
func NewString(values ...string) *Object {
	return &Object{Type: StringType, Strings: append([]string{}, values...), NA: make([]bool, len(values))}
}

// NewSymbol returns a symbol.
func NewSymbol(name string) *Object {
	return &Object{Type: SymbolType, Symbol: name}
}

// NewList returns a generic vector; names may be nil for an unnamed list.
func NewList(names []string, items ...*Object) *Object {
	ret := &Object{Type: VectorType, Items: items}
	if names != nil {
		ret.SetAttr("names", NewString(names...))
	}
	return ret
}

// NewPairList returns a tagged pairlist.
func NewPairList(tags []string, items ...*Object) *Object {
	if tags == nil {
		tags = make([]string, len(items))
	}
	return &Object{Type: PairListType, Items: items, Tags: tags}
}
