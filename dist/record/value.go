package record

// Value is a decoded sequence. Items hold string, float64, int32, int, bool,
// complex128, uint8, nil (a missing value) or nested *Value elements. Names,
// when set, is parallel to Items.
type Value struct {
	Items []interface{}
	Names []string
}

// NewValue creates an unnamed sequence.
func NewValue(items ...interface{}) *Value {
	return &Value{Items: items}
}

// Len returns number of elements.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	return len(v.Items)
}

// Named reports whether every element carries a name.
func (v *Value) Named() bool {
	return v != nil && len(v.Items) > 0 && len(v.Names) == len(v.Items)
}

// First returns the first element.
func (v *Value) First() (interface{}, bool) {
	if v.Len() == 0 {
		return nil, false
	}
	return v.Items[0], true
}

// Keys returns element names in order.
func (v *Value) Keys() []string {
	if !v.Named() {
		return nil
	}
	return append([]string{}, v.Names...)
}

// Field returns the element with the supplied name as a sequence; a scalar
// element is returned as a one-element sequence.
func (v *Value) Field(name string) (*Value, bool) {
	if !v.Named() {
		return nil, false
	}
	for i, candidate := range v.Names {
		if candidate != name {
			continue
		}
		return asValue(v.Items[i]), true
	}
	return nil, false
}

func asValue(item interface{}) *Value {
	if nested, ok := item.(*Value); ok {
		return nested
	}
	return NewValue(item)
}

// At returns the i-th element as a sequence; a scalar element is returned as
// a one-element sequence.
func (v *Value) At(i int) *Value {
	return asValue(v.Items[i])
}
