package record

import (
	"github.com/viant/distload/dist/record/rds"
)

// FromRDS converts a decoded R object into a Value. Atomic vectors become
// flat sequences (NA elements become nil, factors become their labels),
// lists and pairlists become sequences of nested values, and the "names"
// attribute or pairlist tags become element names.
func FromRDS(obj *rds.Object) (*Value, error) {
	ret := &Value{}
	if obj == nil {
		return ret, nil
	}
	switch obj.Type {
	case rds.NilType:
		return ret, nil
	case rds.RealType:
		for _, v := range obj.Reals {
			ret.Items = append(ret.Items, v)
		}
	case rds.IntType:
		levels := obj.Attr("levels")
		for _, v := range obj.Ints {
			switch {
			case v == rds.NAInteger:
				ret.Items = append(ret.Items, nil)
			case levels != nil && levels.Type == rds.StringType && v >= 1 && int(v) <= len(levels.Strings):
				ret.Items = append(ret.Items, levels.Strings[v-1])
			default:
				ret.Items = append(ret.Items, v)
			}
		}
	case rds.LogicalType:
		for _, v := range obj.Ints {
			if v == rds.NAInteger {
				ret.Items = append(ret.Items, nil)
				continue
			}
			ret.Items = append(ret.Items, v != 0)
		}
	case rds.StringType:
		for i, v := range obj.Strings {
			if i < len(obj.NA) && obj.NA[i] {
				ret.Items = append(ret.Items, nil)
				continue
			}
			ret.Items = append(ret.Items, v)
		}
	case rds.ComplexType:
		for _, v := range obj.Complexes {
			ret.Items = append(ret.Items, v)
		}
	case rds.RawType:
		for _, v := range obj.Raw {
			ret.Items = append(ret.Items, v)
		}
	case rds.VectorType, rds.ExpressionType, rds.PairListType:
		for _, item := range obj.Items {
			nested, err := FromRDS(item)
			if err != nil {
				return nil, err
			}
			ret.Items = append(ret.Items, nested)
		}
	default:
		return nil, &rds.UnsupportedTypeError{Type: obj.Type}
	}
	if names := obj.Names(); len(names) > 0 && len(names) == len(ret.Items) {
		ret.Names = append([]string{}, names...)
	}
	return ret, nil
}
