package conv

import (
	"math"
)

// Float64 performs a best-effort conversion of a decoded scalar into float64.
//
// Integer and floating point kinds convert directly, booleans map to 0/1
// (R logicals) and nil, the decoded form of a missing value, becomes NaN.
// The second return value is false for anything non numeric.
func Float64(in any) (float64, bool) {
	switch v := in.(type) {
	case nil:
		return math.NaN(), true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}
