package dist

import "sort"

// Params holds keyword arguments of a family constructor.
type Params map[string]float64

// ParamMap maps a target family to its source-to-target parameter names.
type ParamMap map[string]map[string]string

var defaultParamMap = ParamMap{
	"weibull_min": {"shape": "c", "scale": "scale"},
	"gamma":       {"shape": "a", "scale": "scale"},
	"norm":        {"mean": "loc", "sd": "scale"},
	"beta":        {"shape1": "a", "shape2": "b"},
	"poisson":     {"lambda": "mu"},
	"binom":       {"size": "n", "prob": "p"},
	"t":           {"df": "df"},
	"chi2":        {"df": "df"},
}

// DefaultParamMap returns a copy of the default parameter translation table.
func DefaultParamMap() ParamMap {
	ret := make(ParamMap, len(defaultParamMap))
	for family, params := range defaultParamMap {
		inner := make(map[string]string, len(params))
		for k, v := range params {
			inner[k] = v
		}
		ret[family] = inner
	}
	return ret
}

// ResolveParams translates source parameters into keyword arguments of
// family. A nil mapping selects the default table. Source parameters the
// table does not reference are ignored; a referenced one that is absent
// fails with MissingParameterError.
func ResolveParams(family string, params map[string]float64, mapping ParamMap) (Params, error) {
	if mapping == nil {
		mapping = defaultParamMap
	}
	names, ok := mapping[family]
	if !ok {
		return nil, &UnknownParameterMappingError{Family: family}
	}
	sources := make([]string, 0, len(names))
	for source := range names {
		sources = append(sources, source)
	}
	sort.Strings(sources)
	ret := make(Params, len(names))
	for _, source := range sources {
		target := names[source]
		value, ok := params[source]
		if !ok {
			return nil, &MissingParameterError{Family: family, Parameter: source}
		}
		ret[target] = value
	}
	return ret, nil
}
