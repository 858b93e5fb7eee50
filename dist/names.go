package dist

// NameMap maps source (R) distribution names to target family names.
type NameMap map[string]string

// defaultNameMap lists R distributions whose name differs from the target
// family; identical names resolve without an entry.
var defaultNameMap = NameMap{
	"weibull": "weibull_min",
	"lnorm":   "lognorm",
	"exp":     "expon",
	"unif":    "uniform",
	"pois":    "poisson",
	"chisq":   "chi2",
	"gumbel":  "gumbel_r",
}

// DefaultNameMap returns a copy of the default name translation table.
func DefaultNameMap() NameMap {
	ret := make(NameMap, len(defaultNameMap))
	for k, v := range defaultNameMap {
		ret[k] = v
	}
	return ret
}

// ResolveName resolves a source distribution name against the built-in
// families. A nil mapping selects the default table.
func ResolveName(name string, mapping NameMap) (string, error) {
	return resolveName(name, mapping, isBuiltinFamily)
}

// resolveName returns name itself when it is a known family, so that a
// target name is never remapped, and otherwise looks it up in mapping.
func resolveName(name string, mapping NameMap, known func(string) bool) (string, error) {
	if mapping == nil {
		mapping = defaultNameMap
	}
	if known(name) {
		return name, nil
	}
	if target, ok := mapping[name]; ok {
		return target, nil
	}
	return "", &UnknownDistributionError{Name: name}
}
