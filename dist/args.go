package dist

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/exp/rand"
)

// Args carries keyword arguments into a Factory. Accessors record the first
// validation failure, which Freeze (or Err) reports, so factories read every
// keyword before checking for errors.
type Args struct {
	Family string
	Params Params
	// Src is the random source for the model; nil selects gonum's global
	// source.
	Src  rand.Source
	used map[string]bool
	err  error
}

// NewArgs creates factory arguments.
func NewArgs(family string, params Params, src rand.Source) *Args {
	return &Args{Family: family, Params: params, Src: src, used: map[string]bool{}}
}

func (a *Args) fail(name, format string, args ...interface{}) {
	if a.err == nil {
		a.err = &InvalidParameterError{Family: a.Family, Parameter: name, Reason: fmt.Sprintf(format, args...)}
	}
}

func (a *Args) lookup(name string) (float64, bool) {
	a.used[name] = true
	v, ok := a.Params[name]
	return v, ok
}

func (a *Args) finite(name string, v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		a.fail(name, "must be finite, got %v", v)
		return false
	}
	return true
}

// Float returns a required finite keyword.
func (a *Args) Float(name string) float64 {
	v, ok := a.lookup(name)
	if !ok {
		a.fail(name, "missing required keyword")
		return math.NaN()
	}
	a.finite(name, v)
	return v
}

// Positive returns a required keyword greater than zero.
func (a *Args) Positive(name string) float64 {
	v := a.Float(name)
	if !math.IsNaN(v) && v <= 0 {
		a.fail(name, "must be positive, got %v", v)
	}
	return v
}

// NonNegative returns a required keyword not smaller than zero.
func (a *Args) NonNegative(name string) float64 {
	v := a.Float(name)
	if v < 0 {
		a.fail(name, "must not be negative, got %v", v)
	}
	return v
}

// Probability returns a required keyword within [0, 1].
func (a *Args) Probability(name string) float64 {
	v := a.Float(name)
	if v < 0 || v > 1 {
		a.fail(name, "must be within [0, 1], got %v", v)
	}
	return v
}

// Count returns a required non-negative integral keyword.
func (a *Args) Count(name string) float64 {
	v := a.NonNegative(name)
	if v != math.Trunc(v) {
		a.fail(name, "must be an integer, got %v", v)
	}
	return v
}

// Loc returns the optional "loc" keyword, 0 by default.
func (a *Args) Loc() float64 {
	v, ok := a.lookup("loc")
	if !ok {
		return 0
	}
	a.finite("loc", v)
	return v
}

// Scale returns the optional "scale" keyword, 1 by default.
func (a *Args) Scale() float64 {
	v, ok := a.lookup("scale")
	if !ok {
		return 1
	}
	if a.finite("scale", v) && v <= 0 {
		a.fail("scale", "must be positive, got %v", v)
	}
	return v
}

// Err returns the first validation failure or an error naming the first
// keyword no accessor consumed.
func (a *Args) Err() error {
	if a.err != nil {
		return a.err
	}
	var unexpected []string
	for name := range a.Params {
		if !a.used[name] {
			unexpected = append(unexpected, name)
		}
	}
	if len(unexpected) > 0 {
		sort.Strings(unexpected)
		return &InvalidParameterError{Family: a.Family, Parameter: unexpected[0], Reason: "unexpected keyword"}
	}
	return nil
}

// Freeze binds model to the arguments, applying X = loc + scale*Y on top
// of it.
func (a *Args) Freeze(model Model, loc, scale float64) (Distribution, error) {
	if err := a.Err(); err != nil {
		return nil, err
	}
	params := make(Params, len(a.Params))
	for k, v := range a.Params {
		params[k] = v
	}
	return &frozen{family: a.Family, params: params, model: model, loc: loc, scale: scale}, nil
}
