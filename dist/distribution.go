package dist

import (
	"math"
)

// Distribution is a fully parameterized distribution returned by the loader.
// Sampling uses the random source configured on the Service; a shared
// source must not be used from multiple goroutines at once.
type Distribution interface {
	// Family returns the target family name, e.g. "weibull_min".
	Family() string
	// Params returns a copy of the keyword arguments the distribution was
	// built with.
	Params() Params
	Mean() float64
	Variance() float64
	StdDev() float64
	CDF(x float64) float64
	Prob(x float64) float64
	LogProb(x float64) float64
	// Rand draws a single sample.
	Rand() float64
	// Sample draws n samples.
	Sample(n int) []float64
}

// Model is the surface a gonum distribution provides to the adapter.
type Model interface {
	CDF(x float64) float64
	LogProb(x float64) float64
	Mean() float64
	Variance() float64
	StdDev() float64
	Rand() float64
}

// frozen binds a model to its keyword arguments and applies loc/scale for
// models without native support: X = loc + scale*Y.
type frozen struct {
	family string
	params Params
	model  Model
	loc    float64
	scale  float64
}

func (f *frozen) Family() string {
	return f.family
}

func (f *frozen) Params() Params {
	ret := make(Params, len(f.params))
	for k, v := range f.params {
		ret[k] = v
	}
	return ret
}

func (f *frozen) Mean() float64 {
	return f.loc + f.scale*f.model.Mean()
}

func (f *frozen) Variance() float64 {
	return f.scale * f.scale * f.model.Variance()
}

func (f *frozen) StdDev() float64 {
	return f.scale * f.model.StdDev()
}

func (f *frozen) standardize(x float64) float64 {
	return (x - f.loc) / f.scale
}

func (f *frozen) CDF(x float64) float64 {
	return f.model.CDF(f.standardize(x))
}

func (f *frozen) LogProb(x float64) float64 {
	return f.model.LogProb(f.standardize(x)) - math.Log(f.scale)
}

func (f *frozen) Prob(x float64) float64 {
	return math.Exp(f.LogProb(x))
}

func (f *frozen) Rand() float64 {
	return f.loc + f.scale*f.model.Rand()
}

func (f *frozen) Sample(n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	ret := make([]float64, n)
	for i := range ret {
		ret[i] = f.Rand()
	}
	return ret
}
