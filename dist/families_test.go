package dist

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestBuiltinFamilies_Moments(t *testing.T) {
	chiMean := math.Sqrt2 * math.Gamma(2) / math.Gamma(1.5)
	lognormVar := 4 * (math.Exp(0.25) - 1) * math.Exp(0.25)
	testCases := []struct {
		family   string
		params   Params
		mean     float64
		variance float64
	}{
		{family: "weibull_min", params: Params{"c": 2, "scale": 3}, mean: 3 * math.Gamma(1.5), variance: 9 * (math.Gamma(2) - math.Pow(math.Gamma(1.5), 2))},
		{family: "gamma", params: Params{"a": 2, "scale": 3}, mean: 6, variance: 18},
		{family: "gamma", params: Params{"a": 2, "scale": 3, "loc": 1}, mean: 7, variance: 18},
		{family: "lognorm", params: Params{"s": 0.5, "scale": 2}, mean: 2 * math.Exp(0.125), variance: lognormVar},
		{family: "norm", params: Params{"loc": 1, "scale": 2}, mean: 1, variance: 4},
		{family: "norm", params: Params{}, mean: 0, variance: 1},
		{family: "expon", params: Params{"loc": 1, "scale": 2}, mean: 3, variance: 4},
		{family: "beta", params: Params{"a": 2, "b": 3}, mean: 0.4, variance: 0.04},
		{family: "beta", params: Params{"a": 2, "b": 3, "loc": 1, "scale": 2}, mean: 1.8, variance: 0.16},
		{family: "uniform", params: Params{"loc": 1, "scale": 2}, mean: 2, variance: 4.0 / 12},
		{family: "t", params: Params{"df": 5, "loc": 1}, mean: 1, variance: 5.0 / 3},
		{family: "chi2", params: Params{"df": 4}, mean: 4, variance: 8},
		{family: "chi", params: Params{"df": 3}, mean: chiMean, variance: 3 - chiMean*chiMean},
		{family: "f", params: Params{"dfn": 5, "dfd": 10}, mean: 1.25, variance: 2600.0 / 1920},
		{family: "invgamma", params: Params{"a": 3, "scale": 2}, mean: 1, variance: 1},
		{family: "laplace", params: Params{"scale": 2}, mean: 0, variance: 8},
		{family: "gumbel_r", params: Params{}, mean: 0.5772156649015329, variance: math.Pi * math.Pi / 6},
		{family: "pareto", params: Params{"b": 3}, mean: 1.5, variance: 0.75},
		{family: "poisson", params: Params{"mu": 4}, mean: 4, variance: 4},
		{family: "poisson", params: Params{"mu": 4, "loc": 2}, mean: 6, variance: 4},
		{family: "binom", params: Params{"n": 10, "p": 0.3}, mean: 3, variance: 2.1},
		{family: "bernoulli", params: Params{"p": 0.25}, mean: 0.25, variance: 0.1875},
	}
	for _, tc := range testCases {
		t.Run(tc.family, func(t *testing.T) {
			factory, ok := builtinFamilies[tc.family]
			require.True(t, ok)
			d, err := factory(NewArgs(tc.family, tc.params, rand.NewSource(7)))
			require.NoError(t, err)
			assert.EqualValues(t, tc.family, d.Family())
			assert.EqualValues(t, tc.params, d.Params())
			assert.InDelta(t, tc.mean, d.Mean(), 1e-9)
			assert.InDelta(t, tc.variance, d.Variance(), 1e-9)
			assert.InDelta(t, math.Sqrt(tc.variance), d.StdDev(), 1e-9)
			assert.Len(t, d.Sample(5), 5)
		})
	}
}

func TestBuiltinFamilies_Invalid(t *testing.T) {
	testCases := []struct {
		description string
		family      string
		params      Params
		parameter   string
	}{
		{description: "missing shape", family: "weibull_min", params: Params{"scale": 2}, parameter: "c"},
		{description: "negative scale", family: "gamma", params: Params{"a": 2, "scale": -1}, parameter: "scale"},
		{description: "zero shape", family: "beta", params: Params{"a": 0, "b": 1}, parameter: "a"},
		{description: "missing value", family: "weibull_min", params: Params{"c": math.NaN(), "scale": 1}, parameter: "c"},
		{description: "infinite loc", family: "norm", params: Params{"loc": math.Inf(1)}, parameter: "loc"},
		{description: "fractional count", family: "binom", params: Params{"n": 2.5, "p": 0.5}, parameter: "n"},
		{description: "probability out of range", family: "bernoulli", params: Params{"p": 1.5}, parameter: "p"},
		{description: "negative rate", family: "poisson", params: Params{"mu": -1}, parameter: "mu"},
		{description: "unexpected keyword", family: "weibull_min", params: Params{"c": 2, "shape": 2, "k": 1}, parameter: "k"},
		{description: "scale on discrete family", family: "poisson", params: Params{"mu": 1, "scale": 2}, parameter: "scale"},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			_, err := builtinFamilies[tc.family](NewArgs(tc.family, tc.params, nil))
			var invalidErr *InvalidParameterError
			require.True(t, errors.As(err, &invalidErr), "expected InvalidParameterError, got %v", err)
			assert.EqualValues(t, tc.family, invalidErr.Family)
			assert.EqualValues(t, tc.parameter, invalidErr.Parameter)
		})
	}
}

func TestFrozen_LocScale(t *testing.T) {
	d, err := newBeta(NewArgs("beta", Params{"a": 2, "b": 3, "loc": 1, "scale": 2}, nil))
	require.NoError(t, err)
	standard := distuv.Beta{Alpha: 2, Beta: 3}
	assert.InDelta(t, standard.CDF(0.5), d.CDF(2), 1e-12)
	assert.InDelta(t, standard.Prob(0.5)/2, d.Prob(2), 1e-12)
	assert.InDelta(t, standard.LogProb(0.5)-math.Log(2), d.LogProb(2), 1e-12)
	assert.EqualValues(t, 0, d.CDF(1))

	d, err = newExponential(NewArgs("expon", Params{"loc": 1, "scale": 2}, nil))
	require.NoError(t, err)
	assert.InDelta(t, 1-math.Exp(-1), d.CDF(3), 1e-12)
}

func TestFrozen_Sample(t *testing.T) {
	d, err := newNormal(NewArgs("norm", Params{"loc": 10, "scale": 0.5}, rand.NewSource(42)))
	require.NoError(t, err)
	assert.Empty(t, d.Sample(0))
	assert.Empty(t, d.Sample(-3))
	samples := d.Sample(2000)
	sum := 0.0
	for _, v := range samples {
		sum += v
	}
	assert.InDelta(t, 10, sum/float64(len(samples)), 0.1)

	params := d.Params()
	params["loc"] = 0
	assert.EqualValues(t, 10, d.Params()["loc"])
}
