package dist

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// Factory builds a distribution of one family from keyword arguments.
type Factory func(args *Args) (Distribution, error)

// builtinFamilies lists every family that can be instantiated by name. Keys
// and keywords follow scipy.stats conventions so that records translated
// for scipy resolve unchanged.
var builtinFamilies = map[string]Factory{
	"weibull_min": newWeibullMin,
	"gamma":       newGamma,
	"lognorm":     newLogNormal,
	"norm":        newNormal,
	"expon":       newExponential,
	"beta":        newBeta,
	"uniform":     newUniform,
	"t":           newStudentsT,
	"chi2":        newChiSquared,
	"chi":         newChi,
	"f":           newF,
	"invgamma":    newInverseGamma,
	"laplace":     newLaplace,
	"gumbel_r":    newGumbelRight,
	"pareto":      newPareto,
	"poisson":     newPoisson,
	"binom":       newBinomial,
	"bernoulli":   newBernoulli,
}

func isBuiltinFamily(name string) bool {
	_, ok := builtinFamilies[name]
	return ok
}

// BuiltinFamilies returns sorted names of the built-in families.
func BuiltinFamilies() []string {
	ret := make([]string, 0, len(builtinFamilies))
	for name := range builtinFamilies {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

func newWeibullMin(a *Args) (Distribution, error) {
	c := a.Positive("c")
	loc, scale := a.Loc(), a.Scale()
	return a.Freeze(distuv.Weibull{K: c, Lambda: scale, Src: a.Src}, loc, 1)
}

func newGamma(a *Args) (Distribution, error) {
	shape := a.Positive("a")
	loc, scale := a.Loc(), a.Scale()
	return a.Freeze(distuv.Gamma{Alpha: shape, Beta: 1 / scale, Src: a.Src}, loc, 1)
}

func newLogNormal(a *Args) (Distribution, error) {
	s := a.Positive("s")
	loc, scale := a.Loc(), a.Scale()
	return a.Freeze(distuv.LogNormal{Mu: math.Log(scale), Sigma: s, Src: a.Src}, loc, 1)
}

func newNormal(a *Args) (Distribution, error) {
	loc, scale := a.Loc(), a.Scale()
	return a.Freeze(distuv.Normal{Mu: loc, Sigma: scale, Src: a.Src}, 0, 1)
}

func newExponential(a *Args) (Distribution, error) {
	loc, scale := a.Loc(), a.Scale()
	return a.Freeze(distuv.Exponential{Rate: 1 / scale, Src: a.Src}, loc, 1)
}

func newBeta(a *Args) (Distribution, error) {
	alpha, beta := a.Positive("a"), a.Positive("b")
	loc, scale := a.Loc(), a.Scale()
	return a.Freeze(distuv.Beta{Alpha: alpha, Beta: beta, Src: a.Src}, loc, scale)
}

func newUniform(a *Args) (Distribution, error) {
	loc, scale := a.Loc(), a.Scale()
	return a.Freeze(distuv.Uniform{Min: loc, Max: loc + scale, Src: a.Src}, 0, 1)
}

func newStudentsT(a *Args) (Distribution, error) {
	df := a.Positive("df")
	loc, scale := a.Loc(), a.Scale()
	return a.Freeze(distuv.StudentsT{Nu: df, Mu: loc, Sigma: scale, Src: a.Src}, 0, 1)
}

func newChiSquared(a *Args) (Distribution, error) {
	df := a.Positive("df")
	loc, scale := a.Loc(), a.Scale()
	return a.Freeze(distuv.ChiSquared{K: df, Src: a.Src}, loc, scale)
}

func newChi(a *Args) (Distribution, error) {
	df := a.Positive("df")
	loc, scale := a.Loc(), a.Scale()
	return a.Freeze(distuv.Chi{K: df, Src: a.Src}, loc, scale)
}

func newF(a *Args) (Distribution, error) {
	dfn, dfd := a.Positive("dfn"), a.Positive("dfd")
	loc, scale := a.Loc(), a.Scale()
	return a.Freeze(distuv.F{D1: dfn, D2: dfd, Src: a.Src}, loc, scale)
}

func newInverseGamma(a *Args) (Distribution, error) {
	shape := a.Positive("a")
	loc, scale := a.Loc(), a.Scale()
	return a.Freeze(distuv.InverseGamma{Alpha: shape, Beta: scale, Src: a.Src}, loc, 1)
}

func newLaplace(a *Args) (Distribution, error) {
	loc, scale := a.Loc(), a.Scale()
	return a.Freeze(distuv.Laplace{Mu: loc, Scale: scale, Src: a.Src}, 0, 1)
}

func newGumbelRight(a *Args) (Distribution, error) {
	loc, scale := a.Loc(), a.Scale()
	return a.Freeze(distuv.GumbelRight{Mu: loc, Beta: scale, Src: a.Src}, 0, 1)
}

func newPareto(a *Args) (Distribution, error) {
	b := a.Positive("b")
	loc, scale := a.Loc(), a.Scale()
	return a.Freeze(distuv.Pareto{Xm: scale, Alpha: b, Src: a.Src}, loc, 1)
}

func newPoisson(a *Args) (Distribution, error) {
	mu := a.NonNegative("mu")
	loc := a.Loc()
	return a.Freeze(distuv.Poisson{Lambda: mu, Src: a.Src}, loc, 1)
}

func newBinomial(a *Args) (Distribution, error) {
	n, p := a.Count("n"), a.Probability("p")
	loc := a.Loc()
	return a.Freeze(distuv.Binomial{N: n, P: p, Src: a.Src}, loc, 1)
}

func newBernoulli(a *Args) (Distribution, error) {
	p := a.Probability("p")
	loc := a.Loc()
	return a.Freeze(distuv.Bernoulli{P: p, Src: a.Src}, loc, 1)
}
