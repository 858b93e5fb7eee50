package dist

import (
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/distload/dist/record/rds"
)

// incubationParams returns Weibull shape and scale for a mean of 3.4 and a
// standard deviation of 1.7, the influenza incubation period.
func incubationParams() (float64, float64) {
	cv := func(k float64) float64 {
		g1 := math.Gamma(1 + 1/k)
		return math.Sqrt(math.Gamma(1+2/k)/(g1*g1) - 1)
	}
	lo, hi := 1.0, 5.0
	for i := 0; i < 200; i++ {
		mid := (lo + hi) / 2
		if cv(mid) > 0.5 {
			lo = mid
		} else {
			hi = mid
		}
	}
	shape := (lo + hi) / 2
	return shape, 3.4 / math.Gamma(1+1/shape)
}

func distributionRecord(name string, names []string, values ...float64) *rds.Object {
	params := make([]*rds.Object, len(values))
	for i, v := range values {
		params[i] = rds.NewReal(v)
	}
	return rds.NewList([]string{nameField, paramsField}, rds.NewString(name), rds.NewList(names, params...))
}

func incubationRecord() *rds.Object {
	shape, scale := incubationParams()
	return distributionRecord("weibull", []string{"shape", "scale"}, shape, scale)
}

func uploadRecord(t *testing.T, URL string, obj *rds.Object) {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, rds.Write(buf, obj))
	require.NoError(t, afs.New().Upload(context.Background(), URL, 0644, buf))
}

func uploadText(t *testing.T, URL, content string) {
	t.Helper()
	require.NoError(t, afs.New().Upload(context.Background(), URL, 0644, bytes.NewBufferString(content)))
}
