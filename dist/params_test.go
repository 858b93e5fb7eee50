package dist

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveParams(t *testing.T) {
	actual, err := ResolveParams("weibull_min", map[string]float64{"shape": 10, "scale": 20}, nil)
	require.NoError(t, err)
	assert.EqualValues(t, Params{"c": 10, "scale": 20}, actual)
}

func TestResolveParams_Mapping(t *testing.T) {
	testCases := []struct {
		description string
		family      string
		params      map[string]float64
		mapping     ParamMap
		expected    Params
	}{
		{
			description: "extra source parameters are ignored",
			family:      "gamma",
			params:      map[string]float64{"shape": 2, "scale": 3, "rate": 0.3},
			expected:    Params{"a": 2, "scale": 3},
		},
		{
			description: "custom table",
			family:      "beta",
			params:      map[string]float64{"shape": 2.1, "scale": 3.84},
			mapping:     ParamMap{"beta": {"shape": "a", "scale": "b"}},
			expected:    Params{"a": 2.1, "b": 3.84},
		},
		{
			description: "empty inner table",
			family:      "norm",
			params:      map[string]float64{"mean": 1},
			mapping:     ParamMap{"norm": {}},
			expected:    Params{},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			actual, err := ResolveParams(tc.family, tc.params, tc.mapping)
			require.NoError(t, err)
			assert.EqualValues(t, tc.expected, actual)
		})
	}
}

func TestResolveParams_Errors(t *testing.T) {
	params := map[string]float64{"shape": 10, "scale": 20}

	_, err := ResolveParams("does_not_exist", params, nil)
	var mappingErr *UnknownParameterMappingError
	require.True(t, errors.As(err, &mappingErr))
	assert.EqualValues(t, "does_not_exist", mappingErr.Family)

	_, err = ResolveParams("weibull_min", params, ParamMap{"beta": {"shape": "a"}})
	assert.True(t, errors.As(err, &mappingErr))

	_, err = ResolveParams("weibull_min", map[string]float64{"shape": 10}, nil)
	var missingErr *MissingParameterError
	require.True(t, errors.As(err, &missingErr))
	assert.EqualValues(t, "weibull_min", missingErr.Family)
	assert.EqualValues(t, "scale", missingErr.Parameter)
}

func TestDefaultParamMap_Copy(t *testing.T) {
	m := DefaultParamMap()
	m["weibull_min"]["shape"] = "k"
	actual, err := ResolveParams("weibull_min", map[string]float64{"shape": 1, "scale": 2}, nil)
	require.NoError(t, err)
	assert.EqualValues(t, Params{"c": 1, "scale": 2}, actual)
}
