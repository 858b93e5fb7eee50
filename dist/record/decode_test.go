package record

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/distload/dist/record/rds"
)

// bzip2Record is saveRDS(list(name = "weibull", params = list(shape = 2.1,
// scale = 3.84)), compress = "bzip2").
var bzip2Record = []byte{
	0x42, 0x5a, 0x68, 0x39, 0x31, 0x41, 0x59, 0x26, 0x53, 0x59, 0x75, 0x7b, 0xa2, 0xd6, 0x00, 0x00,
	0x4d, 0xff, 0xcd, 0xff, 0xb1, 0x48, 0x01, 0x00, 0x02, 0x00, 0x40, 0x41, 0x00, 0x26, 0x40, 0x3a,
	0x67, 0x5a, 0x80, 0x02, 0x00, 0x00, 0x40, 0x00, 0x06, 0x00, 0x08, 0x00, 0x01, 0xa0, 0x00, 0x72,
	0x22, 0x04, 0x00, 0x00, 0x18, 0x80, 0x1a, 0x7a, 0x9e, 0x90, 0x48, 0xa2, 0x35, 0x34, 0x6d, 0x40,
	0x00, 0x62, 0x00, 0x69, 0x92, 0x97, 0x1a, 0xeb, 0x26, 0x40, 0x9c, 0xe4, 0xd1, 0x2b, 0xde, 0x3e,
	0xad, 0x72, 0x0a, 0x18, 0x76, 0xdd, 0x0b, 0xf1, 0x80, 0x85, 0xaa, 0x4e, 0xa8, 0x38, 0x44, 0xd6,
	0xd2, 0xd8, 0x26, 0x8e, 0x2c, 0x8b, 0x0c, 0x1d, 0x0c, 0x6d, 0x0d, 0xa4, 0x45, 0x82, 0xb9, 0x94,
	0xb5, 0x51, 0x85, 0x96, 0x66, 0x2e, 0xd1, 0xb3, 0x2b, 0xe5, 0xc0, 0x3e, 0x0f, 0xab, 0x5a, 0x44,
	0x8e, 0xa6, 0x40, 0x24, 0x73, 0x36, 0xa7, 0x24, 0x21, 0x8d, 0x40, 0x42, 0xf2, 0x2e, 0x8d, 0xbb,
	0x5e, 0x80, 0x47, 0xe2, 0xee, 0x48, 0xa7, 0x0a, 0x12, 0x0e, 0xaf, 0x74, 0x5a, 0xc0,
}

func encodeRDS(t *testing.T, obj *rds.Object, options ...rds.WriteOption) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, rds.Write(buf, obj, options...))
	return buf.Bytes()
}

func TestDetect(t *testing.T) {
	record := rds.NewList([]string{"name"}, rds.NewString("gamma"))
	testCases := []struct {
		name     string
		data     []byte
		expected Format
	}{
		{name: "gzip rds", data: encodeRDS(t, record), expected: FormatRDS},
		{name: "xz rds", data: encodeRDS(t, record, rds.WithCompression(rds.XZ)), expected: FormatRDS},
		{name: "bzip2 rds", data: bzip2Record, expected: FormatRDS},
		{name: "plain rds", data: encodeRDS(t, record, rds.WithCompression(rds.NoCompression)), expected: FormatRDS},
		{name: "workspace", data: []byte("RDX3\nX\n"), expected: FormatRDS},
		{name: "yaml", data: []byte("name: gamma\n"), expected: FormatYAML},
		{name: "json", data: []byte(`{"name":["gamma"]}`), expected: FormatYAML},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.EqualValues(t, tc.expected, Detect(tc.data))
		})
	}
}

func TestDecode(t *testing.T) {
	weibull := rds.NewList([]string{"name", "params"},
		rds.NewString("weibull"),
		rds.NewList([]string{"shape", "scale"}, rds.NewReal(2.1), rds.NewReal(3.84)),
	)
	namedVector := rds.NewReal(2.1, 3.84)
	namedVector.SetAttr("names", rds.NewString("shape", "scale"))

	testCases := []struct {
		name string
		data []byte
	}{
		{name: "rds list", data: encodeRDS(t, weibull)},
		{name: "rds named vector", data: encodeRDS(t, rds.NewList([]string{"name", "params"}, rds.NewString("weibull"), namedVector))},
		{name: "bzip2 rds", data: bzip2Record},
		{name: "uncompressed rds", data: encodeRDS(t, weibull, rds.WithCompression(rds.NoCompression))},
		{name: "yaml", data: []byte("name: [weibull]\nparams:\n  shape: [2.1]\n  scale: 3.84\n")},
		{name: "json", data: []byte(`{"name": "weibull", "params": {"shape": [2.1], "scale": [3.84]}}`)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			value, err := Decode(tc.data)
			require.NoError(t, err)
			assert.EqualValues(t, []string{"name", "params"}, value.Keys())

			name, ok := value.Field("name")
			require.True(t, ok)
			first, _ := name.First()
			assert.EqualValues(t, "weibull", first)

			params, ok := value.Field("params")
			require.True(t, ok)
			assert.EqualValues(t, []string{"shape", "scale"}, params.Keys())
			scale, _ := params.Field("scale")
			first, _ = scale.First()
			assert.EqualValues(t, 3.84, first)
		})
	}
}

func TestDecodeRDS_Workspace(t *testing.T) {
	// save(incubation, file = ...) stores a pairlist of bindings
	var buf bytes.Buffer
	buf.WriteString("RDX3\n")
	require.NoError(t, rds.Write(&buf, rds.NewPairList([]string{"incubation"},
		rds.NewList([]string{"name", "params"}, rds.NewString("gamma"), rds.NewList([]string{"shape"}, rds.NewReal(2))),
	), rds.WithCompression(rds.NoCompression)))

	value, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.EqualValues(t, []string{"name", "params"}, value.Keys())
}

func TestFromRDS(t *testing.T) {
	factor := rds.NewInt(2, rds.NAInteger, 1)
	factor.SetAttr("levels", rds.NewString("gamma", "weibull"))
	factor.SetAttr("class", rds.NewString("factor"))

	testCases := []struct {
		name     string
		input    *rds.Object
		expected *Value
	}{
		{name: "null", input: rds.Null(), expected: &Value{}},
		{name: "factor", input: factor, expected: NewValue("weibull", nil, "gamma")},
		{name: "logical", input: &rds.Object{Type: rds.LogicalType, Ints: []int32{1, 0, rds.NAInteger}}, expected: NewValue(true, false, nil)},
		{name: "integer", input: rds.NewInt(4, rds.NAInteger), expected: NewValue(int32(4), nil)},
		{name: "string", input: &rds.Object{Type: rds.StringType, Strings: []string{"a", ""}, NA: []bool{false, true}}, expected: NewValue("a", nil)},
		{name: "raw", input: &rds.Object{Type: rds.RawType, Raw: []byte{7}}, expected: NewValue(uint8(7))},
		{
			name:     "pairlist",
			input:    rds.NewPairList([]string{"x"}, rds.NewReal(1)),
			expected: &Value{Items: []interface{}{NewValue(1.0)}, Names: []string{"x"}},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := FromRDS(tc.input)
			require.NoError(t, err)
			assert.EqualValues(t, tc.expected, actual)
		})
	}
}

func TestFromRDS_Unsupported(t *testing.T) {
	_, err := FromRDS(&rds.Object{Type: rds.EnvType})
	var typeErr *rds.UnsupportedTypeError
	assert.True(t, errors.As(err, &typeErr))
}

func TestDecodeYAML_Errors(t *testing.T) {
	_, err := DecodeYAML([]byte(""))
	assert.Error(t, err)
	_, err = DecodeYAML([]byte("name: [unterminated"))
	assert.Error(t, err)
}
