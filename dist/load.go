package dist

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/viant/distload/dist/record"
	"github.com/viant/distload/internal/conv"
)

const (
	nameField   = "name"
	paramsField = "params"
)

type loadOptions struct {
	nameMap  NameMap
	paramMap ParamMap
}

// LoadOption customizes a single load.
type LoadOption func(*loadOptions)

// WithNameMap replaces the name translation table for one load.
func WithNameMap(mapping NameMap) LoadOption {
	return func(o *loadOptions) {
		o.nameMap = mapping
	}
}

// WithParamMap replaces the parameter translation table for one load.
func WithParamMap(mapping ParamMap) LoadOption {
	return func(o *loadOptions) {
		o.paramMap = mapping
	}
}

// Load reads a distribution record from any afs supported URL (a local
// path, file://, mem://, ...) and returns the distribution it describes.
func (s *Service) Load(ctx context.Context, URL string, options ...LoadOption) (Distribution, error) {
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("download distribution record %q: %w", URL, err)
	}
	return s.LoadBytes(data, options...)
}

// LoadReader reads a distribution record from r.
func (s *Service) LoadReader(r io.Reader, options ...LoadOption) (Distribution, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read distribution record: %w", err)
	}
	return s.LoadBytes(data, options...)
}

// LoadBytes decodes a serialized distribution record.
func (s *Service) LoadBytes(data []byte, options ...LoadOption) (Distribution, error) {
	value, err := record.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode distribution record: %w", err)
	}
	return s.LoadRecord(value, options...)
}

// LoadRecord builds the distribution described by a decoded record. Any
// failure aborts the load; no partial result is returned.
func (s *Service) LoadRecord(value *record.Value, options ...LoadOption) (Distribution, error) {
	opts := &loadOptions{}
	for _, option := range options {
		option(opts)
	}
	name, params, err := extract(value)
	if err != nil {
		return nil, err
	}
	family, err := s.ResolveName(name, opts.nameMap)
	if err != nil {
		return nil, err
	}
	if !s.families.Has(family) {
		return nil, &UnknownDistributionError{Name: family}
	}
	kwargs, err := s.ResolveParams(family, params, opts.paramMap)
	if err != nil {
		return nil, err
	}
	return s.NewDistribution(family, kwargs)
}

// extract reads the distribution name and the first element of every named
// parameter from a record holding exactly the name and params fields.
func extract(value *record.Value) (string, map[string]float64, error) {
	keys := value.Keys()
	if !hasExactFields(keys, nameField, paramsField) {
		return "", nil, malformed("expected fields %v, got %v", quoted([]string{nameField, paramsField}), quoted(keys))
	}
	nameValue, _ := value.Field(nameField)
	first, ok := nameValue.First()
	if !ok {
		return "", nil, malformed("%v is empty", nameField)
	}
	name, ok := first.(string)
	if !ok {
		return "", nil, malformed("%v must be a string, got %T", nameField, first)
	}
	paramsValue, _ := value.Field(paramsField)
	if paramsValue.Len() > 0 && !paramsValue.Named() {
		return "", nil, malformed("%v must be named", paramsField)
	}
	params := make(map[string]float64, paramsValue.Len())
	for i, key := range paramsValue.Keys() {
		if _, ok := params[key]; ok {
			return "", nil, malformed("duplicate parameter %q", key)
		}
		first, ok := paramsValue.At(i).First()
		if !ok {
			return "", nil, malformed("parameter %q is empty", key)
		}
		v, ok := conv.Float64(first)
		if !ok {
			return "", nil, malformed("parameter %q must be numeric, got %T", key, first)
		}
		params[key] = v
	}
	return name, params, nil
}

func hasExactFields(keys []string, expected ...string) bool {
	if len(keys) != len(expected) {
		return false
	}
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		if seen[key] {
			return false
		}
		seen[key] = true
	}
	for _, name := range expected {
		if !seen[name] {
			return false
		}
	}
	return true
}

var (
	defaultOnce    sync.Once
	defaultService *Service
	defaultErr     error
)

// Load reads a distribution record with a Service built from defaults.
func Load(ctx context.Context, URL string, options ...LoadOption) (Distribution, error) {
	defaultOnce.Do(func() {
		defaultService, defaultErr = New()
	})
	if defaultErr != nil {
		return nil, defaultErr
	}
	return defaultService.Load(ctx, URL, options...)
}
