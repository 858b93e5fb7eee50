package dist

import (
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/distload/dist/config"
	"github.com/viant/distload/internal/syncmap"
	"golang.org/x/exp/rand"
)

// Service bundles configuration, storage access and the family registry
// used to load distributions. Initialisation lives in bootstrap.go.
type Service struct {
	fs       afs.Service
	config   *config.Config
	src      rand.Source
	custom   map[string]Factory
	families *syncmap.Map[Factory]
}

// Option modifies a service instance before it is initialised.
type Option func(*Service)

// WithConfig sets a custom configuration. The service keeps a copy, so later
// changes to cfg do not affect it. When omitted a zero value config is
// assumed: all built-in families and the default tables.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// WithFS overrides the storage service used to read records.
func WithFS(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithSource sets the random source passed to every distribution.
func WithSource(src rand.Source) Option {
	return func(s *Service) {
		s.src = src
	}
}

// WithFamily registers an additional family, replacing a built-in one with
// the same name. Custom families are not subject to configured patterns.
func WithFamily(name string, factory Factory) Option {
	return func(s *Service) {
		if s.custom == nil {
			s.custom = map[string]Factory{}
		}
		s.custom[name] = factory
	}
}

// New constructs a new service instance.
func New(opts ...Option) (*Service, error) {
	svc := &Service{}
	for _, opt := range opts {
		opt(svc)
	}
	if err := svc.init(); err != nil {
		return nil, err
	}
	return svc, nil
}

// Config returns the effective configuration. Callers must treat the
// returned object as read-only.
func (s *Service) Config() *config.Config { return s.config }

// Families returns sorted names of every family the service can
// instantiate.
func (s *Service) Families() []string {
	return s.families.Keys()
}

// Register adds or replaces a family; safe to call concurrently with Load.
func (s *Service) Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("family name was empty")
	}
	if factory == nil {
		return fmt.Errorf("family %q: factory was nil", name)
	}
	s.families.Set(name, factory)
	return nil
}

// ResolveName translates a source distribution name into a family of this
// service. A nil mapping selects the service name table.
func (s *Service) ResolveName(name string, mapping NameMap) (string, error) {
	if mapping == nil {
		mapping = s.nameMap()
	}
	return resolveName(name, mapping, s.families.Has)
}

// ResolveParams translates source parameters into keyword arguments. A nil
// mapping selects the service parameter table.
func (s *Service) ResolveParams(family string, params map[string]float64, mapping ParamMap) (Params, error) {
	if mapping == nil {
		mapping = s.paramMap()
	}
	return ResolveParams(family, params, mapping)
}

// NewDistribution instantiates family with keyword arguments.
func (s *Service) NewDistribution(family string, params Params) (Distribution, error) {
	factory, ok := s.families.Lookup(family)
	if !ok {
		return nil, &UnknownDistributionError{Name: family}
	}
	return factory(NewArgs(family, params, s.src))
}

func (s *Service) nameMap() NameMap {
	if s.config.NameMap != nil {
		return s.config.NameMap
	}
	return defaultNameMap
}

func (s *Service) paramMap() ParamMap {
	if s.config.ParamMap != nil {
		return s.config.ParamMap
	}
	return defaultParamMap
}
