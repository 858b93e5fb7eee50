package dist

import (
	"github.com/viant/afs"
	"github.com/viant/distload/dist/config"
	"github.com/viant/distload/internal/matcher"
	"github.com/viant/distload/internal/syncmap"
)

// init orchestrates the preparation steps once all options have been
// applied.
func (s *Service) init() error {
	s.initDefaults()

	// Validate configuration early to fail fast when possible.
	if err := s.config.Validate(); err != nil {
		return err
	}
	s.initFamilies()
	return nil
}

// initDefaults applies fall-back values for optional dependencies that were
// not supplied through options.
func (s *Service) initDefaults() {
	if s.config == nil {
		s.config = &config.Config{}
	} else { // detach from the caller's instance
		s.config = s.config.Clone()
	}
	if len(s.config.Families) == 0 { // enable all built-in families
		s.config.Families = append(s.config.Families, "*")
	}
	if s.fs == nil {
		s.fs = afs.New()
	}
}

// initFamilies selects built-in families matching configured patterns and
// adds custom ones on top.
func (s *Service) initFamilies() {
	s.families = syncmap.New[Factory]()
	for name, factory := range builtinFamilies {
		if matcher.MatchAny(s.config.Families, name) {
			s.families.Set(name, factory)
		}
	}
	for name, factory := range s.custom {
		if factory != nil {
			s.families.Set(name, factory)
		}
	}
}
