// Package config defines the YAML/JSON configuration model of the
// distribution loader: replacement name and parameter translation tables and
// the set of enabled distribution families. Configuration can be loaded from
// any afs URL or assembled from environment variables.
package config
