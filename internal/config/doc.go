// Package config provides configuration structures and utilities for
// savedindex. It defines the default project layout (where the saved index,
// the metadata documents and the annotation store live), the optional YAML
// configuration file that overrides it, and the run-history settings.
package config
