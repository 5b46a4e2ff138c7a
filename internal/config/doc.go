// Package config defines the format-agnostic model of authored graphs and
// the Loader interface that format-specific packages implement.
//
// The `config.Model` is the single source of truth for the builder, which
// turns it into authoring graphs. Concrete loaders, such as the HCL one,
// live in separate packages.
package config
