// Package config defines the format-agnostic construction plan, along with
// the Loader interface that reads plans from some source.
//
// The `config.Plan` is the single source of truth for the `executor`
// package. Concrete loaders, such as for HCL, live in separate packages.
package config
