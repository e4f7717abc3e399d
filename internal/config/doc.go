// Package config loads runtime configuration of the host process from
// multiple sources (YAML file, environment variables, CLI flags) with
// precedence: CLI flags > YAML config > Environment variables > Defaults.
// The scene documents served to the front end are not part of this package;
// see package assets.
package config
