// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Every knob of the geotagging engine (matching tolerances, interpolation,
// clock offset, worker count) travels inside an explicit AppConfig value;
// the engine packages keep no defaults of their own.
package config
