// Package config loads the service configuration.
//
// Values come from a YAML file validated with struct tags, then the
// environment overrides them: ADDR, PROM_ADDR, DB_DRIVER, DSN and GIT_REV.
package config
