// Package config defines the settings of a monitoring run and provides
// helpers to load, validate and save them in YAML format.
//
// The Config type holds the loop parameters, the sensor selection, the log level
// and the optional report destination. Validate fills defaults for unset fields.
package config
