// Package sensor provides the reading sources consumed by the alarm monitor.
//
// A Sensor yields one scalar measurement per call. Three variants are available:
// Constant for a fixed value, Sequence for a scripted list of values that clamps
// on its last element, and Live for the simulated plant sensor used in production runs.
package sensor
