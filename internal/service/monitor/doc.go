// Package monitor runs a monitoring session: it builds the configured sensor,
// evaluates the alarm monitor at a fixed interval, prints a status line per
// reading and a final summary, and optionally saves a session report.
package monitor
