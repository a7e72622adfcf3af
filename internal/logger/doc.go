// Package logger wraps zap and offers:
//   - a global sugared logger with a console encoder writing to stderr,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and per-logger level overrides,
//   - convenience functions (Infof, ErrorKV, etc.).
//
// The monitor's driver passes a context around and extracts the logger from it,
// keeping diagnostics separate from the console report printed on stdout.
package logger
