// Package env reads userportal settings from the process environment and
// from .env files.
//
// Recognized variables:
//   - USERPORTAL_URL      base URL of the user service
//   - USERPORTAL_TOKEN    bearer token for mutating calls
//   - USERPORTAL_TIMEOUT  request timeout, e.g. "10s"
//   - USERPORTAL_LISTEN   web UI listen address
//
// Values already present in the process environment win over the file.
package env
