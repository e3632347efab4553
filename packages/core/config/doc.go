// Package config handles configuration loading and management for userportal.
//
// Configuration only prefills the form and tunes the client; every value can
// still be changed by the operator per submission. It provides:
//   - Loading from .userportal.yaml, userportal.yaml or the JSON equivalents
//   - Default values (10s timeout, local listen address)
//   - Merging of file, environment and flag layers
package config
