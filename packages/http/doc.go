// Package http provides the outbound HTTP client used by userportal.
//
// It wraps the standard library's http package with:
//   - A fixed default timeout with per-request override
//   - Query parameter and header handling on a small Request type
//   - Response capture (status, headers, body, duration)
//   - URL validation so malformed base URLs fail before dialing
package http
