// Package portal turns form input into user-service calls.
//
// An Action names one of the three supported calls. Build converts an
// action plus the operator's field values into an outbound request, and a
// Dispatcher sends it and returns a Result holding either the response or
// the transport error. Field values are never validated or coerced: what
// the operator typed is what the backend receives.
package portal
