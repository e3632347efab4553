// Package web serves the browser form for issuing user-service calls.
//
// The page has a base URL field, a password-type token field, an action
// selector and the fields of the selected action. Each press of the action
// button sends exactly one request through a portal.Dispatcher and shows
// the status code with the structured or raw body, or the transport error.
package web
