// Package cmd implements the userportal CLI commands using Cobra.
//
// Available commands:
//   - serve: Run the browser form UI
//   - get, patch, add: Issue one user API call from the terminal
//   - mock: Run a local stand-in for the user API
//   - init: Write a starter userportal.yaml
//   - version: Show version information
//
// Settings are layered: config file, then .env file and USERPORTAL_*
// variables, then flags.
package cmd
