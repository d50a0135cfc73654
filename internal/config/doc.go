// Package config loads the application settings.
//
// Settings come, in increasing order of precedence, from built-in defaults,
// an optional codeshape.yaml file, CODESHAPE_* environment variables and
// command-line flags bound by the caller. The merged result is validated
// before it is handed to the application.
package config
