// Package cli is responsible for parsing command-line arguments, loading
// configuration, and handling process-level concerns like exit codes. It
// exposes the plan and apply use cases of the app package as cobra
// commands.
package cli
