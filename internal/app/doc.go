// Package app contains the core application logic. It wires the registry,
// the generation engine and the executor together behind the Plan and
// Reconcile use cases, decoupled from any specific entrypoint like a CLI.
package app
