// Package orchestrator wires the loader → merger → validator → arranger →
// renderer pipeline behind a single Generate call, with dependency injection
// friendly options for each stage.
package orchestrator
