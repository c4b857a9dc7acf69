// Package error provides the failure catalog raised while validating a
// pipeline's stage graph.
//
// It exposes a single concrete type Error that implements contract.Error and
// integrates with the standard library's errors helpers (Is/As) via Unwrap.
//
// Key characteristics:
//   - Closed set of kinds, each with a fixed message template
//   - Structured, defensively-copied Detail per kind for programmatic branching
//   - Stable, machine-facing Code and Key derived from the kind
//   - Optional cause, with a best-effort diagnostic trace captured at construction
//   - Immutable once built; safe to share across goroutines
//
// Construction goes through New / Must or the typed New* constructors.
// Invalid input (empty paths, empty stage lists) is reported as a
// *ConstructionError matching ErrInvalidConstruction, never as a catalog kind.
package error
