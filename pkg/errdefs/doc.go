// Package errdefs defines the error taxonomy of the spec layer: InvalidSpec,
// Conflict and NotFound sentinels, plus aggregated field-path validation
// errors. The spec layer never recovers from invalid input; it rejects
// eagerly so no invalid spec is ever persisted.
package errdefs
