// Package logging assembles the structured slog loggers used across the
// netconnect host tooling.
//
// It owns console/JSON handler selection, level parsing, and output plumbing,
// and exposes thin attribute helpers plus a no-op logger for tests and wiring
// code that cannot fail. Prefer these constructors over hand-rolled slog
// setup so every component emits log lines with the same shape.
package logging
