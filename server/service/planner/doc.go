// Package planner implements the agenda planning engine: priority scoring
// for study units, spaced-repetition review generation from study history,
// and greedy calendar filling under daily capacity constraints.
//
// Key properties:
//   - Pure computation: no I/O, no clock reads, inputs are never mutated
//   - Deterministic: identical inputs and "today" produce identical output
//   - Degrades instead of failing: malformed settings yield empty plans
//
// The engine consumes a discipline tree and a Settings value and produces a
// fresh map of date string to DailyPlan covering a fixed 90-day horizon.
// Persistence and transport live in the surrounding service and store layers.
package planner
