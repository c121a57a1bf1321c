// Package tasks orchestrates bulk user operations against the remote identity provider with real-time progress reporting.
//
// # Core Operations
//
//  1. [MigrationEngine.Run] : Sequential bulk user migration
//     - Paces every submission with a fixed inter-record delay
//     - Validates each merged record before it reaches the provider
//     - Classifies outcomes: created, already exists (422), rate limited (429), failed
//     - Retries rate-limited submissions after a cooldown, indefinitely but logged
//     - Resumes from a configurable offset after interruption
//
//  2. [CleanupEngine.Run] : Bulk deletion for non-production instances
//     - Pages through the full remote user list
//     - Deletes sequentially, logging every outcome
//     - Aborts on the first delete error
//
// # Outcome accounting
//
// Each engine owns its counters for the duration of a run and returns them in
// a result struct ([MigrationResult], [CleanupResult]) read once for the
// operator summary. Exceptional outcomes (duplicates, failures, deletions) are
// appended to the run's audit log; plain migration successes are not.
//
// # Progress Reporting
//
// All operations send [ProgressUpdate] values over a caller-supplied channel.
// Updates use select with default so reporting never blocks the driver loop.
package tasks
