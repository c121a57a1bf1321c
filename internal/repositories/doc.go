// Package repositories implements SQLite persistence for the run ledger.
//
// The ledger records one row per migration or cleanup invocation so operators
// can see past runs, their resume offsets, and their final counters without
// digging through audit logs. Writes are best-effort: the drivers never fail a
// run because the ledger could not be updated.
//
// Repositories support soft deletes via deleted_at timestamps and exclude
// deleted rows from queries by default. The [NextSequence] function atomically
// increments per-table sequence counters in dedicated sequence tables,
// providing stable human-readable ordering (run #42) independent of UUIDs.
package repositories
