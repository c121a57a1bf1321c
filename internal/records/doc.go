// Package records implements the offline half of the migration pipeline: loading
// the two export files, joining phone numbers into user records, and validating
// merged records against the submission schema.
//
// # Merging
//
// [MergePhones] is a pure transform. Output length and order always match the
// primary input; a user with no matching phone row passes through unchanged;
// when multiple phone rows share an ID the first one wins.
//
// # Validation
//
// [Validate] normalizes and checks one merged record. Failures are returned as a
// [*ValidationError] carrying every violated field, and callers treat them as
// recoverable per-record outcomes: a record that fails validation is skipped
// and logged, never submitted, and it never aborts a run.
package records
