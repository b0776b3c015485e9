// Package history persists backup run outcomes to a local SQLite ledger.
//
// The ledger is strictly observational: it records what each run did and
// feeds the history subcommand. Failures to record are logged by callers
// and never affect the run's outcome or exit code.
package history
