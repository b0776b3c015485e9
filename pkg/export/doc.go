// Package export orchestrates full backups of configured Notion databases
// into timestamped CSV files.
//
// # Pipeline
//
// For each configured database, in order:
//
//  1. Drain every query page in cursor order, pacing each request through
//     the shared rate limiter and retrying transient failures up to the
//     configured attempt cap.
//  2. Fix the column order from the union of property names across all
//     fetched records.
//  3. Flatten every record to a row and write one complete CSV file,
//     named <database>_<timestamp>.csv, via temp-file-and-rename.
//
// A terminal fetch or write failure fails that database only; the run
// continues with the next database and the failure is recorded in the
// RunSummary. The summary's ExitCode is 0 only when every database
// succeeded, which is what the invoking scheduler keys off.
//
// Processing is strictly sequential: one database at a time, one page at a
// time. The remote API enforces a single shared rate limit, so parallelism
// would buy nothing but complexity here.
package export
