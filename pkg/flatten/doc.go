// Package flatten converts typed Notion records into flat rows of string
// cells for tabular output.
//
// The column order is fixed once per export run by Columns: three base
// columns (ID, Created, Last Edited) followed by the sorted union of every
// property name observed in the run. Each record then flattens to a row of
// exactly that width, with empty cells where a property is absent, so the
// output table is always rectangular.
//
// Flattening is total. Every supported property kind has an explicit
// rendering rule, and unknown kinds fall back to a best-effort coercion of
// the raw JSON value. No input can make Flatten fail; defective values
// become empty cells and are logged with the offending record ID.
package flatten
