// Package cronexpr parses, validates and describes five-field cron expressions.
//
// An expression is five whitespace-separated fields:
//
//	Field name   | Allowed values  | Allowed special characters
//	----------   | --------------  | --------------------------
//	Minute       | 0-59            | * / , -
//	Hour         | 0-23            | * / , -
//	Day of month | 1-31            | * / , -
//	Month        | 1-12 or JAN-DEC | * / , -
//	Day of week  | 0-6 or MON-SUN  | * / , -
//
// Each field is a comma-separated list of clauses. A clause is one of:
//   - "*" (any value)
//   - a single value: "5", "JAN", "MON"
//   - a range: "1-5"
//   - a stepped range: "0-20/2"
//   - a step from a start to the field maximum: "*/15", "10/5"
//
// Month and day-of-week names are upper-case only and are accepted as single
// values, never as range bounds or steps.
//
// Parse is the entry point; Render (or Entry.String) turns a parsed Entry into
// an English sentence. Nothing in this package computes fire times.
//
// All package-level tables are read-only, so Parse and Render are safe for
// concurrent use.
package cronexpr
