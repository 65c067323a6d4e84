// SPDX-License-Identifier: MPL-2.0

// Package dotenv reads env files (.env.dist, .env.install) into ordered entries.
//
// Parsing never touches the process environment. The parser takes a snapshot of an
// Environment before it starts and reports only the variables the file introduces:
// names already present in the snapshot are kept as they are, exactly like a
// non-overriding dotenv loader would leave them. Parsing one file therefore cannot
// leak variables into the parse of the next one.
package dotenv
