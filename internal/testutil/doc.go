// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Helpers build in-memory project trees (NewProject, MustWriteFile), read them
// back (MustReadFile, MustNotExist) and build fake environments (Env).
package testutil
