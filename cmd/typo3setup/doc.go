// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for typo3-setup.
//
// This package implements the Cobra command hierarchy: the root command, the
// run command performing the one-time configuration bootstrap, and the
// settings and config inspection commands.
package cmd
