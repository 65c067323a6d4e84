// SPDX-License-Identifier: MPL-2.0

// Package config handles typo3-setup configuration using Viper with CUE as the file format.
//
// Configuration is layered, highest precedence first: command-line overrides, the
// process environment (TYPO3_PATH_COMPOSER_ROOT, TYPO3_PATH_ROOT,
// TYPO3_SETUP_NO_INTERACTION), an optional typo3-setup.cue file in the composer
// root, and built-in defaults. The CUE file is validated against an embedded
// #Config schema (config_schema.cue).
//
// The package also owns the run gate: setup only runs once TYPO3_IS_SET_UP is
// set to a value other than "0".
package config
