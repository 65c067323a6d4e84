// SPDX-License-Identifier: MPL-2.0

// Package settings models the nested project settings as a path-addressable tree.
//
// A Tree is a plain string-keyed mapping whose values are scalars, lists or nested
// mappings, exactly as decoded from a settings source file. Values are addressed with
// a Path, an ordered list of segments that is either parsed from its dotted form
// ("SYS.encryptionKey") or derived from an env key that follows the double-underscore
// convention ("TYPO3__SYS__encryptionKey").
//
// Removing a leaf collapses every ancestor that becomes empty, so the tree left after
// extracting values never carries hollow sections.
package settings
