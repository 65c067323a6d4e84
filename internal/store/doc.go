// SPDX-License-Identifier: MPL-2.0

// Package store loads and persists the project settings tree.
//
// Two sources are read on load: an optional legacy file (historically the web
// root's LocalConfiguration) and the required canonical settings file. The legacy
// file is ignored when it carries the auto-generated marker, because a file this
// tool wrote is not hand-authored input. The canonical file is deep-merged over
// the legacy one.
//
// The file format follows the extension: .cue, .yaml/.yml, .toml or .json/.jsonc.
// Every written file starts with a comment holding the marker.
package store
