// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE helpers for settings files and the tool
// configuration.
//
// Decoding follows the same three steps everywhere:
//
//  1. Compile the (optional) embedded schema
//  2. Compile user data and unify it with the schema definition
//  3. Validate and decode to a Go map
//
// # Usage
//
//	//go:embed config_schema.cue
//	var schema string
//
//	m, err := cueutil.DecodeMap(data,
//	    cueutil.WithFilename("typo3-setup.cue"),
//	    cueutil.WithSchema(schema, "#Config"),
//	    cueutil.WithConcrete(false),
//	)
//	if err != nil {
//	    return err // error includes the CUE path of the offending field
//	}
//
// EncodeFile performs the inverse for plain data, producing a formatted CUE file.
package cueutil
