// SPDX-License-Identifier: MPL-2.0

// Package setup reconciles the env template, the first-run prompt file and the
// project settings into the final env file and the residual settings file.
//
// Resolver.Run performs the one-time bootstrap in a fixed order: read the
// template, ask the prompt questions, load the settings, fill every
// path-addressed key from the settings and remove it from the tree, write the
// env file, persist the residual tree and run the console follow-up commands.
package setup
