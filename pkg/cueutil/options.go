// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize is the largest CUE document DecodeMap accepts (5 MiB).
const DefaultMaxFileSize int64 = 5 * 1024 * 1024

type (
	// Option configures DecodeMap.
	Option func(*options)

	options struct {
		filename    string
		schema      string
		schemaPath  string
		concrete    bool
		maxFileSize int64
	}
)

func defaultOptions() options {
	return options{
		concrete:    true,
		maxFileSize: DefaultMaxFileSize,
	}
}

// WithFilename sets the filename used in error messages.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// WithSchema unifies the data with the definition at schemaPath (e.g. "#Config")
// of the given schema source before decoding.
func WithSchema(schema, schemaPath string) Option {
	return func(o *options) {
		o.schema = schema
		o.schemaPath = schemaPath
	}
}

// WithConcrete controls whether all values must be concrete. Defaults to true;
// schemas with optional fields validate with false.
func WithConcrete(concrete bool) Option {
	return func(o *options) {
		o.concrete = concrete
	}
}

// WithMaxFileSize overrides DefaultMaxFileSize.
func WithMaxFileSize(size int64) Option {
	return func(o *options) {
		o.maxFileSize = size
	}
}
