// Package uid provides unique identifier generators.
//
// NumberID implementations produce 64-bit integer IDs suitable for database
// primary keys. StringID implementations produce opaque string IDs suitable
// for correlation IDs and token IDs.
package uid

// NumberID generates unique int64 identifiers.
type NumberID interface {
	Generate() int64
}

// StringID generates unique string identifiers.
type StringID interface {
	Generate() string
}
