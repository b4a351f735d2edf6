// Package rest contains small helpers shared by the HTTP transport bridges
// for reading provider response bodies.
package rest

import (
	"io"

	"github.com/antonholmquist/jason"
)

// maxErrorBodySize limits error response body reading.
const maxErrorBodySize = 2048

// Object parses a JSON response body.
func Object(r io.Reader) (*jason.Object, error) {
	return jason.NewObjectFromReader(r)
}

// ErrorDescription extracts a human-readable error description from a
// provider's structured error body, trying the given keys in order. Returns
// an empty string when the body is not JSON or carries none of the keys.
func ErrorDescription(r io.Reader, keys ...string) string {
	obj, err := jason.NewObjectFromReader(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return ""
	}
	for _, key := range keys {
		if s, err := obj.GetString(key); err == nil && s != "" {
			return s
		}
	}
	return ""
}
