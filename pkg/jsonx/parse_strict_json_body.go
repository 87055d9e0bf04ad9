// Package jsonx binds low-trust JSON request bodies.
package jsonx

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

var (
	ErrEmptyBody    = errors.New("empty body")
	ErrTrailingJSON = errors.New("trailing data")
)

// MaxBodyBytes caps what ParseStrictJSONBody reads.
const MaxBodyBytes = 1 << 20

// ParseStrictJSONBody reads and strictly decodes a JSON HTTP request body
// into dst. Every error it returns maps to 400 Bad Request:
//
//   - Malformed JSON syntax (bad tokens, truncated body)
//   - Empty body (ErrEmptyBody)
//   - Trailing data after the first value (ErrTrailingJSON)
//   - Unknown fields, via DisallowUnknownFields
//   - Field-type mismatches
//
// Only shape is checked. Required fields and business rules are the
// caller's concern. Bodies over MaxBodyBytes are cut off and fail as
// truncated JSON.
func ParseStrictJSONBody[T any](r *http.Request, dst *T) error {
	if r == nil || r.Body == nil {
		return ErrEmptyBody
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes))
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return ErrEmptyBody
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return ErrTrailingJSON
	}
	return nil
}
