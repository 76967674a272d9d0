// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"net/http"
)

// AdminKeyHeader carries the admin key on admin API requests
const AdminKeyHeader = "X-Admin-Key"

var (
	ErrMissingAdminKey = errors.New("missing admin key")
	ErrInvalidAdminKey = errors.New("invalid admin key")
)

// ValidateAdminKey checks the provided key against the configured one.
// Both sides are hashed first so the comparison is constant time
// regardless of length.
func ValidateAdminKey(provided, expected string) error {
	if provided == "" {
		return ErrMissingAdminKey
	}
	if expected == "" {
		return ErrInvalidAdminKey
	}

	got := sha256.Sum256([]byte(provided))
	want := sha256.Sum256([]byte(expected))
	if !hmac.Equal(got[:], want[:]) {
		return ErrInvalidAdminKey
	}
	return nil
}

// AdminKeyFromRequest extracts the admin key from the request headers.
// A bearer token in Authorization is accepted as a fallback.
func AdminKeyFromRequest(r *http.Request) string {
	if key := r.Header.Get(AdminKeyHeader); key != "" {
		return key
	}

	const prefix = "Bearer "
	if authz := r.Header.Get("Authorization"); len(authz) > len(prefix) && authz[:len(prefix)] == prefix {
		return authz[len(prefix):]
	}
	return ""
}
