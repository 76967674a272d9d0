// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth guards the admin API.

# Admin Keys

A single admin key is configured at startup (ADMIN_KEY). Requests present
it in the X-Admin-Key header, or as a bearer token:

	key := auth.AdminKeyFromRequest(r)
	err := auth.ValidateAdminKey(key, cfg.AdminKey)

Both keys are hashed with SHA-256 before a constant-time comparison, so
timing does not leak the key length or a matching prefix.
*/
package auth
