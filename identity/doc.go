// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package identity issues the opaque user ids that clients carry in the
// X-User-ID header, and generates shareable session codes. Identity is
// anonymous by design; holding an id is the only credential.
package identity
