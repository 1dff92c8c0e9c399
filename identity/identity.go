// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"crypto/rand"
	"fmt"

	"github.com/google/uuid"
)

// Provider issues opaque user identities. There is no account system:
// a client asks for an id once and presents it on every call via the
// X-User-ID header.
type Provider struct{}

func NewProvider() *Provider {
	return &Provider{}
}

// Issue returns a fresh opaque user id.
func (p *Provider) Issue() string {
	return uuid.NewString()
}

// Validate rejects ids that could not have come from Issue.
func (p *Provider) Validate(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}
	return nil
}

// codeChars excludes lowercase on purpose: session codes get read
// aloud and typed on phones.
const codeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeLength is the length of a shareable session code.
const CodeLength = 6

// NewSessionCode returns a random 6-character uppercase session code.
// Codes are allocated optimistically with no collision check beyond
// the store's create; the caller retries on conflict.
func NewSessionCode() (string, error) {
	b := make([]byte, CodeLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session code: %w", err)
	}
	for i := range b {
		b[i] = codeChars[int(b[i])%len(codeChars)]
	}
	return string(b), nil
}
