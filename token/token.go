// Package token derives the one-time-feeling approval-link tokens.
//
// The scheme is a reversible base64 encoding of
// "<requestID>-<secret>". It is NOT a MAC — anyone holding the secret can
// forge a token for any request, and every request shares the one secret.
// It is kept behind this package's two-function surface so it can be
// swapped for a signed, expiring token without touching the lifecycle
// code.
package token

import (
	"encoding/base64"

	"barbearia/globals"
)

// Issue returns the token for a request id. Deterministic: the same id
// and secret always produce the same token, so links stay valid for the
// life of the process. The URL-safe alphabet keeps the token usable as a
// bare path segment.
func Issue(requestID string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(requestID + "-" + globals.LinkSecret))
}

// Verify recomputes the token for the id and compares. Plain equality;
// the scheme makes no timing guarantee worth preserving.
func Verify(requestID, tok string) bool {
	return tok == Issue(requestID)
}
