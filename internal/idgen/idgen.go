// Package idgen generates short, globally-unique-enough identifiers for
// rooms and seats, grounded on the corpus's internal/gameid package but
// built on google/uuid rather than hand-rolled crypto/rand encoding.
package idgen

import "github.com/google/uuid"

// New returns a lowercase hex identifier at least 7 characters long
// (spec §4.F), derived from a fresh UUIDv4. Collision avoidance is the
// caller's job: call New again if the result collides with an existing
// identifier.
func New() string {
	return uuid.New().String()[:8]
}
