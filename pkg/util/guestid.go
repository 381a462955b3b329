package util

import (
	"strings"

	"github.com/google/uuid"
)

const guestIDPrefix = "guest_"

// GenerateGuestID returns a collision-resistant identifier for an anonymous
// cart. Random UUIDs rather than timestamps so concurrent guests never clash.
func GenerateGuestID() string {
	return guestIDPrefix + uuid.New().String()
}

// IsGuestID reports whether s looks like a generated guest identifier
func IsGuestID(s string) bool {
	return strings.HasPrefix(s, guestIDPrefix)
}
