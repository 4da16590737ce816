package model

import (
	"encoding/base32"
	"strings"

	"github.com/google/uuid"
)

// NewUID generates a short, stable identifier using UUID v4 encoded in base32.
// Numeric IDs are renumbered on removal; the UID never changes.
func NewUID() string {
	id := uuid.New()
	// 16 bytes -> 26 base32 characters
	encoded := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(id[:])
	return strings.ToLower(encoded)
}

// ValidUID reports whether s looks like a UID produced by NewUID.
func ValidUID(s string) bool {
	if len(s) != 26 {
		return false
	}
	for _, c := range s {
		if !((c >= 'a' && c <= 'z') || (c >= '2' && c <= '7')) {
			return false
		}
	}
	return true
}
