package media

import (
	"fmt"

	"github.com/google/uuid"
)

const idPrefix = "media_"

// ValidID reports whether id is safe to use as a single path component:
// non-empty and made only of ASCII letters, digits, '.', '_' and '-'.
func ValidID(id string) bool {
	if id == "" {
		return false
	}

	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '.' || c == '_' || c == '-':
		default:
			return false
		}
	}

	return true
}

// NewID returns a fresh identifier. UUIDv7 carries a millisecond timestamp
// followed by random bits, so ids sort roughly by creation time.
func NewID() (string, error) {
	u, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate media id: %w", err)
	}

	return idPrefix + u.String(), nil
}
