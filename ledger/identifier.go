package ledger

import (
	"github.com/google/uuid"
)

const shortIDLength = 8

// IDGenerator produces identifiers for newly created reservations.
// Generated identifiers must be unique with overwhelming probability;
// no registry-based uniqueness guarantee exists.
type IDGenerator interface {
	NewID() string
}

// ShortIDGenerator derives identifiers from the first 8 characters of a
// random UUID v4. The truncation is a deliberate trade-off: ids stay short
// and human-friendly at a small, accepted collision risk.
type ShortIDGenerator struct{}

// NewID returns a new probabilistically unique 8-character identifier.
func (ShortIDGenerator) NewID() string {
	return uuid.NewString()[:shortIDLength]
}
