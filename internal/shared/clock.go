package shared

import (
	"time"

	"github.com/google/uuid"
)

// Clock abstracts time.Now so services stay deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// IDGenerator produces identities for new records. Production code
// uses NewUUID; tests substitute a fixed sequence.
type IDGenerator func() uuid.UUID

// NewUUID is the default IDGenerator.
func NewUUID() uuid.UUID {
	return uuid.New()
}
