package domain

import (
	"time"

	"github.com/google/uuid"
)

// IDGenerator returns a fresh aggregate identity.
type IDGenerator func() string

// Clock returns the current instant.
type Clock func() time.Time

func NewUUID() string {
	return uuid.NewString()
}

func SystemClock() time.Time {
	return time.Now().UTC()
}
