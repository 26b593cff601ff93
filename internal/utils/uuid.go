package utils

import "github.com/google/uuid"

// UUIDGenerator issues identifiers for vault items and request traces.
// Version 7 UUIDs are time-ordered, so item ids sort roughly by creation.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new UUIDv7 string, falling back to v4 if the clock
// source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
