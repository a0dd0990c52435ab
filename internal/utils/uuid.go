package utils

import "github.com/google/uuid"

// UUIDGenerator produces identifiers for request tracing. IDs are UUIDv7 so
// they sort by creation time in log aggregation.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
