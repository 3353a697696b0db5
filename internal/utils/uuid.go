package utils

import "github.com/google/uuid"

// UUIDGenerator produces identifiers for syncable records and instances.
// UUIDv7 keeps identifiers time-ordered, which helps index locality in the
// store; generation never derives from storage position.
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
