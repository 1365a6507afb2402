package utils

import "github.com/google/uuid"

// UUIDGenerator produces time-ordered (version 7) UUID strings, falling back
// to random ones. A nil *UUIDGenerator is ready to use.
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
