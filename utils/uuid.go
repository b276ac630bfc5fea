package utils

import (
	"github.com/google/uuid"
)

// IDLength is the length of an identifier in its canonical string form
const IDLength = 36

// GenerateID returns a new unique identifier string
func GenerateID() string {
	return uuid.New().String()
}

// IsID reports whether s is an identifier produced by GenerateID
func IsID(s string) bool {
	if len(s) != IDLength {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
