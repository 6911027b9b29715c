package uid

import "github.com/google/uuid"

// NewRecordID returns the id assigned to a saved game by the sql and memory stores
func NewRecordID() string {
	return uuid.NewString()
}

// IsRecordID reports whether id has the shape NewRecordID produces
func IsRecordID(id string) bool {
	return uuid.Validate(id) == nil
}
