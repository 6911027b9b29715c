package uid

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateMatchID generates a random id for a live match. Match ids end up in
// urls and signed tokens, so they come from crypto/rand.
func GenerateMatchID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate match ID: %v", err)
	}
	return hex.EncodeToString(bytes), nil
}
