package pkg

import (
	"crypto/rand"
	"encoding/hex"
)

const (
	gameIDBytes    = 4
	sessionIDBytes = 16
)

// GenerateGameID - returns a short random id for a game.
func GenerateGameID() string {
	return randomHex(gameIDBytes)
}

// GenerateNewSessionID - returns a random id for a new player.
func GenerateNewSessionID() string {
	return randomHex(sessionIDBytes)
}

func randomHex(n int) string {
	buf := make([]byte, n)

	// crypto/rand.Read never returns an error on supported platforms
	_, _ = rand.Read(buf)

	return hex.EncodeToString(buf)
}
