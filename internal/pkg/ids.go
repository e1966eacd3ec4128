package pkg

import (
	"crypto/sha1" //nolint: gosec // required by RFC 6455
	"encoding/base64"

	"github.com/google/uuid"
)

const websocketGUID = "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"

// GenerateNewSessionID returns a random identifier for a player's score profile.
func GenerateNewSessionID() string {
	return uuid.NewString()
}

// IsValidSessionID rejects cookie values that were not issued by GenerateNewSessionID.
func IsValidSessionID(id string) bool {
	return uuid.Validate(id) == nil
}

// GenerateAcceptKey computes Sec-WebSocket-Accept for the client's Sec-WebSocket-Key.
func GenerateAcceptKey(key string) string {
	hash := sha1.Sum([]byte(key + websocketGUID)) //nolint: gosec // required by RFC 6455
	return base64.StdEncoding.EncodeToString(hash[:])
}
