package objectid

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"regexp"
	"time"
)

// Entity ids keep the MongoDB ObjectId layout the rest of the platform
// already uses as its session-identity format: 4 bytes of unix seconds
// followed by 8 random bytes, hex encoded to 24 lowercase characters.

var idPattern = regexp.MustCompile(`^[a-f0-9]{24}$`)

// New generates a fresh 24-character lowercase-hex id.
func New() string {
	var b [12]byte
	binary.BigEndian.PutUint32(b[:4], uint32(time.Now().Unix()))
	rand.Read(b[4:])
	return hex.EncodeToString(b[:])
}

// IsValid reports whether id is a well-formed 24-character lowercase-hex id.
func IsValid(id string) bool {
	return idPattern.MatchString(id)
}
