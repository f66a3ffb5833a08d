package domain

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"regexp"
	"time"
)

var idPattern = regexp.MustCompile(`^[a-fA-F0-9]{24}$`)

// NewID mints an opaque 24-character hexadecimal record identifier:
// 4 big-endian bytes of unix seconds followed by 8 random bytes, so ids
// sort roughly by creation time.
func NewID() string {
	var raw [12]byte
	binary.BigEndian.PutUint32(raw[:4], uint32(time.Now().Unix()))
	if _, err := rand.Read(raw[4:]); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(raw[:])
}

// ValidID reports whether s has the 24-hex-character identifier shape.
func ValidID(s string) bool {
	return idPattern.MatchString(s)
}
