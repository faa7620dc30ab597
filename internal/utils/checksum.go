package utils

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Checksummer computes keyed BLAKE2b-256 digests of journal payloads.
// encoding/json sorts map keys, so equal payloads always produce equal
// digests regardless of how they were built.
type Checksummer struct {
	key []byte
}

// NewChecksummer returns a Checksummer keyed with key. An empty key yields
// plain BLAKE2b-256. Keys longer than 64 bytes are rejected by blake2b, so
// they are folded into a 32-byte digest first.
func NewChecksummer(key string) *Checksummer {
	k := []byte(key)
	if len(k) > blake2b.Size {
		sum := blake2b.Sum256(k)
		k = sum[:]
	}
	return &Checksummer{key: k}
}

// Sum returns the hex-encoded digest of the canonical JSON encoding of v.
func (c *Checksummer) Sum(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("error encoding payload: %w", err)
	}

	h, err := blake2b.New256(c.key)
	if err != nil {
		return "", fmt.Errorf("error creating checksum hash: %w", err)
	}
	h.Write(data)

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Verify reports whether checksum matches v.
func (c *Checksummer) Verify(v any, checksum string) (bool, error) {
	sum, err := c.Sum(v)
	if err != nil {
		return false, err
	}
	return sum == checksum, nil
}
