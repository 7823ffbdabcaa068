package transform

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// HashLength is the number of hex characters kept from the SHA-256 digest
// of the canonical serialization. 24 characters carry 96 bits, which keeps
// the chance of two distinct specs colliding on one resource far below
// anything a realistic variant count can reach.
const HashLength = 24

// Canonical serializes the spec with absent groups stripped and object
// keys sorted lexicographically at every nesting level, so semantically
// equal specs produce byte-identical output regardless of how the client
// ordered its fields.
func (s Spec) Canonical() ([]byte, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshaling spec: %w", err)
	}

	// Round-trip through map[string]any: encoding/json writes map keys
	// in sorted order at every level.
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("normalizing spec: %w", err)
	}

	canonical, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("canonicalizing spec: %w", err)
	}
	return canonical, nil
}

// Hash returns the truncated hex SHA-256 digest of the canonical
// serialization. It is the identity of the variant derived from this spec.
func (s Spec) Hash() (string, error) {
	canonical, err := s.Canonical()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])[:HashLength], nil
}
