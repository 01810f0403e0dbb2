package sessions

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var errUnsealable = errors.New("cookie value cannot be opened")

// Sealer encrypts and authenticates cookie values with NaCl secretbox.
// The cookie name is sealed alongside the value so values cannot be swapped between cookies.
type Sealer struct {
	key [32]byte
}

// NewSealer derives the secretbox key from an arbitrary length secret
func NewSealer(secret string) *Sealer {
	return &Sealer{key: sha256.Sum256([]byte(secret))}
}

func (s *Sealer) Seal(name, value string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("[Sealer Seal] failed to generate nonce: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], []byte(name+"|"+value), &nonce, &s.key)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (s *Sealer) Open(name, sealed string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil || len(raw) < nonceSize+secretbox.Overhead {
		return "", errUnsealable
	}
	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	opened, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", errUnsealable
	}
	value, found := strings.CutPrefix(string(opened), name+"|")
	if !found {
		return "", errUnsealable
	}
	return value, nil
}
