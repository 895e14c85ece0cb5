package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"
)

// Passwords travel inside the session token so that directory writes can
// re-bind with the caller's own credentials. They are sealed with a key
// derived from the signing secret; the token signature alone would leave
// the password readable by anyone holding the token.

func (m *Manager) sealingKey() [32]byte {
	return sha256.Sum256(m.secret)
}

func (m *Manager) SealPassword(password string) (string, error) {
	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	key := m.sealingKey()
	sealed := secretbox.Seal(nonce[:], []byte(password), &nonce, &key)
	return base64.URLEncoding.EncodeToString(sealed), nil
}

func (m *Manager) UnsealPassword(sealed string) (string, error) {
	raw, err := base64.URLEncoding.DecodeString(sealed)
	if err != nil || len(raw) < 24 {
		return "", fmt.Errorf("malformed sealed password")
	}

	var nonce [24]byte
	copy(nonce[:], raw[:24])

	key := m.sealingKey()
	password, ok := secretbox.Open(nil, raw[24:], &nonce, &key)
	if !ok {
		return "", fmt.Errorf("could not unseal password")
	}
	return string(password), nil
}
