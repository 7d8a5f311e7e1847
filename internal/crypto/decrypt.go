package crypto

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidPassword is returned when the envelope cannot be opened with the given password
var ErrInvalidPassword = errors.New("invalid password")

// IsEnvelope reports whether value looks like a sealed envelope
func IsEnvelope(value string) bool {
	var env Envelope
	if err := json.Unmarshal([]byte(value), &env); err != nil {
		return false
	}
	return env.KDF == kdfScrypt && env.CipherText != ""
}

// Open decrypts an envelope produced by Seal.
// password must be []byte for security (caller should zero it after use)
func Open(value string, password []byte) ([]byte, error) {
	var env Envelope
	if err := json.Unmarshal([]byte(value), &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal envelope: %w", err)
	}
	if env.KDF != kdfScrypt {
		return nil, fmt.Errorf("unsupported kdf %q", env.KDF)
	}

	// Decode salt and nonce
	salt, err := base64.StdEncoding.DecodeString(env.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}

	nonce, err := base64.StdEncoding.DecodeString(env.Nonce)
	if err != nil {
		return nil, fmt.Errorf("failed to decode nonce: %w", err)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(env.CipherText)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	aesGCM, err := newGCM(password, salt, env.N)
	if err != nil {
		return nil, err
	}
	if len(nonce) != aesGCM.NonceSize() {
		return nil, errors.New("invalid nonce length")
	}

	// Decrypt
	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrInvalidPassword
	}
	return plaintext, nil
}
