package store

import (
	"fmt"

	"github.com/AlexZinkM/keypair-wallet/internal/crypto"
)

// Encrypted seals every value with a password before handing it to the inner store
type Encrypted struct {
	inner    Store
	password []byte
}

// NewEncrypted wraps inner. The password is copied; the caller may zero its slice.
func NewEncrypted(inner Store, password []byte) *Encrypted {
	p := make([]byte, len(password))
	copy(p, password)
	return &Encrypted{inner: inner, password: p}
}

func (e *Encrypted) Get(key string) (string, error) {
	sealed, err := e.inner.Get(key)
	if err != nil {
		return "", err
	}

	// Slots written before encryption was enabled are still readable
	if !crypto.IsEnvelope(sealed) {
		return sealed, nil
	}

	plain, err := crypto.Open(sealed, e.password)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt %s: %w", key, err)
	}
	defer clear(plain)
	return string(plain), nil
}

func (e *Encrypted) Set(key, value string) error {
	sealed, err := crypto.Seal([]byte(value), e.password)
	if err != nil {
		return fmt.Errorf("failed to encrypt %s: %w", key, err)
	}
	return e.inner.Set(key, sealed)
}

func (e *Encrypted) Close() error {
	clear(e.password)
	return e.inner.Close()
}
