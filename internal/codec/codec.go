// Package codec converts keys between their raw and textual forms and
// validates ledger addresses.
package codec

import (
	"bytes"
	"crypto/ed25519"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// SecretSize is the length of a full secret key: 32-byte seed followed by the 32-byte public key.
const SecretSize = ed25519.PrivateKeySize

var (
	ErrSecretLength  = errors.New("secret key must be 64 bytes")
	ErrSecretPairing = errors.New("secret key does not match its public half")
	ErrOffCurve      = errors.New("address is not on the ed25519 curve")
)

// Generate creates a new random keypair.
func Generate() solana.PrivateKey {
	return solana.NewWallet().PrivateKey
}

// EncodeSecret renders a secret key as base58 text.
func EncodeSecret(secret []byte) string {
	return base58.Encode(secret)
}

// DecodeSecret parses base58 text into a 64-byte secret key.
func DecodeSecret(text string) (solana.PrivateKey, error) {
	raw, err := base58.Decode(text)
	if err != nil {
		return nil, errors.Wrap(err, "secret key is not valid base58")
	}
	if len(raw) != SecretSize {
		clear(raw)
		return nil, errors.Wrapf(ErrSecretLength, "got %d bytes", len(raw))
	}
	return solana.PrivateKey(raw), nil
}

// DeriveKeypair re-derives the keypair from the secret's seed and checks that
// the embedded public half matches.
func DeriveKeypair(secret solana.PrivateKey) (solana.PublicKey, error) {
	if len(secret) != SecretSize {
		return solana.PublicKey{}, ErrSecretLength
	}

	derived := ed25519.NewKeyFromSeed(secret[:ed25519.SeedSize])
	defer clear(derived)

	if !bytes.Equal(derived[ed25519.SeedSize:], secret[ed25519.SeedSize:]) {
		return solana.PublicKey{}, ErrSecretPairing
	}
	return solana.PublicKeyFromBytes(derived[ed25519.SeedSize:]), nil
}

// ParseAddress checks address syntax only: base58 of exactly 32 bytes.
func ParseAddress(text string) (solana.PublicKey, error) {
	pk, err := solana.PublicKeyFromBase58(text)
	if err != nil {
		return solana.PublicKey{}, errors.Wrap(err, "invalid address")
	}
	return pk, nil
}

// ValidateAddress checks syntax and curve membership.
// Off-curve addresses (program derived addresses) cannot sign and are refused as destinations.
func ValidateAddress(text string) (solana.PublicKey, error) {
	pk, err := ParseAddress(text)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if !pk.IsOnCurve() {
		return solana.PublicKey{}, ErrOffCurve
	}
	return pk, nil
}

// IsValidAddress is the boolean form of ValidateAddress.
func IsValidAddress(text string) bool {
	_, err := ValidateAddress(text)
	return err == nil
}
