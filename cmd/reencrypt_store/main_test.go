package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/keypair-wallet/internal/crypto"
	"github.com/AlexZinkM/keypair-wallet/internal/keystore"
	"github.com/AlexZinkM/keypair-wallet/internal/store"
)

func TestMain(m *testing.M) {
	crypto.DefaultScryptN = 1 << 10
	os.Exit(m.Run())
}

func TestReencrypt_RotatesPassword(t *testing.T) {
	raw := store.NewMemory()

	book, err := keystore.Open(store.NewEncrypted(raw, []byte("old")))
	require.NoError(t, err)
	rec, err := book.Create()
	require.NoError(t, err)

	require.NoError(t, reencrypt(raw, []byte("old"), []byte("new")))

	// The old password no longer opens the slot
	_, err = keystore.Open(store.NewEncrypted(raw, []byte("old")))
	assert.Error(t, err)

	book, err = keystore.Open(store.NewEncrypted(raw, []byte("new")))
	require.NoError(t, err)
	got, ok := book.Get(rec.ID)
	require.True(t, ok)
	assert.Equal(t, rec.PrivateKey, got.PrivateKey)
}

func TestReencrypt_EncryptsPlaintextSlot(t *testing.T) {
	raw := store.NewMemory()

	book, err := keystore.Open(raw)
	require.NoError(t, err)
	_, err = book.Create()
	require.NoError(t, err)

	require.NoError(t, reencrypt(raw, nil, []byte("first")))

	sealed, err := raw.Get(keystore.SlotKey)
	require.NoError(t, err)
	assert.True(t, crypto.IsEnvelope(sealed))

	book, err = keystore.Open(store.NewEncrypted(raw, []byte("first")))
	require.NoError(t, err)
	assert.Equal(t, 1, book.Len())
}

func TestReencrypt_WrongPasswordLeavesSlot(t *testing.T) {
	raw := store.NewMemory()
	book, err := keystore.Open(store.NewEncrypted(raw, []byte("old")))
	require.NoError(t, err)
	_, err = book.Create()
	require.NoError(t, err)

	before, err := raw.Get(keystore.SlotKey)
	require.NoError(t, err)

	assert.Error(t, reencrypt(raw, []byte("wrong"), []byte("new")))

	after, err := raw.Get(keystore.SlotKey)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestReencrypt_EmptySlot(t *testing.T) {
	assert.Error(t, reencrypt(store.NewMemory(), nil, []byte("new")))
}
