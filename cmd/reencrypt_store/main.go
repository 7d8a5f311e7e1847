// One-off: re-seal the keypairs slot under a new password. A plaintext slot is
// encrypted for the first time; an empty old password is then accepted.
// Usage: STORE_DRIVER=bolt STORE_PATH=keypairs.db go run ./cmd/reencrypt_store
package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/AlexZinkM/keypair-wallet/internal/config"
	"github.com/AlexZinkM/keypair-wallet/internal/crypto"
	"github.com/AlexZinkM/keypair-wallet/internal/keystore"
	"github.com/AlexZinkM/keypair-wallet/internal/store"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Re-encryption failed")
	}
}

func run() error {
	if err := config.Init(); err != nil {
		return err
	}
	cfg := config.Get()

	// Raw store: the slot is read and written as stored
	st, err := store.Open(store.Options{
		Driver:    cfg.StoreDriver,
		Path:      cfg.StorePath,
		RedisAddr: cfg.RedisAddr,
	})
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	sealed, err := st.Get(keystore.SlotKey)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", keystore.SlotKey, err)
	}

	var oldPassword []byte
	if crypto.IsEnvelope(sealed) {
		oldPassword, err = config.PromptForPassword("Current store password: ")
		if err != nil {
			return err
		}
		defer clear(oldPassword)
	}

	newPassword, err := config.PromptForPassword("New store password: ")
	if err != nil {
		return err
	}
	defer clear(newPassword)

	confirm, err := config.PromptForPassword("Repeat new password: ")
	if err != nil {
		return err
	}
	defer clear(confirm)
	if !bytes.Equal(newPassword, confirm) {
		return errors.New("passwords do not match")
	}

	if err := reencrypt(st, oldPassword, newPassword); err != nil {
		return err
	}

	log.Info().Str("driver", cfg.StoreDriver).Str("path", cfg.StorePath).Msg("Store re-encrypted")
	return nil
}

// reencrypt opens the slot with oldPassword (or reads it as plaintext) and seals it with newPassword.
// The slot is only overwritten once the new envelope has been verified.
func reencrypt(st store.Store, oldPassword, newPassword []byte) error {
	current, err := st.Get(keystore.SlotKey)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", keystore.SlotKey, err)
	}

	var plaintext []byte
	if crypto.IsEnvelope(current) {
		plaintext, err = crypto.Open(current, oldPassword)
		if err != nil {
			return fmt.Errorf("failed to decrypt store: %w", err)
		}
	} else {
		plaintext = []byte(current)
	}
	// Always clear decrypted keys from memory
	defer clear(plaintext)

	sealed, err := crypto.Seal(plaintext, newPassword)
	if err != nil {
		return fmt.Errorf("failed to encrypt store: %w", err)
	}

	check, err := crypto.Open(sealed, newPassword)
	if err != nil {
		return fmt.Errorf("failed to verify new envelope: %w", err)
	}
	ok := bytes.Equal(check, plaintext)
	clear(check)
	if !ok {
		return errors.New("failed to verify new envelope: content mismatch")
	}

	return st.Set(keystore.SlotKey, sealed)
}
