package solana

import (
	"github.com/rs/zerolog/log"

	"github.com/AlexZinkM/keypair-wallet/internal/backup"
	"github.com/AlexZinkM/keypair-wallet/internal/keystore"
)

// Export serializes every record, private keys included, in cleartext.
// Whoever holds the output controls the funds.
func (m *Manager) Export() ([]byte, error) {
	records := m.book.List()
	payload, err := backup.Export(records)
	if err != nil {
		return nil, err
	}

	log.Warn().Int("count", len(records)).Msg("Exported keypairs with cleartext private keys")
	return payload, nil
}

// Import merges a backup into the book. The whole payload is rejected if any entry is invalid.
func (m *Manager) Import(payload []byte) (keystore.MergeResult, error) {
	records, err := backup.Parse(payload)
	if err != nil {
		return keystore.MergeResult{}, err
	}

	res, err := m.book.Merge(records)
	if err != nil {
		return keystore.MergeResult{}, err
	}

	log.Info().Int("merged", res.Merged).Int("skipped", res.Skipped).Msg("Keypairs imported")
	return res, nil
}
