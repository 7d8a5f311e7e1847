package solana

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/AlexZinkM/keypair-wallet/internal/apperr"
	"github.com/AlexZinkM/keypair-wallet/internal/codec"
	"github.com/AlexZinkM/keypair-wallet/internal/common"
	"github.com/AlexZinkM/keypair-wallet/internal/metrics"
	"github.com/AlexZinkM/keypair-wallet/internal/model"
)

// RefreshBalance reads the record's balance from the ledger and caches it.
// On failure the cached balance is left as it was and the error is returned.
func (m *Manager) RefreshBalance(ctx context.Context, id model.RecordID) (decimal.Decimal, error) {
	balance, err := m.refreshBalance(ctx, id)
	metrics.BalanceRefreshes.WithLabelValues(resultLabel(err)).Inc()
	return balance, err
}

func (m *Manager) refreshBalance(ctx context.Context, id model.RecordID) (decimal.Decimal, error) {
	rec, ok := m.book.Get(id)
	if !ok {
		return decimal.Zero, apperr.NotFound(id.String())
	}

	address, err := codec.ParseAddress(rec.PublicKey)
	if err != nil {
		return decimal.Zero, apperr.Wrap(err, apperr.KindValidation, "stored address is invalid")
	}

	lamports, err := m.ledger.GetBalance(ctx, address)
	if err != nil {
		log.Warn().Err(err).Str("id", id.String()).Msg("Balance lookup failed, keeping cached balance")
		return decimal.Zero, apperr.Wrap(err, apperr.KindNetwork, "failed to get balance")
	}

	// Targeted update against the latest state: a record deleted meanwhile stays deleted
	balance := common.LamportsToSOL(lamports)
	if err := m.book.SetBalance(id, balance); err != nil {
		return decimal.Zero, err
	}

	log.Debug().Str("id", id.String()).Str("sol", common.FormatSOL(balance)).Msg("Balance refreshed")
	return balance, nil
}
